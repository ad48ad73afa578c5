// Command riginfo inspects and evaluates joint behavior rigs described in
// YAML.
//
// Usage:
//
//	riginfo <command> --rig rig.yaml [flags]
//
// Commands:
//
//	inspect   print the packed layout of every joint group
//	eval      evaluate the rig for a set of control values
//	verify    compare every LOD against the float64 reference evaluator
//	kernels   list the block kernels compiled into this binary
//
// Examples:
//
//	riginfo inspect --rig face.yaml --calc scalar
//	riginfo eval --rig face.yaml --lod 1 --controls 0.2,0.5,1
//	riginfo verify --rig face.yaml --precision f16 --rotation quaternion
//	riginfo kernels --json
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "riginfo",
		Usage: "Inspect and evaluate block-packed joint behavior rigs",
		Flags: globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			evalCmd(),
			verifyCmd(),
			kernelsCmd(),
		},
	}
}

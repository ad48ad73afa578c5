package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-rig/rig/joints"
)

type kernelsReport struct {
	Selected string              `json:"selected"`
	Kernels  []joints.KernelInfo `json:"kernels"`
}

func kernelsCmd() *cli.Command {
	return &cli.Command{
		Name:  "kernels",
		Usage: "List the block kernels compiled into this binary",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			calc, err := joints.ParseCalculationType(calcType)
			if err != nil {
				return err
			}

			report := kernelsReport{Kernels: joints.Kernels()}
			if k, err := joints.SelectKernel(calc); err == nil {
				report.Selected = k.Name
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Kernel\tSIMD\tPriority\tBlock\tSupported\tSelected\n")
			fmt.Fprintf(tw, "------\t----\t--------\t-----\t---------\t--------\n")
			for _, k := range report.Kernels {
				selected := ""
				if k.Name == report.Selected {
					selected = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d\t%t\t%s\n",
					k.Name, k.Level, k.Priority, k.BlockHeight, k.BlockWidth, k.Supported, selected)
			}
			return tw.Flush()
		},
	}
}

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-rig/rig/joints"
	"github.com/cwbudde/algo-rig/rig/rotation"
)

type evalReport struct {
	LOD     int         `json:"lod"`
	Kernel  string      `json:"kernel"`
	Joints  [][]float32 `json:"joints"`
	Columns []string    `json:"columns"`
}

func evalCmd() *cli.Command {
	var (
		lod      int
		controls string
	)

	return &cli.Command{
		Name:  "eval",
		Usage: "Evaluate the rig for a set of control values",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "lod", Usage: "level of detail", Destination: &lod},
			&cli.StringFlag{
				Name:        "controls",
				Aliases:     []string{"c"},
				Usage:       "comma-separated control values; missing values are 0",
				Destination: &controls,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, eval, cfg, err := loadEvaluator()
			if err != nil {
				return err
			}

			values, err := parseControls(controls, eval.ControlCount())
			if err != nil {
				return err
			}

			in := eval.CreateInputInstance()
			in.SetValues(values)
			out := eval.CreateInstance()
			if err := eval.Calculate(in, out, lod); err != nil {
				return err
			}

			report := evalReport{
				LOD:     lod,
				Kernel:  eval.KernelName(),
				Columns: attributeNames(cfg),
			}
			stride := joints.AttributeStride(cfg.RotationType)
			v := out.Values()
			for j := range eval.JointCount() {
				report.Joints = append(report.Joints, v[j*stride:(j+1)*stride])
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			return printEval(cmd, report)
		},
	}
}

func parseControls(s string, n int) ([]float32, error) {
	values := make([]float32, n)
	s = strings.TrimSpace(s)
	if s == "" {
		return values, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > n {
		return nil, fmt.Errorf("%d control values for %d controls", len(parts), n)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("control %d: %w", i, err)
		}
		values[i] = float32(v)
	}
	return values, nil
}

func attributeNames(cfg joints.Configuration) []string {
	names := []string{"tx", "ty", "tz"}
	if cfg.RotationType == rotation.Quaternion {
		names = append(names, "qx", "qy", "qz", "qw")
	} else {
		names = append(names, "rx", "ry", "rz")
	}
	return append(names, "sx", "sy", "sz")
}

func printEval(cmd *cli.Command, r evalReport) error {
	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Joint\t%s\t\n", strings.Join(r.Columns, "\t"))
	for j, attrs := range r.Joints {
		fmt.Fprintf(tw, "%d", j)
		for _, v := range attrs {
			fmt.Fprintf(tw, "\t%.6g", v)
		}
		fmt.Fprintf(tw, "\t\n")
	}
	return tw.Flush()
}

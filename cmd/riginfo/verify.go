package main

import (
	"context"
	"fmt"
	"math/rand"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-rig/internal/reference"
	"github.com/cwbudde/algo-vecmath"
)

type verifyReport struct {
	Kernel    string      `json:"kernel"`
	Tolerance float64     `json:"tolerance"`
	Trials    int         `json:"trials"`
	LODs      []lodResult `json:"lods"`
	Passed    bool        `json:"passed"`
}

type lodResult struct {
	LOD         int     `json:"lod"`
	MaxAbsError float64 `json:"max_abs_error"`
}

func verifyCmd() *cli.Command {
	var (
		tolerance float64
		trials    int
		seed      int64
	)

	return &cli.Command{
		Name:  "verify",
		Usage: "Compare every LOD against the float64 reference evaluator",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "tolerance", Usage: "maximum absolute error", Value: 1e-3, Destination: &tolerance},
			&cli.IntFlag{Name: "trials", Usage: "random control vectors per LOD", Value: 16, Destination: &trials},
			&cli.Int64Flag{Name: "seed", Usage: "random seed", Value: 1, Destination: &seed},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rig, eval, cfg, err := loadEvaluator()
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			report := verifyReport{
				Kernel:    eval.KernelName(),
				Tolerance: tolerance,
				Trials:    trials,
				Passed:    true,
			}

			in := eval.CreateInputInstance()
			out := eval.CreateInstance()
			diff := make([]float64, eval.OutputCount())

			for lod := range eval.LODCount() {
				res := lodResult{LOD: lod}
				for range trials {
					controls := in.Values()
					for i := range controls {
						controls[i] = rng.Float32()
					}
					if err := eval.Calculate(in, out, lod); err != nil {
						return err
					}

					want, err := reference.Evaluate(rig, cfg, controls, lod)
					if err != nil {
						return err
					}
					for i, v := range out.Values() {
						diff[i] = float64(v) - want[i]
					}
					res.MaxAbsError = max(res.MaxAbsError, vecmath.MaxAbs(diff))
				}
				if res.MaxAbsError > tolerance {
					report.Passed = false
				}
				report.LODs = append(report.LODs, res)
			}

			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else if err := printVerify(cmd, report); err != nil {
				return err
			}

			if !report.Passed {
				return fmt.Errorf("verify: error exceeds tolerance %g", tolerance)
			}
			return nil
		},
	}
}

func printVerify(cmd *cli.Command, r verifyReport) error {
	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "LOD\tMax Abs Error\tStatus\n")
	fmt.Fprintf(tw, "---\t-------------\t------\n")
	for _, l := range r.LODs {
		status := "ok"
		if l.MaxAbsError > r.Tolerance {
			status = "FAIL"
		}
		fmt.Fprintf(tw, "%d\t%.3e\t%s\n", l.LOD, l.MaxAbsError, status)
	}
	return tw.Flush()
}

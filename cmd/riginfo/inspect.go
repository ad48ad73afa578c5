package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-rig/rig/joints"
)

type inspectReport struct {
	Kernel       string        `json:"kernel"`
	BlockWidth   int           `json:"block_width"`
	BlockHeight  int           `json:"block_height"`
	Joints       int           `json:"joints"`
	Controls     int           `json:"controls"`
	Outputs      int           `json:"outputs"`
	LODs         int           `json:"lods"`
	StorageBytes int           `json:"storage_bytes"`
	Groups       []groupReport `json:"groups"`
}

type groupReport struct {
	RawRows    int                `json:"raw_rows"`
	RawColumns int                `json:"raw_columns"`
	Rows       int                `json:"rows"`
	Columns    int                `json:"columns"`
	Regions    []joints.LODRegion `json:"lod_regions"`
	Rotations  []int              `json:"rotations"`
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the packed layout of every joint group",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, eval, _, err := loadEvaluator()
			if err != nil {
				return err
			}

			report := newInspectReport(eval)
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			return printInspect(cmd, report)
		},
	}
}

func newInspectReport(eval *joints.Evaluator) inspectReport {
	report := inspectReport{
		Kernel:       eval.KernelName(),
		BlockWidth:   eval.BlockWidth(),
		BlockHeight:  eval.BlockHeight(),
		Joints:       eval.JointCount(),
		Controls:     eval.ControlCount(),
		Outputs:      eval.OutputCount(),
		LODs:         eval.LODCount(),
		StorageBytes: eval.StorageBytes(),
	}

	for i := range eval.JointGroupCount() {
		g := eval.JointGroup(i)
		gr := groupReport{
			RawRows:    g.RawRowCount(),
			RawColumns: g.RawColumnCount(),
			Rows:       g.RowCount(),
			Columns:    g.ColumnCount(),
			Regions:    g.LODRegions(),
		}
		for lod := range eval.LODCount() {
			gr.Rotations = append(gr.Rotations, g.RotationCount(lod))
		}
		report.Groups = append(report.Groups, gr)
	}
	return report
}

func printInspect(cmd *cli.Command, r inspectReport) error {
	w := cmd.Root().Writer
	if _, err := fmt.Fprintf(w, "kernel %s (W=%d, R=%d), %d joints, %d controls, %d outputs, %d LODs, %d bytes\n\n",
		r.Kernel, r.BlockWidth, r.BlockHeight, r.Joints, r.Controls, r.Outputs, r.LODs, r.StorageBytes); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Group\tRaw\tPadded\tLOD\tSize\tLast\tSecond Last\tRotations\n")
	fmt.Fprintf(tw, "-----\t---\t------\t---\t----\t----\t-----------\t---------\n")
	for i, g := range r.Groups {
		for lod, reg := range g.Regions {
			if lod == 0 {
				fmt.Fprintf(tw, "%d\t%dx%d\t%dx%d\t", i, g.RawRows, g.RawColumns, g.Rows, g.Columns)
			} else {
				fmt.Fprintf(tw, "\t\t\t")
			}
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n",
				lod, reg.Size, reg.SizePaddedToLastFullBlock, reg.SizePaddedToSecondLastFullBlock, g.Rotations[lod])
		}
	}
	return tw.Flush()
}

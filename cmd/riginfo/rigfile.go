package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-rig/rig/joints"
	"github.com/cwbudde/algo-rig/rig/rotation"
)

// rigFile is the YAML rig description.
type rigFile struct {
	Joints   int            `yaml:"joints"`
	Controls int            `yaml:"controls"`
	LODs     int            `yaml:"lods"`
	Rotation string         `yaml:"rotation"`
	Groups   []rigFileGroup `yaml:"groups"`
}

type rigFileGroup struct {
	Inputs  []uint16  `yaml:"inputs"`
	Outputs []uint16  `yaml:"outputs"`
	LODs    []uint16  `yaml:"lods"`
	Values  []float32 `yaml:"values"`
}

func loadRig(path string) (*joints.RawBehavior, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rig, err := decodeRig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rig, nil
}

func decodeRig(r io.Reader) (*joints.RawBehavior, error) {
	var rf rigFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		return nil, fmt.Errorf("decode rig: %w", err)
	}

	rep := rotation.EulerAngles
	if rf.Rotation != "" {
		var err error
		if rep, err = rotation.ParseRepresentation(rf.Rotation); err != nil {
			return nil, err
		}
	}
	if rf.LODs == 0 {
		rf.LODs = 1
	}

	rig := &joints.RawBehavior{
		Joints:   rf.Joints,
		Controls: rf.Controls,
		LODs:     rf.LODs,
		Rotation: rep,
		Groups:   make([]joints.RawJointGroup, len(rf.Groups)),
	}
	for i, g := range rf.Groups {
		lods := g.LODs
		// A group without LODs keeps every row at every level.
		if len(lods) == 0 {
			lods = make([]uint16, rf.LODs)
			for l := range lods {
				lods[l] = uint16(len(g.Outputs))
			}
		}
		rig.Groups[i] = joints.RawJointGroup{
			Values:        g.Values,
			InputIndices:  g.Inputs,
			OutputIndices: g.Outputs,
			LODs:          lods,
		}
	}
	return rig, nil
}

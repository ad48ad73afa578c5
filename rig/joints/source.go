package joints

import "github.com/cwbudde/algo-rig/rig/rotation"

// Reader is the read-only source of raw joint behavior data.
//
// Output indices are source attribute indices: joint*stride + attribute,
// where stride is 9 for Euler sources (tx ty tz rx ry rz sx sy sz) and 10
// for quaternion sources (tx ty tz qx qy qz qw sx sy sz).
type Reader interface {
	JointCount() int
	ControlCount() int
	LODCount() int
	RotationRepresentation() rotation.Representation

	JointGroupCount() int
	JointGroupRowCount(group int) int
	JointGroupColumnCount(group int) int
	JointGroupInputIndices(group int) []uint16
	JointGroupOutputIndices(group int) []uint16
	// JointGroupValues returns the dense rows*cols matrix, row-major.
	JointGroupValues(group int) []float32
	// JointGroupLODs returns the active leading row count per LOD.
	JointGroupLODs(group int) []uint16
}

// RawJointGroup is one dense joint group matrix with its index mappings.
type RawJointGroup struct {
	Values        []float32
	InputIndices  []uint16
	OutputIndices []uint16
	LODs          []uint16
}

// RawBehavior is an in-memory Reader.
type RawBehavior struct {
	Joints   int
	Controls int
	LODs     int
	Rotation rotation.Representation
	Groups   []RawJointGroup
}

var _ Reader = (*RawBehavior)(nil)

func (b *RawBehavior) JointCount() int   { return b.Joints }
func (b *RawBehavior) ControlCount() int { return b.Controls }
func (b *RawBehavior) LODCount() int     { return b.LODs }

func (b *RawBehavior) RotationRepresentation() rotation.Representation { return b.Rotation }

func (b *RawBehavior) JointGroupCount() int { return len(b.Groups) }

func (b *RawBehavior) JointGroupRowCount(group int) int {
	return len(b.Groups[group].OutputIndices)
}

func (b *RawBehavior) JointGroupColumnCount(group int) int {
	return len(b.Groups[group].InputIndices)
}

func (b *RawBehavior) JointGroupInputIndices(group int) []uint16 {
	return b.Groups[group].InputIndices
}

func (b *RawBehavior) JointGroupOutputIndices(group int) []uint16 {
	return b.Groups[group].OutputIndices
}

func (b *RawBehavior) JointGroupValues(group int) []float32 { return b.Groups[group].Values }

func (b *RawBehavior) JointGroupLODs(group int) []uint16 { return b.Groups[group].LODs }

// AttributeStride returns the number of attributes per joint for a rotation
// representation: three translation, the rotation components and three
// scale values.
func AttributeStride(r rotation.Representation) int {
	return 6 + r.Components()
}

// ClassifyAttribute splits a per-joint attribute index into its kind and
// the component within that kind.
func ClassifyAttribute(attr int, r rotation.Representation) (AttributeKind, int) {
	rc := r.Components()
	switch {
	case attr < 3:
		return Translation, attr
	case attr < 3+rc:
		return Rotation, attr - 3
	default:
		return Scale, attr - 3 - rc
	}
}

// AttributeIndex is the inverse of ClassifyAttribute: it returns the
// per-joint attribute index of a kind and component.
func AttributeIndex(kind AttributeKind, component int, r rotation.Representation) int {
	switch kind {
	case Translation:
		return component
	case Rotation:
		return 3 + component
	default:
		return 3 + r.Components() + component
	}
}

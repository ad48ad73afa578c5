// Package reference is a dense float64 evaluator for joint behavior. It
// reads raw joint group matrices without any packing and serves as the
// ground truth for the block kernels.
package reference

import (
	"fmt"

	"github.com/cwbudde/algo-rig/rig/joints"
	"github.com/cwbudde/algo-rig/rig/rotation"
	"github.com/cwbudde/algo-vecmath"
	"github.com/x448/float16"
)

// Evaluate returns the outputs of every joint group of r at lod for the
// given controls. With cfg.FloatingPoint == Float16 the weights are rounded
// to half precision first, matching packed storage.
func Evaluate(r joints.Reader, cfg joints.Configuration, controls []float32, lod int) ([]float64, error) {
	if lod < 0 || lod >= r.LODCount() {
		return nil, fmt.Errorf("reference: lod %d not in [0, %d)", lod, r.LODCount())
	}
	if len(controls) != r.ControlCount() {
		return nil, fmt.Errorf("reference: %d controls, want %d", len(controls), r.ControlCount())
	}

	srcRep := r.RotationRepresentation()
	srcStride := joints.AttributeStride(srcRep)
	dstStride := joints.AttributeStride(cfg.RotationType)
	convert := srcRep != cfg.RotationType
	out := make([]float64, r.JointCount()*dstStride)

	for g := range r.JointGroupCount() {
		cols := r.JointGroupColumnCount(g)
		values := r.JointGroupValues(g)
		inputs := r.JointGroupInputIndices(g)
		outputs := r.JointGroupOutputIndices(g)
		active := int(r.JointGroupLODs(g)[lod])

		x := make([]float64, cols)
		for c, i := range inputs {
			x[c] = float64(controls[i])
		}

		w := make([]float64, cols)
		rotations := map[int]*pending{}
		var order []int

		for row := range active {
			for c, v := range values[row*cols : (row+1)*cols] {
				if cfg.FloatingPoint == joints.Float16 {
					v = float16.Fromfloat32(v).Float32()
				}
				w[c] = float64(v)
			}
			delta := vecmath.DotProduct(w, x)

			o := int(outputs[row])
			joint, attr := o/srcStride, o%srcStride
			kind, comp := joints.ClassifyAttribute(attr, srcRep)

			if kind == joints.Rotation && convert {
				p, ok := rotations[joint]
				if !ok {
					p = &pending{}
					rotations[joint] = p
					order = append(order, joint)
				}
				p.comps[comp] = delta
				p.set[comp] = true
				continue
			}
			out[joint*dstStride+joints.AttributeIndex(kind, comp, cfg.RotationType)] += delta
		}

		for _, joint := range order {
			base := joint*dstStride + joints.AttributeIndex(joints.Rotation, 0, cfg.RotationType)
			p := rotations[joint]
			if srcRep == rotation.EulerAngles {
				q := rotation.EulerToQuat([3]float64{p.comps[0], p.comps[1], p.comps[2]}, cfg.RotationUnit, cfg.RotationOrder)
				vecmath.AddBlockInPlace(out[base:base+4], q[:])
				continue
			}
			if !p.set[3] {
				p.comps[3] = 1
			}
			e := rotation.QuatToEuler(p.comps, cfg.RotationUnit, cfg.RotationOrder)
			vecmath.AddBlockInPlace(out[base:base+3], e[:])
		}
	}

	return out, nil
}

type pending struct {
	comps [4]float64
	set   [4]bool
}

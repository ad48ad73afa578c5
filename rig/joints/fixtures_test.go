package joints

import (
	"math/rand"

	"github.com/cwbudde/algo-rig/internal/testutil"
	"github.com/cwbudde/algo-rig/rig/rotation"
)

// newTestBehavior returns a deterministic random rig. Joints are assigned to
// groups round-robin so a joint's rotation never spans groups; each joint
// drives a random subset of its attributes, in shuffled row order.
func newTestBehavior(seed int64, jointCount, controls, groups, lods int, rep rotation.Representation) *RawBehavior {
	rng := rand.New(rand.NewSource(seed))
	stride := AttributeStride(rep)

	b := &RawBehavior{
		Joints:   jointCount,
		Controls: controls,
		LODs:     lods,
		Rotation: rep,
		Groups:   make([]RawJointGroup, groups),
	}

	for g := range b.Groups {
		var outputs []uint16
		for j := g; j < jointCount; j += groups {
			for attr := range stride {
				if rng.Float32() < 0.6 {
					outputs = append(outputs, uint16(j*stride+attr))
				}
			}
		}
		rng.Shuffle(len(outputs), func(i, k int) { outputs[i], outputs[k] = outputs[k], outputs[i] })

		cols := 1 + rng.Intn(controls)
		inputs := make([]uint16, cols)
		for c, i := range rng.Perm(controls)[:cols] {
			inputs[c] = uint16(i)
		}

		rows := len(outputs)
		lodRows := make([]uint16, lods)
		n := rows
		for l := range lodRows {
			lodRows[l] = uint16(n)
			if n > 0 {
				n = rng.Intn(n + 1)
			}
		}

		b.Groups[g] = RawJointGroup{
			Values:        testutil.Matrix(seed*31+int64(g), rows, cols, 1),
			InputIndices:  inputs,
			OutputIndices: outputs,
			LODs:          lodRows,
		}
	}
	return b
}

// scenarioBehavior is a single group with 6 columns and 3 rows: the Z
// rotation of joint 0 followed by the X and Y translation of joint 1.
func scenarioBehavior() *RawBehavior {
	return &RawBehavior{
		Joints:   2,
		Controls: 6,
		LODs:     2,
		Rotation: rotation.EulerAngles,
		Groups: []RawJointGroup{{
			InputIndices:  []uint16{0, 1, 2, 3, 4, 5},
			OutputIndices: []uint16{5, 9, 10},
			LODs:          []uint16{3, 1},
			Values: []float32{
				10, 20, 30, 0, 5, -5,
				1, 0, 0, 2, 0, 0,
				0, 0, 1, 0, 0, 3,
			},
		}},
	}
}

func buildAll(b *Builder, f *BehaviorFilter) (*Evaluator, error) {
	if err := b.ComputeStorageRequirements(f); err != nil {
		return nil, err
	}
	if err := b.AllocateStorage(f); err != nil {
		return nil, err
	}
	if err := b.FillStorage(f); err != nil {
		return nil, err
	}
	return b.Build()
}

package reference

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rig/rig/joints"
	"github.com/cwbudde/algo-rig/rig/rotation"
)

func TestEvaluateDense(t *testing.T) {
	r := &joints.RawBehavior{
		Joints:   2,
		Controls: 3,
		LODs:     2,
		Rotation: rotation.EulerAngles,
		Groups: []joints.RawJointGroup{{
			InputIndices:  []uint16{2, 0},
			OutputIndices: []uint16{0, 10, 17},
			LODs:          []uint16{3, 1},
			Values: []float32{
				1, 2,
				-1, 0.5,
				4, 4,
			},
		}},
	}
	controls := []float32{0.5, 9, 0.25}

	out, err := Evaluate(r, joints.DefaultConfiguration(), controls, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]float64, 18)
	want[0] = 1*0.25 + 2*0.5
	want[10] = -1*0.25 + 0.5*0.5
	want[17] = 4*0.25 + 4*0.5
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	out, err = Evaluate(r, joints.DefaultConfiguration(), controls, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out[10] != 0 || out[17] != 0 {
		t.Fatalf("inactive rows contributed at LOD 1: %v", out)
	}
}

func TestEvaluateConvertsRotation(t *testing.T) {
	r := &joints.RawBehavior{
		Joints:   1,
		Controls: 1,
		LODs:     1,
		Rotation: rotation.EulerAngles,
		Groups: []joints.RawJointGroup{{
			InputIndices:  []uint16{0},
			OutputIndices: []uint16{5},
			LODs:          []uint16{1},
			Values:        []float32{90},
		}},
	}
	cfg := joints.DefaultConfiguration()
	cfg.RotationType = rotation.Quaternion

	out, err := Evaluate(r, cfg, []float32{1}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 10 {
		t.Fatalf("len = %d, want 10", len(out))
	}
	s := math.Sqrt2 / 2
	want := []float64{0, 0, 0, 0, 0, s, s, 0, 0, 0}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestEvaluateRejectsBadArguments(t *testing.T) {
	r := &joints.RawBehavior{Controls: 2, LODs: 1}
	if _, err := Evaluate(r, joints.DefaultConfiguration(), []float32{0, 0}, 1); err == nil {
		t.Fatal("expected error for out-of-range LOD")
	}
	if _, err := Evaluate(r, joints.DefaultConfiguration(), []float32{0}, 0); err == nil {
		t.Fatal("expected error for control count mismatch")
	}
}

package joints

import (
	"fmt"

	"github.com/cwbudde/algo-rig/rig/rotation"
)

// Evaluator computes joint attribute deltas from control values using
// block-packed joint groups. It is immutable and safe for concurrent use as
// long as every goroutine uses its own instances.
type Evaluator struct {
	cfg         Configuration
	kernelName  string
	blockWidth  int
	blockHeight int

	strategy calculationStrategy
	adapter  rotation.Adapter
	groups   []*PackedJointGroup

	jointCount   int
	controlCount int
	lodCount     int
	outputCount  int
	maxCols      int
	maxRows      int
	storageBytes int
}

// CreateInstance returns a zeroed output instance for this evaluator.
func (e *Evaluator) CreateInstance(opts ...InstanceOption) *OutputInstance {
	return newOutputInstance(e.outputCount, e.maxCols, e.maxRows, opts)
}

// CreateInputInstance returns a zeroed input instance for this evaluator.
func (e *Evaluator) CreateInputInstance() *InputInstance {
	return &InputInstance{
		values:   make([]float32, e.controlCount+1),
		controls: e.controlCount,
	}
}

// Calculate overwrites out with the joint deltas of every joint group at
// lod. Repeated calls with the same inputs produce bit-identical outputs.
func (e *Evaluator) Calculate(in *InputInstance, out *OutputInstance, lod int) error {
	if err := e.check(in, out, lod); err != nil {
		return err
	}

	out.buf.ZeroRange(0, e.outputCount)
	for _, g := range e.groups {
		e.calculateGroup(g, in, out, lod)
	}
	return nil
}

// CalculateJointGroup adds the deltas of one joint group at lod to out.
// Outputs driven by other joint groups are left untouched.
func (e *Evaluator) CalculateJointGroup(in *InputInstance, out *OutputInstance, lod, group int) error {
	if group < 0 || group >= len(e.groups) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidJointGroup, group, len(e.groups))
	}
	if err := e.check(in, out, lod); err != nil {
		return err
	}

	e.calculateGroup(e.groups[group], in, out, lod)
	return nil
}

func (e *Evaluator) check(in *InputInstance, out *OutputInstance, lod int) error {
	if lod < 0 || lod >= e.lodCount {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidLOD, lod, e.lodCount)
	}
	if in == nil || len(in.values) != e.controlCount+1 || in.controls != e.controlCount {
		return fmt.Errorf("%w: input instance", ErrInstanceMismatch)
	}
	if out == nil || out.buf == nil || len(out.values) != e.outputCount ||
		len(out.gathered) < e.maxCols || len(out.raw) < e.maxRows ||
		out.buf.Len() < e.outputCount+e.maxCols+e.maxRows+rotationScratch {
		return fmt.Errorf("%w: output instance", ErrInstanceMismatch)
	}
	return nil
}

func (e *Evaluator) calculateGroup(g *PackedJointGroup, in *InputInstance, out *OutputInstance, lod int) {
	region := g.regions[lod]
	raw := out.raw[:g.rowCount]
	e.strategy.calculate(g, in.values, region, out.gathered, raw)

	for row, o := range g.outputIndices[:region.Size] {
		if o != skipOutput {
			out.values[o] += raw[row]
		}
	}

	targets := g.targets[:g.rotationLODs[lod]]
	if len(targets) == 0 {
		return
	}

	srcN := e.adapter.SourceComponents()
	dstN := e.adapter.TargetComponents()
	src := out.rotation[:srcN]
	dst := out.rotation[4 : 4+dstN]
	for i := range targets {
		t := &targets[i]
		for c := range src {
			row := int(t.rows[c])
			switch {
			case row >= 0 && row < region.Size:
				src[c] = raw[row]
			case c == 3:
				// An undriven or inactive quaternion w is the identity.
				src[c] = 1
			default:
				src[c] = 0
			}
		}

		e.adapter.Apply(dst, src)

		o := out.values[t.offset : t.offset+dstN]
		for c, v := range dst {
			o[c] += v
		}
	}
}

// LODCount returns the number of LODs.
func (e *Evaluator) LODCount() int { return e.lodCount }

// JointCount returns the number of joints.
func (e *Evaluator) JointCount() int { return e.jointCount }

// ControlCount returns the number of control inputs.
func (e *Evaluator) ControlCount() int { return e.controlCount }

// OutputCount returns the number of output attributes.
func (e *Evaluator) OutputCount() int { return e.outputCount }

// JointGroupCount returns the number of joint groups.
func (e *Evaluator) JointGroupCount() int { return len(e.groups) }

// JointGroup returns the packed storage of group i, or nil if out of range.
func (e *Evaluator) JointGroup(i int) *PackedJointGroup {
	if i < 0 || i >= len(e.groups) {
		return nil
	}
	return e.groups[i]
}

// Configuration returns the configuration the evaluator was built with.
func (e *Evaluator) Configuration() Configuration { return e.cfg }

// KernelName returns the name of the block kernel in use.
func (e *Evaluator) KernelName() string { return e.kernelName }

// BlockWidth returns the column block width W of the packed storage.
func (e *Evaluator) BlockWidth() int { return e.blockWidth }

// BlockHeight returns the row-block height of the packed storage.
func (e *Evaluator) BlockHeight() int { return e.blockHeight }

// StorageBytes returns the size of the weight and index arenas.
func (e *Evaluator) StorageBytes() int { return e.storageBytes }

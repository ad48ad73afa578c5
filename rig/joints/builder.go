package joints

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-rig/internal/logger"
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
	"github.com/cwbudde/algo-rig/rig/rotation"
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/x448/float16"
)

// groupPlan is the storage layout of one joint group computed by
// ComputeStorageRequirements.
type groupPlan struct {
	rawRows, rawCols   int
	colCount, rowCount int

	// kept lists the raw rows materialized by the filter, in raw order.
	kept    []int
	outputs []uint32

	regions      []LODRegion
	targets      []rotationTarget
	rotationLODs []int

	weightOffset int
	indexOffset  int
}

// Builder compiles raw joint behavior into block-packed storage.
//
// The phases ComputeStorageRequirements, AllocateStorage and FillStorage
// must run in that order with the same filter before Build. Re-running the
// most recently completed phase is a no-op; running an earlier phase
// rewinds the pipeline to it.
type Builder struct {
	cfg     builderConfig
	kernel  *registry.OpEntry
	log     logger.Logger
	phase   Phase
	filter  *BehaviorFilter
	adapter rotation.Adapter

	plans     []groupPlan
	weightLen int
	indexLen  int

	weights32 []float32
	weights16 []float16.Float16
	indices   []uint32
	groups    []*PackedJointGroup
}

// NewBuilder returns a Builder for the given options. It fails with
// ErrUnsupportedConfiguration when no registered kernel implements the
// requested calculation type on this CPU.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := builderConfig{
		Configuration: DefaultConfiguration(),
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	kernel, err := selectKernel(cfg.CalculationType, cpu.DetectFeatures())
	if err != nil {
		return nil, err
	}

	log := cfg.log.With("component", "joints.builder")
	log.Info("selected joint kernel",
		"kernel", kernel.Name,
		"calculation", cfg.CalculationType.String(),
		"precision", cfg.FloatingPoint.String(),
		"block_width", kernel.BlockWidth)

	return &Builder{cfg: cfg, kernel: kernel, log: log}, nil
}

// selectKernel resolves a calculation type to a registered kernel.
func selectKernel(t CalculationType, features cpu.Features) (*registry.OpEntry, error) {
	var entry *registry.OpEntry
	if level, fixed := t.simdLevel(); fixed {
		entry = registry.Global.LookupLevel(features, level)
	} else {
		entry = registry.Global.Lookup(features)
	}

	if entry == nil {
		return nil, fmt.Errorf("%w: no %s kernel available on %s", ErrUnsupportedConfiguration, t, features.Architecture)
	}
	if entry.Calculate32 == nil || entry.Calculate16 == nil {
		return nil, fmt.Errorf("%w: kernel %s is incomplete", ErrUnsupportedConfiguration, entry.Name)
	}
	return entry, nil
}

// KernelName returns the name of the selected block kernel.
func (b *Builder) KernelName() string { return b.kernel.Name }

// ComputeStorageRequirements validates the data behind f and computes the
// padded layout of every joint group. It starts a new build when f differs
// from the filter of the pipeline in progress.
func (b *Builder) ComputeStorageRequirements(f *BehaviorFilter) error {
	if f == nil || f.Reader() == nil {
		return buildError(PhaseRequirements, -1, ErrPhaseOrder, "nil behavior filter")
	}
	if b.phase == PhaseRequirements && f == b.filter {
		return nil
	}

	b.reset()

	r := f.Reader()
	if err := b.validateShape(r); err != nil {
		return err
	}

	adapter, err := rotation.Select(r.RotationRepresentation(), b.cfg.RotationType, b.cfg.RotationUnit, b.cfg.RotationOrder)
	if err != nil {
		return buildError(PhaseRequirements, -1, ErrUnsupportedConfiguration, "%v", err)
	}
	b.adapter = adapter

	driven := make([]bool, r.JointCount()*AttributeStride(r.RotationRepresentation()))
	rotationOwner := make([]int, r.JointCount())
	for i := range rotationOwner {
		rotationOwner[i] = -1
	}

	elem32 := b.cfg.FloatingPoint == Float32
	for g := range r.JointGroupCount() {
		plan, err := b.planGroup(f, g, driven, rotationOwner)
		if err != nil {
			b.reset()
			return err
		}

		plan.weightOffset = b.weightLen
		plan.indexOffset = b.indexLen
		n := plan.rowCount * plan.colCount
		if elem32 {
			b.weightLen += alignedElems(n, 4)
		} else {
			b.weightLen += alignedElems(n, 2)
		}
		b.indexLen += plan.colCount + len(plan.kept)
		b.plans = append(b.plans, plan)
	}

	b.filter = f
	b.phase = PhaseRequirements

	b.log.Debug("computed storage requirements",
		"groups", len(b.plans),
		"weights", b.weightLen,
		"indices", b.indexLen,
		"adapter", fmt.Sprintf("%T", adapter))
	return nil
}

func (b *Builder) validateShape(r Reader) error {
	switch {
	case r.JointCount() < 0 || r.ControlCount() < 0:
		return buildError(PhaseRequirements, -1, ErrInconsistentMatrix,
			"negative joint (%d) or control (%d) count", r.JointCount(), r.ControlCount())
	case r.LODCount() < 1:
		return buildError(PhaseRequirements, -1, ErrInconsistentMatrix, "rig has no LODs")
	case r.RotationRepresentation() > rotation.Quaternion:
		return buildError(PhaseRequirements, -1, ErrUnsupportedConfiguration,
			"source rotation representation %d", r.RotationRepresentation())
	}
	return nil
}

func (b *Builder) planGroup(f *BehaviorFilter, g int, driven []bool, rotationOwner []int) (groupPlan, error) {
	r := f.Reader()
	srcRep := r.RotationRepresentation()
	srcStride := AttributeStride(srcRep)
	dstStride := AttributeStride(b.cfg.RotationType)
	_, passthrough := b.adapter.(rotation.Passthrough)

	rows := r.JointGroupRowCount(g)
	cols := r.JointGroupColumnCount(g)
	inputs := r.JointGroupInputIndices(g)
	outputs := r.JointGroupOutputIndices(g)
	values := r.JointGroupValues(g)
	lods := r.JointGroupLODs(g)

	fail := func(format string, args ...any) (groupPlan, error) {
		return groupPlan{}, buildError(PhaseRequirements, g, ErrInconsistentMatrix, format, args...)
	}

	switch {
	case rows != len(outputs):
		return fail("row count %d != %d output indices", rows, len(outputs))
	case cols != len(inputs):
		return fail("column count %d != %d input indices", cols, len(inputs))
	case len(values) != rows*cols:
		return fail("%d values for a %dx%d matrix", len(values), rows, cols)
	case len(lods) != r.LODCount():
		return fail("%d LOD row counts for %d LODs", len(lods), r.LODCount())
	}

	for i, n := range lods {
		if int(n) > rows {
			return fail("LOD %d row count %d exceeds %d rows", i, n, rows)
		}
		if i > 0 && n > lods[i-1] {
			return fail("LOD row counts increase at LOD %d (%d > %d)", i, n, lods[i-1])
		}
	}
	for c, in := range inputs {
		if int(in) >= r.ControlCount() {
			return fail("column %d input index %d >= %d controls", c, in, r.ControlCount())
		}
	}

	plan := groupPlan{rawRows: rows, rawCols: cols}
	targetOf := map[int]int{}

	for row, out := range outputs {
		o := int(out)
		if o >= len(driven) {
			return fail("row %d output index %d >= %d attributes", row, o, len(driven))
		}
		if driven[o] {
			return fail("row %d drives attribute %d already driven by another row", row, o)
		}
		driven[o] = true

		joint, attr := o/srcStride, o%srcStride
		if !f.keepsAttribute(attr, srcRep) {
			continue
		}

		stored := len(plan.kept)
		plan.kept = append(plan.kept, row)

		kind, comp := ClassifyAttribute(attr, srcRep)
		if kind != Rotation || passthrough {
			plan.outputs = append(plan.outputs,
				uint32(joint*dstStride+AttributeIndex(kind, comp, b.cfg.RotationType)))
			continue
		}

		if owner := rotationOwner[joint]; owner >= 0 && owner != g {
			return fail("rotation of joint %d is split across joint groups %d and %d", joint, owner, g)
		}
		rotationOwner[joint] = g

		t, ok := targetOf[joint]
		if !ok {
			t = len(plan.targets)
			targetOf[joint] = t
			plan.targets = append(plan.targets, rotationTarget{
				rows:   [4]int32{-1, -1, -1, -1},
				first:  stored,
				offset: joint*dstStride + AttributeIndex(Rotation, 0, b.cfg.RotationType),
			})
		}
		plan.targets[t].rows[comp] = int32(stored)
		plan.outputs = append(plan.outputs, skipOutput)
	}

	sort.SliceStable(plan.targets, func(i, j int) bool {
		return plan.targets[i].first < plan.targets[j].first
	})

	height := b.kernel.BlockHeight
	plan.colCount = roundUp(cols, b.kernel.BlockWidth)
	plan.rowCount = roundUp(len(plan.kept), height)
	plan.regions = make([]LODRegion, len(lods))
	plan.rotationLODs = make([]int, len(lods))

	for lod, n := range lods {
		size := sort.SearchInts(plan.kept, int(n))
		plan.regions[lod] = newLODRegion(size, height)
		plan.rotationLODs[lod] = sort.Search(len(plan.targets), func(i int) bool {
			return plan.targets[i].first >= size
		})
	}

	return plan, nil
}

// AllocateStorage allocates zeroed, aligned arenas sized by the
// requirements phase.
func (b *Builder) AllocateStorage(f *BehaviorFilter) error {
	if err := b.checkPhase(PhaseAllocate, f); err != nil {
		return err
	}
	if b.phase == PhaseAllocate {
		return nil
	}

	b.weights32, b.weights16 = nil, nil
	if b.cfg.FloatingPoint == Float16 {
		b.weights16 = alignedSlice[float16.Float16](b.weightLen)
	} else {
		b.weights32 = alignedSlice[float32](b.weightLen)
	}
	b.indices = make([]uint32, b.indexLen)
	b.groups = nil

	b.phase = PhaseAllocate
	b.log.Debug("allocated storage", "bytes", b.storageBytes())
	return nil
}

// FillStorage writes weights in block order together with the remapped
// index tables and LOD regions.
func (b *Builder) FillStorage(f *BehaviorFilter) error {
	if err := b.checkPhase(PhaseFill, f); err != nil {
		return err
	}
	if b.phase == PhaseFill {
		return nil
	}

	r := f.Reader()
	zeroSlot := uint32(r.ControlCount())
	width, height := b.kernel.BlockWidth, b.kernel.BlockHeight

	groups := make([]*PackedJointGroup, len(b.plans))
	for g := range b.plans {
		plan := &b.plans[g]
		values := r.JointGroupValues(g)
		inputs := r.JointGroupInputIndices(g)
		n := plan.rowCount * plan.colCount

		pg := &PackedJointGroup{
			colCount:     plan.colCount,
			rowCount:     plan.rowCount,
			rawRows:      plan.rawRows,
			rawCols:      plan.rawCols,
			storedRows:   len(plan.kept),
			blockWidth:   width,
			blockHeight:  height,
			regions:      plan.regions,
			targets:      plan.targets,
			rotationLODs: plan.rotationLODs,
		}

		if b.weights16 != nil {
			pg.half = true
			pg.weights16 = b.weights16[plan.weightOffset : plan.weightOffset+n : plan.weightOffset+n]
		} else {
			pg.weights32 = b.weights32[plan.weightOffset : plan.weightOffset+n : plan.weightOffset+n]
		}

		for stored, raw := range plan.kept {
			src := values[raw*plan.rawCols : (raw+1)*plan.rawCols]
			for c, v := range src {
				pos := blockOffset(stored, c, plan.colCount, width, height)
				if pg.half {
					pg.weights16[pos] = float16.Fromfloat32(v)
				} else {
					pg.weights32[pos] = v
				}
			}
		}

		end := plan.indexOffset + plan.colCount + len(plan.kept)
		idx := b.indices[plan.indexOffset:end:end]
		pg.inputIndices = idx[:plan.colCount:plan.colCount]
		pg.outputIndices = idx[plan.colCount:]
		for c := range pg.inputIndices {
			if c < len(inputs) {
				pg.inputIndices[c] = uint32(inputs[c])
			} else {
				pg.inputIndices[c] = zeroSlot
			}
		}
		copy(pg.outputIndices, plan.outputs)

		groups[g] = pg
	}

	b.groups = groups
	b.phase = PhaseFill
	b.log.Debug("filled storage", "groups", len(groups))
	return nil
}

// Build returns an Evaluator owning the filled storage and resets the
// builder for another build.
func (b *Builder) Build() (*Evaluator, error) {
	if b.phase != PhaseFill {
		return nil, buildError(PhaseBuild, -1, ErrIncompleteStorage, "last completed phase: %s", b.phase)
	}

	r := b.filter.Reader()
	e := &Evaluator{
		cfg:          b.cfg.Configuration,
		kernelName:   b.KernelName(),
		blockWidth:   b.kernel.BlockWidth,
		blockHeight:  b.kernel.BlockHeight,
		adapter:      b.adapter,
		groups:       b.groups,
		jointCount:   r.JointCount(),
		controlCount: r.ControlCount(),
		lodCount:     r.LODCount(),
		storageBytes: b.storageBytes(),
	}
	e.outputCount = e.jointCount * AttributeStride(b.cfg.RotationType)

	if b.cfg.FloatingPoint == Float16 {
		e.strategy = blockStrategy16{kernel: b.kernel.Calculate16}
	} else {
		e.strategy = blockStrategy32{kernel: b.kernel.Calculate32}
	}
	for _, g := range b.groups {
		e.maxCols = max(e.maxCols, g.colCount)
		e.maxRows = max(e.maxRows, g.rowCount)
	}

	b.log.Debug("built evaluator",
		"groups", len(e.groups),
		"outputs", e.outputCount,
		"storage_bytes", e.storageBytes)

	b.reset()
	return e, nil
}

// checkPhase enforces ordering for AllocateStorage and FillStorage.
func (b *Builder) checkPhase(phase Phase, f *BehaviorFilter) error {
	if b.phase < phase-1 {
		return buildError(phase, -1, ErrPhaseOrder, "last completed phase: %s", b.phase)
	}
	if f != b.filter {
		return buildError(phase, -1, ErrPhaseOrder, "filter differs from the requirements phase")
	}
	return nil
}

func (b *Builder) storageBytes() int {
	weightBytes := b.weightLen * 4
	if b.cfg.FloatingPoint == Float16 {
		weightBytes = b.weightLen * 2
	}
	return weightBytes + b.indexLen*4
}

func (b *Builder) reset() {
	b.phase = phaseNone
	b.filter = nil
	b.adapter = nil
	b.plans = nil
	b.weightLen = 0
	b.indexLen = 0
	b.weights32 = nil
	b.weights16 = nil
	b.indices = nil
	b.groups = nil
}

// NewEvaluator builds an Evaluator over every row of r.
func NewEvaluator(r Reader, opts ...Option) (*Evaluator, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	f := NewBehaviorFilter(r)
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

package joints

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-rig/rig/rotation"
)

func TestPaddingCorrectness(t *testing.T) {
	for _, calc := range []CalculationType{Scalar, AnyVector} {
		for _, prec := range []FloatingPointType{Float32, Float16} {
			r := newTestBehavior(11, 12, 23, 3, 3, rotation.EulerAngles)
			e, err := NewEvaluator(r, WithCalculationType(calc), WithFloatingPoint(prec))
			if err != nil {
				t.Fatalf("NewEvaluator(%s, %s): %v", calc, prec, err)
			}

			w := e.BlockWidth()
			for gi := range e.JointGroupCount() {
				g := e.JointGroup(gi)
				if g.ColumnCount()%w != 0 {
					t.Fatalf("group %d: colCount %d not a multiple of %d", gi, g.ColumnCount(), w)
				}
				if g.RowCount()%e.BlockHeight() != 0 {
					t.Fatalf("group %d: rowCount %d not a multiple of %d", gi, g.RowCount(), e.BlockHeight())
				}
				for row := range g.RowCount() {
					for col := range g.ColumnCount() {
						if (col >= g.RawColumnCount() || row >= g.StoredRowCount()) && g.Weight(row, col) != 0 {
							t.Fatalf("group %d: padding weight (%d, %d) = %v", gi, row, col, g.Weight(row, col))
						}
					}
				}
				for c, idx := range g.InputIndices() {
					if c >= g.RawColumnCount() && int(idx) != r.ControlCount() {
						t.Fatalf("group %d: padding column %d reads input %d, want zero slot %d", gi, c, idx, r.ControlCount())
					}
				}
			}
		}
	}
}

func TestWeightsRoundTripThroughLayout(t *testing.T) {
	r := newTestBehavior(5, 6, 9, 2, 1, rotation.Quaternion)
	e, err := NewEvaluator(r, WithCalculationType(Scalar))
	if err != nil {
		t.Fatal(err)
	}

	for gi := range r.JointGroupCount() {
		g := e.JointGroup(gi)
		cols := r.JointGroupColumnCount(gi)
		values := r.JointGroupValues(gi)
		for row := range r.JointGroupRowCount(gi) {
			for col := range cols {
				if got, want := g.Weight(row, col), values[row*cols+col]; got != want {
					t.Fatalf("group %d (%d, %d) = %v, want %v", gi, row, col, got, want)
				}
			}
		}
	}
}

func TestLODMonotonicity(t *testing.T) {
	r := newTestBehavior(21, 20, 15, 4, 5, rotation.EulerAngles)
	e, err := NewEvaluator(r)
	if err != nil {
		t.Fatal(err)
	}

	for gi := range e.JointGroupCount() {
		g := e.JointGroup(gi)
		regions := g.LODRegions()
		lods := r.JointGroupLODs(gi)
		for i, reg := range regions {
			if reg.Size != int(lods[i]) {
				t.Fatalf("group %d LOD %d: size %d, want %d", gi, i, reg.Size, lods[i])
			}
			if reg.SizePaddedToLastFullBlock%e.BlockHeight() != 0 || reg.SizePaddedToSecondLastFullBlock%(2*e.BlockHeight()) != 0 {
				t.Fatalf("group %d LOD %d: bounds not block aligned: %+v", gi, i, reg)
			}
			if i > 0 && reg.Size > regions[i-1].Size {
				t.Fatalf("group %d: LOD %d size %d > LOD %d size %d", gi, i, reg.Size, i-1, regions[i-1].Size)
			}
			if i > 0 && g.RotationCount(i) > g.RotationCount(i-1) {
				t.Fatalf("group %d: rotation count grows at LOD %d", gi, i)
			}
		}
	}
}

func TestScenarioLayout(t *testing.T) {
	e, err := NewEvaluator(scenarioBehavior(),
		WithCalculationType(Scalar),
		WithRotationType(rotation.Quaternion))
	if err != nil {
		t.Fatal(err)
	}

	g := e.JointGroup(0)
	if g.ColumnCount() != 8 {
		t.Fatalf("colCount = %d, want 8", g.ColumnCount())
	}
	if g.LODRegion(0).Size != 3 || g.LODRegion(1).Size != 1 {
		t.Fatalf("LOD sizes = %d, %d; want 3, 1", g.LODRegion(0).Size, g.LODRegion(1).Size)
	}
	if g.RotationCount(0) != 1 || g.RotationCount(1) != 1 {
		t.Fatalf("rotation counts = %d, %d; want 1, 1", g.RotationCount(0), g.RotationCount(1))
	}

	outputs := g.OutputIndices()
	want := []uint32{skipOutput, 10, 11}
	for i := range want {
		if outputs[i] != want[i] {
			t.Fatalf("output index %d = %d, want %d", i, outputs[i], want[i])
		}
	}
}

func TestFilterSelectsRows(t *testing.T) {
	r := scenarioBehavior()
	b, err := NewBuilder(WithCalculationType(Scalar))
	if err != nil {
		t.Fatal(err)
	}

	e, err := buildAll(b, NewBehaviorFilter(r, Translation))
	if err != nil {
		t.Fatal(err)
	}

	f := NewBehaviorFilter(r, Translation)
	if !f.Keeps(Translation) || f.Keeps(Rotation) || f.Keeps(Scale) {
		t.Fatal("Keeps does not match the requested kinds")
	}
	if all := NewBehaviorFilter(r); !all.Keeps(Rotation) {
		t.Fatal("filter without kinds must keep every kind")
	}

	g := e.JointGroup(0)
	if g.StoredRowCount() != 2 || g.RawRowCount() != 3 {
		t.Fatalf("stored/raw rows = %d/%d, want 2/3", g.StoredRowCount(), g.RawRowCount())
	}
	// LOD 1 keeps raw row 0 only, which is the filtered-out rotation.
	if g.LODRegion(0).Size != 2 || g.LODRegion(1).Size != 0 {
		t.Fatalf("LOD sizes = %d, %d; want 2, 0", g.LODRegion(0).Size, g.LODRegion(1).Size)
	}
	if g.Weight(0, 0) != 1 || g.Weight(1, 5) != 3 {
		t.Fatalf("filtered weights not packed in raw order")
	}
}

func TestBuilderPhaseOrder(t *testing.T) {
	r := scenarioBehavior()
	f := NewBehaviorFilter(r)

	b, err := NewBuilder()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.Build(); !errors.Is(err, ErrIncompleteStorage) {
		t.Fatalf("Build on empty builder: expected ErrIncompleteStorage, got %v", err)
	}
	if err := b.AllocateStorage(f); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("AllocateStorage first: expected ErrPhaseOrder, got %v", err)
	}
	if err := b.FillStorage(f); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("FillStorage first: expected ErrPhaseOrder, got %v", err)
	}

	if err := b.ComputeStorageRequirements(f); err != nil {
		t.Fatal(err)
	}
	if err := b.ComputeStorageRequirements(f); err != nil {
		t.Fatalf("repeated requirements phase: %v", err)
	}
	if err := b.FillStorage(f); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("skipping allocate: expected ErrPhaseOrder, got %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrIncompleteStorage) {
		t.Fatalf("Build before fill: expected ErrIncompleteStorage, got %v", err)
	}

	if err := b.AllocateStorage(NewBehaviorFilter(r)); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("different filter: expected ErrPhaseOrder, got %v", err)
	}
	if err := b.AllocateStorage(f); err != nil {
		t.Fatal(err)
	}
	if err := b.AllocateStorage(f); err != nil {
		t.Fatalf("repeated allocate phase: %v", err)
	}
	if err := b.FillStorage(f); err != nil {
		t.Fatal(err)
	}
	if err := b.FillStorage(f); err != nil {
		t.Fatalf("repeated fill phase: %v", err)
	}

	// Rewinding to allocate discards the filled storage.
	if err := b.AllocateStorage(f); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrIncompleteStorage) {
		t.Fatalf("Build after rewind: expected ErrIncompleteStorage, got %v", err)
	}
	if err := b.FillStorage(f); err != nil {
		t.Fatal(err)
	}

	e, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if e.JointGroupCount() != 1 {
		t.Fatalf("JointGroupCount = %d, want 1", e.JointGroupCount())
	}

	// Build resets the builder.
	if _, err := b.Build(); !errors.Is(err, ErrIncompleteStorage) {
		t.Fatalf("second Build: expected ErrIncompleteStorage, got %v", err)
	}
	if _, err := buildAll(b, f); err != nil {
		t.Fatalf("builder not reusable after Build: %v", err)
	}
}

func TestBuilderRejectsInconsistentMatrix(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawBehavior)
	}{
		{"values", func(r *RawBehavior) { r.Groups[0].Values = r.Groups[0].Values[1:] }},
		{"lod count", func(r *RawBehavior) { r.Groups[0].LODs = []uint16{3} }},
		{"lod increases", func(r *RawBehavior) { r.Groups[0].LODs = []uint16{1, 2} }},
		{"lod exceeds rows", func(r *RawBehavior) { r.Groups[0].LODs = []uint16{4, 1} }},
		{"input index", func(r *RawBehavior) { r.Groups[0].InputIndices[5] = 6 }},
		{"output index", func(r *RawBehavior) { r.Groups[0].OutputIndices[2] = 18 }},
		{"duplicate output", func(r *RawBehavior) { r.Groups[0].OutputIndices[2] = 9 }},
		{"no lods", func(r *RawBehavior) { r.LODs = 0; r.Groups[0].LODs = nil }},
		{"split rotation", func(r *RawBehavior) {
			r.Groups = append(r.Groups, RawJointGroup{
				InputIndices:  []uint16{0},
				OutputIndices: []uint16{3},
				LODs:          []uint16{1, 1},
				Values:        []float32{1},
			})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := scenarioBehavior()
			tt.mutate(r)

			_, err := NewEvaluator(r, WithRotationType(rotation.Quaternion))
			if !errors.Is(err, ErrInconsistentMatrix) {
				t.Fatalf("expected ErrInconsistentMatrix, got %v", err)
			}

			var be *BuildError
			if !errors.As(err, &be) || be.Phase != PhaseRequirements {
				t.Fatalf("expected *BuildError in requirements phase, got %#v", err)
			}
		})
	}
}

func TestSplitRotationAllowedWithoutConversion(t *testing.T) {
	r := scenarioBehavior()
	r.Groups = append(r.Groups, RawJointGroup{
		InputIndices:  []uint16{0},
		OutputIndices: []uint16{3},
		LODs:          []uint16{1, 1},
		Values:        []float32{1},
	})

	if _, err := NewEvaluator(r); err != nil {
		t.Fatalf("Euler passthrough with split rotation: %v", err)
	}
}

func TestNewBuilderOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"calculation", WithCalculationType(CalculationType(42))},
		{"precision", WithFloatingPoint(FloatingPointType(3))},
		{"rotation", WithRotationType(rotation.Representation(7))},
		{"unit", WithRotationUnit(rotation.AngleUnit(9))},
		{"order", WithRotationOrder(rotation.Order(6))},
		{"configuration", WithConfiguration(Configuration{FloatingPoint: 5})},
	}

	for _, tt := range tests {
		if _, err := NewBuilder(tt.opt); !errors.Is(err, ErrUnsupportedConfiguration) {
			t.Fatalf("%s: expected ErrUnsupportedConfiguration, got %v", tt.name, err)
		}
	}

	if _, err := NewBuilder(WithLogger(nil)); err == nil {
		t.Fatal("expected error for nil logger")
	}

	b, err := NewBuilder(WithCalculationType(Scalar))
	if err != nil {
		t.Fatal(err)
	}
	if b.KernelName() != "generic" {
		t.Fatalf("KernelName = %q, want generic", b.KernelName())
	}
	e, err := buildAll(b, NewBehaviorFilter(scenarioBehavior()))
	if err != nil {
		t.Fatal(err)
	}
	if e.KernelName() != "generic" {
		t.Fatalf("evaluator KernelName = %q, want generic", e.KernelName())
	}
}

func TestStorageBytes(t *testing.T) {
	r := scenarioBehavior()

	e32, err := NewEvaluator(r, WithCalculationType(Scalar))
	if err != nil {
		t.Fatal(err)
	}
	e16, err := NewEvaluator(r, WithCalculationType(Scalar), WithFloatingPoint(Float16))
	if err != nil {
		t.Fatal(err)
	}

	// 4x8 weights, 8 input and 3 output indices.
	if got := e32.StorageBytes(); got != 32*4+11*4 {
		t.Fatalf("float32 storage = %d bytes, want %d", got, 32*4+11*4)
	}
	if got := e16.StorageBytes(); got != 32*2+11*4 {
		t.Fatalf("float16 storage = %d bytes, want %d", got, 32*2+11*4)
	}
}

func TestParseConfigurationValues(t *testing.T) {
	if c, err := ParseCalculationType("AVX"); err != nil || c != AVX {
		t.Fatalf("ParseCalculationType = %v, %v", c, err)
	}
	if c, err := ParseCalculationType("auto"); err != nil || c != AnyVector {
		t.Fatalf("ParseCalculationType(auto) = %v, %v", c, err)
	}
	if _, err := ParseCalculationType("mmx"); err == nil {
		t.Fatal("ParseCalculationType accepted mmx")
	}
	if p, err := ParseFloatingPoint("half"); err != nil || p != Float16 {
		t.Fatalf("ParseFloatingPoint = %v, %v", p, err)
	}
}

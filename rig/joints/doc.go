// Package joints evaluates linear joint behavior: per joint group, a dense
// weight matrix maps control values to translation, rotation and scale
// deltas of skeletal joints.
//
// A [Builder] compiles raw matrices from a [Reader] into block-packed
// storage in three phases, then [Builder.Build] returns an immutable
// [Evaluator]. Column counts are padded to the kernel block width W and
// row counts to the block height, with zero weights in every padding slot,
// so the block kernels never branch on matrix boundaries.
//
// Each joint group carries one [LODRegion] per level of detail. Evaluating
// LOD i computes only the leading rows active at that LOD.
//
// Rotation rows are converted with a [rotation.Adapter] when the source and
// output representations differ. Euler angle rows of one joint are
// gathered, converted to a quaternion and added to the output; quaternion
// rows are converted the other way.
//
// Basic use:
//
//	eval, err := joints.NewEvaluator(reader, joints.WithRotationType(rotation.Quaternion))
//	if err != nil {
//		return err
//	}
//	in := eval.CreateInputInstance()
//	out := eval.CreateInstance()
//	in.SetValues(controls)
//	err = eval.Calculate(in, out, 0)
//
// Kernels are selected at build time from the CPU features reported by
// algo-vecmath/cpu. Build with -tags purego to force the portable kernel.
package joints

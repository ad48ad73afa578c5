// Package buffer provides a reusable float32 buffer and a pool used as the
// memory policy for evaluator instances.
//
// Evaluators hand out flat float32 slices for control inputs, joint outputs
// and per-instance scratch. Callers evaluating many short-lived instances can
// pass a [Pool] so those slices are recycled instead of reallocated.
package buffer

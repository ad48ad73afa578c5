package joints

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteStorage is returned by Build before FillStorage completed.
	ErrIncompleteStorage = errors.New("joints: storage is incomplete")
	// ErrPhaseOrder is returned when a builder phase is skipped or run with
	// a different filter than the requirements phase.
	ErrPhaseOrder = errors.New("joints: builder phase out of order")
	// ErrUnsupportedConfiguration is returned when no kernel or rotation
	// adapter exists for the requested configuration.
	ErrUnsupportedConfiguration = errors.New("joints: unsupported configuration")
	// ErrInconsistentMatrix is returned when raw joint group data violates
	// its shape or index invariants.
	ErrInconsistentMatrix = errors.New("joints: inconsistent joint group matrix")

	// ErrInvalidLOD is returned by Calculate for an out-of-range LOD.
	ErrInvalidLOD = errors.New("joints: invalid LOD")
	// ErrInvalidJointGroup is returned by CalculateJointGroup for an
	// out-of-range group index.
	ErrInvalidJointGroup = errors.New("joints: invalid joint group")
	// ErrInstanceMismatch is returned when an instance was not created for
	// an evaluator of this shape, or was already released.
	ErrInstanceMismatch = errors.New("joints: instance does not match evaluator")
)

// Phase identifies a builder step.
type Phase uint8

const (
	phaseNone Phase = iota
	PhaseRequirements
	PhaseAllocate
	PhaseFill
	PhaseBuild
)

func (p Phase) String() string {
	switch p {
	case PhaseRequirements:
		return "compute storage requirements"
	case PhaseAllocate:
		return "allocate storage"
	case PhaseFill:
		return "fill storage"
	case PhaseBuild:
		return "build"
	default:
		return "none"
	}
}

// BuildError carries the phase and joint group a build failure occurred in.
// JointGroup is -1 when the failure is not tied to one group.
type BuildError struct {
	Phase      Phase
	JointGroup int
	Err        error
	Detail     string
}

func (e *BuildError) Error() string {
	msg := e.Phase.String()
	if e.JointGroup >= 0 {
		msg += fmt.Sprintf(": joint group %d", e.JointGroup)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%v (%s)", e.Err, msg)
}

func (e *BuildError) Unwrap() error { return e.Err }

func buildError(phase Phase, group int, err error, format string, args ...any) *BuildError {
	return &BuildError{
		Phase:      phase,
		JointGroup: group,
		Err:        err,
		Detail:     fmt.Sprintf(format, args...),
	}
}

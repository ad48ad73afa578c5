package joints

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-rig/internal/logger"
	"github.com/cwbudde/algo-rig/rig/rotation"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// CalculationType selects the kernel family used for evaluation.
type CalculationType uint8

const (
	// Scalar uses the portable 4-wide block kernel.
	Scalar CalculationType = iota
	// SSE uses the 4-wide SSE2 kernel (amd64).
	SSE
	// AVX uses the 8-wide AVX2 kernel (amd64).
	AVX
	// NEON uses the 4-wide NEON kernel (arm64).
	NEON
	// AnyVector picks the fastest kernel the CPU supports.
	AnyVector
)

var calculationTypeNames = [...]string{
	Scalar:    "scalar",
	SSE:       "sse",
	AVX:       "avx",
	NEON:      "neon",
	AnyVector: "any",
}

func (t CalculationType) String() string {
	if int(t) < len(calculationTypeNames) {
		return calculationTypeNames[t]
	}
	return "unknown"
}

// ParseCalculationType parses a calculation type name such as "avx".
func ParseCalculationType(s string) (CalculationType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "anyvector" || key == "auto" {
		return AnyVector, nil
	}
	for i, name := range calculationTypeNames {
		if name == key {
			return CalculationType(i), nil
		}
	}
	return 0, fmt.Errorf("joints: unknown calculation type %q", s)
}

// simdLevel maps a fixed calculation type to the registry level that
// implements it. AnyVector has no fixed level.
func (t CalculationType) simdLevel() (cpu.SIMDLevel, bool) {
	switch t {
	case Scalar:
		return cpu.SIMDNone, true
	case SSE:
		return cpu.SIMDSSE2, true
	case AVX:
		return cpu.SIMDAVX2, true
	case NEON:
		return cpu.SIMDNEON, true
	default:
		return cpu.SIMDNone, false
	}
}

// FloatingPointType selects the storage precision of packed weights.
// Accumulation is always float32.
type FloatingPointType uint8

const (
	Float32 FloatingPointType = iota
	Float16
)

func (p FloatingPointType) String() string {
	switch p {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	default:
		return "unknown"
	}
}

// ParseFloatingPoint parses "float32"/"f32" or "float16"/"f16"/"half".
func ParseFloatingPoint(s string) (FloatingPointType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "f32", "single":
		return Float32, nil
	case "float16", "f16", "half":
		return Float16, nil
	default:
		return 0, fmt.Errorf("joints: unknown floating point type %q", s)
	}
}

// Configuration is the build-time knob set of a Builder.
type Configuration struct {
	CalculationType CalculationType
	FloatingPoint   FloatingPointType
	// RotationType is the rotation representation of evaluator outputs.
	RotationType  rotation.Representation
	RotationUnit  rotation.AngleUnit
	RotationOrder rotation.Order
}

// DefaultConfiguration returns the fastest available kernel with float32
// storage and Euler angle outputs in degrees, XYZ order.
func DefaultConfiguration() Configuration {
	return Configuration{
		CalculationType: AnyVector,
		FloatingPoint:   Float32,
		RotationType:    rotation.EulerAngles,
		RotationUnit:    rotation.Degrees,
		RotationOrder:   rotation.XYZ,
	}
}

func (c Configuration) validate() error {
	switch {
	case c.CalculationType > AnyVector:
		return fmt.Errorf("%w: calculation type %d", ErrUnsupportedConfiguration, c.CalculationType)
	case c.FloatingPoint > Float16:
		return fmt.Errorf("%w: floating point type %d", ErrUnsupportedConfiguration, c.FloatingPoint)
	case c.RotationType > rotation.Quaternion:
		return fmt.Errorf("%w: rotation type %d", ErrUnsupportedConfiguration, c.RotationType)
	case c.RotationUnit > rotation.Radians:
		return fmt.Errorf("%w: rotation unit %d", ErrUnsupportedConfiguration, c.RotationUnit)
	case !c.RotationOrder.Valid():
		return fmt.Errorf("%w: rotation order %d", ErrUnsupportedConfiguration, c.RotationOrder)
	}
	return nil
}

type builderConfig struct {
	Configuration
	log logger.Logger
}

// Option configures a Builder.
type Option func(*builderConfig) error

// WithConfiguration replaces the whole configuration.
func WithConfiguration(c Configuration) Option {
	return func(cfg *builderConfig) error {
		if err := c.validate(); err != nil {
			return err
		}
		cfg.Configuration = c
		return nil
	}
}

// WithCalculationType selects the kernel family.
func WithCalculationType(t CalculationType) Option {
	return func(cfg *builderConfig) error {
		if t > AnyVector {
			return fmt.Errorf("%w: calculation type %d", ErrUnsupportedConfiguration, t)
		}
		cfg.CalculationType = t
		return nil
	}
}

// WithFloatingPoint selects the weight storage precision.
func WithFloatingPoint(p FloatingPointType) Option {
	return func(cfg *builderConfig) error {
		if p > Float16 {
			return fmt.Errorf("%w: floating point type %d", ErrUnsupportedConfiguration, p)
		}
		cfg.FloatingPoint = p
		return nil
	}
}

// WithRotationType selects the output rotation representation.
func WithRotationType(r rotation.Representation) Option {
	return func(cfg *builderConfig) error {
		if r > rotation.Quaternion {
			return fmt.Errorf("%w: rotation type %d", ErrUnsupportedConfiguration, r)
		}
		cfg.RotationType = r
		return nil
	}
}

// WithRotationUnit sets the unit Euler angles are read and written in.
func WithRotationUnit(u rotation.AngleUnit) Option {
	return func(cfg *builderConfig) error {
		if u > rotation.Radians {
			return fmt.Errorf("%w: rotation unit %d", ErrUnsupportedConfiguration, u)
		}
		cfg.RotationUnit = u
		return nil
	}
}

// WithRotationOrder sets the Euler axis order used by rotation conversion.
func WithRotationOrder(o rotation.Order) Option {
	return func(cfg *builderConfig) error {
		if !o.Valid() {
			return fmt.Errorf("%w: rotation order %d", ErrUnsupportedConfiguration, o)
		}
		cfg.RotationOrder = o
		return nil
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(cfg *builderConfig) error {
		if l == nil {
			return errors.New("joints: logger must not be nil")
		}
		cfg.log = l
		return nil
	}
}

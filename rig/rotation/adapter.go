package rotation

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedConversion is returned by Select for unknown representation,
// unit or order values.
var ErrUnsupportedConversion = errors.New("rotation: unsupported conversion")

// Adapter converts one rotation from its source to its target representation.
//
// Apply reads SourceComponents() values from src and writes
// TargetComponents() values to dst. src and dst must not overlap.
type Adapter interface {
	Apply(dst, src []float32)
	SourceComponents() int
	TargetComponents() int
}

// Passthrough copies rotation components unchanged.
type Passthrough struct {
	Components int
}

// Apply copies Components values from src to dst.
func (p Passthrough) Apply(dst, src []float32) {
	copy(dst[:p.Components], src[:p.Components])
}

func (p Passthrough) SourceComponents() int { return p.Components }
func (p Passthrough) TargetComponents() int { return p.Components }

// EulerToQuaternion converts per-axis Euler angles into a unit quaternion.
type EulerToQuaternion struct {
	Unit  AngleUnit
	Order Order
}

// Apply reads (rx, ry, rz) from src and writes (x, y, z, w) to dst.
func (a EulerToQuaternion) Apply(dst, src []float32) {
	angles := [3]float64{float64(src[0]), float64(src[1]), float64(src[2])}
	q := EulerToQuat(angles, a.Unit, a.Order)
	dst[0] = float32(q[0])
	dst[1] = float32(q[1])
	dst[2] = float32(q[2])
	dst[3] = float32(q[3])
}

func (EulerToQuaternion) SourceComponents() int { return 3 }
func (EulerToQuaternion) TargetComponents() int { return 4 }

// QuaternionToEuler converts a quaternion into per-axis Euler angles.
type QuaternionToEuler struct {
	Unit  AngleUnit
	Order Order
}

// Apply reads (x, y, z, w) from src and writes (rx, ry, rz) to dst.
func (a QuaternionToEuler) Apply(dst, src []float32) {
	q := [4]float64{float64(src[0]), float64(src[1]), float64(src[2]), float64(src[3])}
	angles := QuatToEuler(q, a.Unit, a.Order)
	dst[0] = float32(angles[0])
	dst[1] = float32(angles[1])
	dst[2] = float32(angles[2])
}

func (QuaternionToEuler) SourceComponents() int { return 4 }
func (QuaternionToEuler) TargetComponents() int { return 3 }

// Select returns the adapter converting from one representation to another.
func Select(from, to Representation, unit AngleUnit, order Order) (Adapter, error) {
	if from > Quaternion || to > Quaternion {
		return nil, fmt.Errorf("%w: representation %d -> %d", ErrUnsupportedConversion, from, to)
	}
	if unit > Radians {
		return nil, fmt.Errorf("%w: angle unit %d", ErrUnsupportedConversion, unit)
	}
	if !order.Valid() {
		return nil, fmt.Errorf("%w: rotation order %d", ErrUnsupportedConversion, order)
	}

	switch {
	case from == to:
		return Passthrough{Components: from.Components()}, nil
	case from == EulerAngles:
		return EulerToQuaternion{Unit: unit, Order: order}, nil
	default:
		return QuaternionToEuler{Unit: unit, Order: order}, nil
	}
}

// EulerToQuat composes per-axis angles into a unit quaternion (x, y, z, w).
func EulerToQuat(angles [3]float64, unit AngleUnit, order Order) [4]float64 {
	if unit == Degrees {
		for i := range angles {
			angles[i] *= math.Pi / 180
		}
	}

	first, second, third := order.Axes()
	q := axisQuat(first, angles[first])
	q = quatMul(axisQuat(second, angles[second]), q)
	return quatMul(axisQuat(third, angles[third]), q)
}

// QuatToEuler decomposes q into per-axis angles for the given order.
// q does not need to be normalized; a zero quaternion yields zero angles.
func QuatToEuler(q [4]float64, unit AngleUnit, order Order) [3]float64 {
	var angles [3]float64

	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		return angles
	}
	x, y, z, w := q[0]/n, q[1]/n, q[2]/n, q[3]/n

	m := [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}

	i, j, k := order.Axes()
	if order.evenParity() {
		angles[j] = math.Asin(clampUnit(-m[k][i]))
		angles[i] = math.Atan2(m[k][j], m[k][k])
		angles[k] = math.Atan2(m[j][i], m[i][i])
	} else {
		angles[j] = math.Asin(clampUnit(m[k][i]))
		angles[i] = math.Atan2(-m[k][j], m[k][k])
		angles[k] = math.Atan2(-m[j][i], m[i][i])
	}

	if unit == Degrees {
		for a := range angles {
			angles[a] *= 180 / math.Pi
		}
	}
	return angles
}

func axisQuat(axis int, theta float64) [4]float64 {
	var q [4]float64
	s, c := math.Sincos(theta / 2)
	q[axis] = s
	q[3] = c
	return q
}

// quatMul returns the Hamilton product a*b for (x, y, z, w) quaternions.
func quatMul(a, b [4]float64) [4]float64 {
	return [4]float64{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

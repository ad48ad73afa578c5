package rotation

import (
	"fmt"
	"strings"
)

// Representation identifies how a rotation delta is encoded.
type Representation uint8

const (
	// EulerAngles encodes a rotation as three angles about X, Y and Z.
	EulerAngles Representation = iota
	// Quaternion encodes a rotation as (x, y, z, w).
	Quaternion
)

// Components returns the number of float values one rotation occupies.
func (r Representation) Components() int {
	if r == Quaternion {
		return 4
	}
	return 3
}

// String returns a human-readable name for the representation.
func (r Representation) String() string {
	switch r {
	case EulerAngles:
		return "euler"
	case Quaternion:
		return "quaternion"
	default:
		return "unknown"
	}
}

// ParseRepresentation parses "euler" or "quaternion" (case-insensitive).
func ParseRepresentation(s string) (Representation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euler", "eulerangles", "euler-angles":
		return EulerAngles, nil
	case "quaternion", "quat":
		return Quaternion, nil
	default:
		return 0, fmt.Errorf("rotation: unknown representation %q", s)
	}
}

// AngleUnit is the unit Euler angles are expressed in.
type AngleUnit uint8

const (
	Degrees AngleUnit = iota
	Radians
)

// String returns a human-readable name for the unit.
func (u AngleUnit) String() string {
	switch u {
	case Degrees:
		return "degrees"
	case Radians:
		return "radians"
	default:
		return "unknown"
	}
}

// ParseAngleUnit parses "degrees" or "radians" (case-insensitive).
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	default:
		return 0, fmt.Errorf("rotation: unknown angle unit %q", s)
	}
}

// Order is the sequence in which the per-axis Euler rotations are applied.
type Order uint8

const (
	XYZ Order = iota
	XZY
	YXZ
	YZX
	ZXY
	ZYX
)

var orderAxes = [...][3]int{
	XYZ: {0, 1, 2},
	XZY: {0, 2, 1},
	YXZ: {1, 0, 2},
	YZX: {1, 2, 0},
	ZXY: {2, 0, 1},
	ZYX: {2, 1, 0},
}

var orderNames = [...]string{
	XYZ: "xyz",
	XZY: "xzy",
	YXZ: "yxz",
	YZX: "yzx",
	ZXY: "zxy",
	ZYX: "zyx",
}

// Valid reports whether o is one of the six Tait-Bryan orders.
func (o Order) Valid() bool {
	return int(o) < len(orderAxes)
}

// Axes returns the axis indices (0=X, 1=Y, 2=Z) in application order.
func (o Order) Axes() (first, second, third int) {
	a := orderAxes[o]
	return a[0], a[1], a[2]
}

// String returns the lowercase axis sequence, e.g. "xyz".
func (o Order) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return orderNames[o]
}

// ParseOrder parses an axis sequence such as "xyz" or "ZYX".
func ParseOrder(s string) (Order, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range orderNames {
		if name == key {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("rotation: unknown rotation order %q", s)
}

// evenParity reports whether the axis sequence is a cyclic permutation of XYZ.
func (o Order) evenParity() bool {
	return o == XYZ || o == YZX || o == ZXY
}

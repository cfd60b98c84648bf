package mathutil

import (
	"fmt"
	"math"
	"strings"
)

// Axis names a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// RotationMatrix returns the right-handed 3×3 rotation by angle radians
// about axis.
func RotationMatrix(angle float64, axis Axis) (Matrix, error) {
	c, s := math.Cos(angle), math.Sin(angle)
	switch axis {
	case AxisX:
		return Matrix{rows: [][]float64{
			{1, 0, 0},
			{0, c, -s},
			{0, s, c},
		}}, nil
	case AxisY:
		return Matrix{rows: [][]float64{
			{c, 0, s},
			{0, 1, 0},
			{-s, 0, c},
		}}, nil
	case AxisZ:
		return Matrix{rows: [][]float64{
			{c, -s, 0},
			{s, c, 0},
			{0, 0, 1},
		}}, nil
	}
	return Matrix{}, fmt.Errorf("%w: %v", ErrInvalidAxis, axis)
}

// Order is the sequence in which the per-axis matrices are multiplied to
// form a Rotation's forward matrix.
type Order [3]Axis

// DefaultOrder applies Y, then X, then Z.
var DefaultOrder = Order{AxisY, AxisX, AxisZ}

// Valid reports whether o is a permutation of the three axes.
func (o Order) Valid() bool {
	var seen [3]bool
	for _, a := range o {
		if a < AxisX || a > AxisZ || seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

// Rotation holds per-axis angles in radians and a fixed Order, together with
// the forward matrix and its inverse. Both matrices are recomputed whenever
// an angle changes, so they are never stale.
//
// Rotations are combined with Add, which sums angles axis by axis. That is
// not composition of rotations: it is neither associative nor commutative
// in the geometric sense, but it is what incremental per-frame controls
// rely on.
type Rotation struct {
	angles  [3]float64
	order   Order
	forward Matrix
	inverse Matrix
}

// NewRotation returns the rotation by x, y and z radians in DefaultOrder.
func NewRotation(x, y, z float64) Rotation {
	r, _ := NewRotationOrder(x, y, z, DefaultOrder)
	return r
}

// NewRotationOrder returns the rotation by x, y and z radians applied in order.
func NewRotationOrder(x, y, z float64, order Order) (Rotation, error) {
	if !order.Valid() {
		return Rotation{}, fmt.Errorf("%w: %v", ErrInvalidOrder, order)
	}
	r := Rotation{angles: [3]float64{x, y, z}, order: order}
	r.compute()
	return r, nil
}

func (r *Rotation) compute() {
	if !r.order.Valid() {
		r.order = DefaultOrder
	}
	fwd := Identity(3)
	for _, axis := range r.order {
		m, _ := RotationMatrix(r.angles[axis], axis)
		fwd, _ = fwd.Mul(m)
	}
	inv, err := fwd.Inverse()
	if err != nil {
		// A product of axis rotations has determinant 1.
		panic(fmt.Sprintf("mathutil: rotation matrix not invertible: %v", err))
	}
	r.forward, r.inverse = fwd, inv
}

// Angle returns the angle about axis.
func (r Rotation) Angle(axis Axis) float64 { return r.angles[axis] }

// Angles returns the x, y and z angles.
func (r Rotation) Angles() (x, y, z float64) {
	return r.angles[0], r.angles[1], r.angles[2]
}

// Order returns the axis application order.
func (r Rotation) Order() Order { return r.order }

// Matrix returns the forward rotation matrix.
func (r Rotation) Matrix() Matrix { return r.forward }

// InverseMatrix returns the inverse of the forward matrix.
func (r Rotation) InverseMatrix() Matrix { return r.inverse }

// IsZero reports whether r is the uninitialized zero value.
func (r Rotation) IsZero() bool { return r.forward.Rows() == 0 }

// SetAngle sets the angle about axis and recomputes both matrices.
func (r *Rotation) SetAngle(axis Axis, angle float64) error {
	if axis < AxisX || axis > AxisZ {
		return fmt.Errorf("%w: %v", ErrInvalidAxis, axis)
	}
	r.angles[axis] = angle
	r.compute()
	return nil
}

// SetAngles replaces all three angles and recomputes both matrices.
func (r *Rotation) SetAngles(x, y, z float64) {
	r.angles = [3]float64{x, y, z}
	r.compute()
}

// Rotate applies the forward rotation to v, treated as a row vector.
func (r Rotation) Rotate(v Vector) (Vector, error) {
	return r.forward.MulRow(v)
}

// Unrotate applies the inverse rotation to v.
func (r Rotation) Unrotate(v Vector) (Vector, error) {
	return r.inverse.MulRow(v)
}

// Add returns a rotation whose angles are the per-axis sums of r and o,
// keeping r's order.
func (r Rotation) Add(o Rotation) Rotation {
	sum := Rotation{order: r.order}
	for i := range sum.angles {
		sum.angles[i] = r.angles[i] + o.angles[i]
	}
	sum.compute()
	return sum
}

func (r Rotation) String() string {
	return fmt.Sprintf("Rotation(%g, %g, %g; %v %v %v)", r.angles[0], r.angles[1], r.angles[2], r.order[0], r.order[1], r.order[2])
}

func (o Order) String() string {
	return o[0].String() + o[1].String() + o[2].String()
}

// ParseOrder reads an order written as three axis letters, such as "yxz".
func ParseOrder(s string) (Order, error) {
	if len(s) != 3 {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
	var o Order
	for i, r := range strings.ToLower(s) {
		switch r {
		case 'x':
			o[i] = AxisX
		case 'y':
			o[i] = AxisY
		case 'z':
			o[i] = AxisZ
		default:
			return Order{}, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
		}
	}
	if !o.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
	return o, nil
}

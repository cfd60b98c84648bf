package mathutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is a real vector whose dimension is its length.
// Operations never modify their operands; each result is a new slice.
type Vector []float64

// NewVector returns a vector holding a copy of values.
func NewVector(values ...float64) Vector {
	v := make(Vector, len(values))
	copy(v, values)
	return v
}

// Zero returns the zero vector of dimension n.
func Zero(n int) Vector {
	return make(Vector, n)
}

// Dim returns the number of components of v.
func (v Vector) Dim() int { return len(v) }

// Clone returns a copy of v.
func (v Vector) Clone() Vector { return NewVector(v...) }

func (v Vector) check(w Vector) error {
	if len(v) != len(w) {
		return fmt.Errorf("%w: %d and %d", ErrDimensionMismatch, len(v), len(w))
	}
	return nil
}

// Add returns v + w.
func (v Vector) Add(w Vector) (Vector, error) {
	if err := v.check(w); err != nil {
		return nil, err
	}
	u := make(Vector, len(v))
	for i := range u {
		u[i] = v[i] + w[i]
	}
	return u, nil
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) (Vector, error) {
	if err := v.check(w); err != nil {
		return nil, err
	}
	u := make(Vector, len(v))
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return u, nil
}

// AddScalar adds s to every component.
func (v Vector) AddScalar(s float64) Vector {
	u := make(Vector, len(v))
	for i := range u {
		u[i] = v[i] + s
	}
	return u
}

// SubScalar subtracts s from every component.
func (v Vector) SubScalar(s float64) Vector {
	return v.AddScalar(-s)
}

// Scale returns s ⋅ v.
func (v Vector) Scale(s float64) Vector {
	u := make(Vector, len(v))
	for i := range u {
		u[i] = v[i] * s
	}
	return u
}

// Div returns v / s. Division by zero follows IEEE rules.
func (v Vector) Div(s float64) Vector {
	u := make(Vector, len(v))
	for i := range u {
		u[i] = v[i] / s
	}
	return u
}

// Dot returns v ⋅ w.
func (v Vector) Dot(w Vector) (float64, error) {
	if err := v.check(w); err != nil {
		return 0, err
	}
	var d float64
	for i := range v {
		d += v[i] * w[i]
	}
	return d, nil
}

// Mag returns the Euclidean length of v.
func (v Vector) Mag() float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// Onto returns the projection of v onto w: (v⋅w / w⋅w) w.
func (v Vector) Onto(w Vector) (Vector, error) {
	vw, err := v.Dot(w)
	if err != nil {
		return nil, err
	}
	ww, _ := w.Dot(w)
	if ww == 0 {
		return nil, fmt.Errorf("onto: %w", ErrZeroVector)
	}
	return w.Scale(vw / ww), nil
}

// Project returns the projection of v onto the span of vs, the sum of v's
// projections onto the orthogonalized basis of vs.
func (v Vector) Project(vs ...Vector) (Vector, error) {
	basis, err := Basis(vs...)
	if err != nil {
		return nil, err
	}
	sum := Zero(len(v))
	for _, b := range basis {
		p, err := v.Onto(b)
		if err != nil {
			return nil, err
		}
		if sum, err = sum.Add(p); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// AngleDiff returns the angle in radians between v and w.
func (v Vector) AngleDiff(w Vector) (float64, error) {
	d, err := v.Dot(w)
	if err != nil {
		return 0, err
	}
	m := v.Mag() * w.Mag()
	if m == 0 {
		return 0, fmt.Errorf("angle: %w", ErrZeroVector)
	}
	// Rounding can push the cosine just outside [-1, 1].
	c := math.Max(-1, math.Min(1, d/m))
	return math.Acos(c), nil
}

// Sanitize returns v with every component smaller in magnitude than
// SanitizeLimit replaced by zero.
func (v Vector) Sanitize() Vector {
	u := v.Clone()
	for i, x := range u {
		if math.Abs(x) < SanitizeLimit {
			u[i] = 0
		}
	}
	return u
}

// ApproxEqual reports whether v and w have the same dimension and every
// component differs by at most eps.
func (v Vector) ApproxEqual(w Vector, eps float64) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-w[i]) > eps {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Sum returns the componentwise sum of vs, which must share one dimension.
func Sum(vs ...Vector) (Vector, error) {
	if len(vs) == 0 {
		return Vector{}, nil
	}
	sum := vs[0].Clone()
	for _, w := range vs[1:] {
		var err error
		if sum, err = sum.Add(w); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// Basis orthogonalizes vs with Gram-Schmidt: each vector has its projections
// onto the previously produced outputs removed. Linearly dependent input
// yields a zero output, which fails the next projection with ErrZeroVector.
func Basis(vs ...Vector) ([]Vector, error) {
	basis := make([]Vector, 0, len(vs))
	for _, v := range vs {
		out := v.Clone()
		for _, b := range basis {
			p, err := v.Onto(b)
			if err != nil {
				return nil, fmt.Errorf("basis: %w", err)
			}
			if out, err = out.Sub(p); err != nil {
				return nil, err
			}
		}
		basis = append(basis, out)
	}
	return basis, nil
}

// Cross returns the generalized cross product of n-1 vectors of dimension n,
// a vector orthogonal to all of them. Component i is (-1)^i times the
// determinant of the inputs with column i removed, which for n = 3 is the
// usual a × b.
func Cross(vs ...Vector) (Vector, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("cross: no vectors: %w", ErrDimensionMismatch)
	}
	n := len(vs[0])
	if n < 2 || len(vs) != n-1 {
		return nil, fmt.Errorf("cross: %d vectors in dimension %d: %w", len(vs), n, ErrDimensionMismatch)
	}
	rows := make([][]float64, len(vs))
	for i, v := range vs {
		if err := vs[0].check(v); err != nil {
			return nil, fmt.Errorf("cross: %w", err)
		}
		rows[i] = v
	}
	m := Matrix{rows: rows}
	out := make(Vector, n)
	for i := range out {
		d, err := m.dropColumn(i).Determinant()
		if err != nil {
			return nil, err
		}
		out[i] = sign(i) * d
	}
	return out, nil
}

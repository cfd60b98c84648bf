package mathutil

import "errors"

var (
	// ErrDimensionMismatch is returned when vector or matrix operands have
	// incompatible sizes.
	ErrDimensionMismatch = errors.New("mathutil: dimension mismatch")

	// ErrNotSquare is returned by Determinant, Cofactor and Inverse on a
	// non-square matrix.
	ErrNotSquare = errors.New("mathutil: matrix is not square")

	// ErrSingularMatrix is returned by Inverse when the determinant is zero.
	ErrSingularMatrix = errors.New("mathutil: matrix is singular")

	// ErrMalformedMatrix is returned by NewMatrix for ragged rows.
	ErrMalformedMatrix = errors.New("mathutil: rows differ in length")

	// ErrZeroVector is returned when an operation divides by the magnitude
	// of a zero vector.
	ErrZeroVector = errors.New("mathutil: zero vector")

	// ErrInvalidAxis is returned for an Axis other than AxisX, AxisY or AxisZ.
	ErrInvalidAxis = errors.New("mathutil: axis must be X, Y or Z")

	// ErrInvalidOrder is returned when an Order repeats or omits an axis.
	ErrInvalidOrder = errors.New("mathutil: rotation order must be a permutation of X, Y, Z")
)

package mathutil

import "math"

const (
	// SanitizeLimit is the magnitude below which Sanitize snaps a component to zero.
	SanitizeLimit = 1e-6

	// SingularLimit is the determinant magnitude treated as zero by Inverse.
	SingularLimit = 1e-12
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

func sign(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

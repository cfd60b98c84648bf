package scene

import (
	"fmt"
	"image/color"
	"math"

	"pinhole3d/internal/mathutil"
)

// NewCube returns a model of six filled quads forming a cube with the given
// edge length, centred on the model origin.
func NewCube(edge float64, fill color.Color, at Transform) (*Model, error) {
	if edge <= 0 {
		return nil, fmt.Errorf("scene: cube edge %v must be positive", edge)
	}
	h := edge / 2
	faces := []struct {
		offset mathutil.Vector
		rx, ry float64
	}{
		{mathutil.NewVector(0, 0, -h), 0, 0},
		{mathutil.NewVector(0, 0, h), 0, math.Pi},
		{mathutil.NewVector(h, 0, 0), 0, math.Pi / 2},
		{mathutil.NewVector(-h, 0, 0), 0, -math.Pi / 2},
		{mathutil.NewVector(0, h, 0), -math.Pi / 2, 0},
		{mathutil.NewVector(0, -h, 0), math.Pi / 2, 0},
	}

	cube, err := NewModel(at)
	if err != nil {
		return nil, err
	}
	for _, f := range faces {
		q, err := NewQuadrilateral(
			mathutil.NewVector(-h, -h, 0),
			mathutil.NewVector(h, -h, 0),
			mathutil.NewVector(h, h, 0),
			mathutil.NewVector(-h, h, 0),
			Style{Fill: fill},
			At(f.offset, mathutil.NewRotation(f.rx, f.ry, 0)),
		)
		if err != nil {
			return nil, err
		}
		if err := cube.AddChild(q); err != nil {
			return nil, err
		}
	}
	return cube, nil
}

// Package scene holds drawable primitives and the model hierarchy that
// places them in the world.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/mathutil"
)

var (
	ErrNoColor         = errors.New("scene: primitive needs a fill or an outline color")
	ErrVertexCount     = errors.New("scene: wrong number of vertices")
	ErrCycle           = errors.New("scene: model would contain itself")
	ErrAlreadyAttached = errors.New("scene: drawable already belongs to a model")
)

// DrawType selects how a command is painted.
type DrawType int

const (
	Fill DrawType = iota
	Outline
	FillOutline
	Image // reserved, never produced
)

func (t DrawType) String() string {
	switch t {
	case Fill:
		return "fill"
	case Outline:
		return "outline"
	case FillOutline:
		return "fill+outline"
	case Image:
		return "image"
	}
	return fmt.Sprintf("DrawType(%d)", int(t))
}

// DrawCommand is one primitive prepared for a single frame.
type DrawCommand struct {
	Depth   float64 // largest camera-local z of the vertices
	Class   camera.Class
	Type    DrawType
	Points  []mathutil.Vector // projected, 2D
	Color   color.NRGBA       // shaded fill
	Outline color.NRGBA
}

// Drawable is anything that flattens into draw commands. ancestors lists
// the enclosing frames from the root down to the direct parent.
type Drawable interface {
	Draw(cam *camera.Camera, ancestors []Transform) ([]DrawCommand, error)
}

// Transform is a location and rotation. Points are rotated first, then
// translated.
type Transform struct {
	Location mathutil.Vector
	Rotation mathutil.Rotation
}

// At returns a Transform with the given location and rotation.
func At(location mathutil.Vector, rotation mathutil.Rotation) Transform {
	return Transform{Location: location, Rotation: rotation}
}

// Origin returns the identity transform.
func Origin() Transform {
	return Transform{Location: mathutil.Zero(3), Rotation: mathutil.NewRotation(0, 0, 0)}
}

// Apply maps v from the transform's frame into its parent's frame.
func (t Transform) Apply(v mathutil.Vector) (mathutil.Vector, error) {
	r, err := t.Rotation.Rotate(v)
	if err != nil {
		return nil, err
	}
	return r.Add(t.Location)
}

func (t Transform) normalize() (Transform, error) {
	if t.Location == nil {
		t.Location = mathutil.Zero(3)
	}
	if t.Location.Dim() != 3 {
		return Transform{}, fmt.Errorf("scene: location %v: %w", t.Location, mathutil.ErrDimensionMismatch)
	}
	t.Location = t.Location.Clone()
	if t.Rotation.IsZero() {
		t.Rotation = mathutil.NewRotation(0, 0, 0)
	}
	return t, nil
}

// Package camera projects world-space points onto a 2D screen through a
// virtual pinhole.
//
// In camera-local coordinates the screen is the plane z = 0 and the focus
// (pinhole) sits behind it at negative z. A world point is moved into that
// frame by subtracting the camera location, undoing the camera rotation and
// adding the focus offset; it is then projected along the ray from the focus
// onto the screen plane.
package camera

import (
	"errors"
	"fmt"
	"math"

	"pinhole3d/internal/mathutil"
)

// ErrDegenerateProjection is returned when the focus lies on the screen
// plane, which leaves the projection undefined.
var ErrDegenerateProjection = errors.New("camera: focus lies on the screen plane")

// ErrInvalidScreen is returned for a non-positive screen size or field of view.
var ErrInvalidScreen = errors.New("camera: invalid screen")

// Class locates a point relative to the screen plane and the focus.
// Classes are ordered from least to most restrictive.
type Class int

const (
	InFront Class = iota // beyond the screen plane
	Between              // between the focus and the screen plane
	Behind               // at or behind the focus
)

func (c Class) String() string {
	switch c {
	case InFront:
		return "in-front"
	case Between:
		return "between"
	case Behind:
		return "behind"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// DefaultLocation returns the conventional starting camera location.
func DefaultLocation() mathutil.Vector { return mathutil.NewVector(0, 0, -10) }

// DefaultFocus returns the conventional focus offset, 100 units behind the
// screen plane.
func DefaultFocus() mathutil.Vector { return mathutil.NewVector(0, 0, -100) }

// Screen maps raw screen-plane coordinates to pixels.
type Screen struct {
	Width, Height float64
	FOV           float64 // degrees
}

func (s Screen) validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.FOV <= 0 {
		return fmt.Errorf("%w: %gx%g fov %g", ErrInvalidScreen, s.Width, s.Height, s.FOV)
	}
	return nil
}

// Projection is the result of projecting one point.
type Projection struct {
	Point mathutil.Vector // 2D
	Class Class
	Depth float64 // camera-local z used for classification
}

// Camera holds a location, a focus offset, a rotation and an optional
// screen mapping. It is not safe for concurrent use.
type Camera struct {
	location mathutil.Vector
	focus    mathutil.Vector
	rotation mathutil.Rotation
	screen   *Screen
}

// New returns a camera at location looking through focus with the given
// rotation. Both vectors must be 3-dimensional and focus must not lie on the
// screen plane.
func New(location, focus mathutil.Vector, rotation mathutil.Rotation) (*Camera, error) {
	if location.Dim() != 3 || focus.Dim() != 3 {
		return nil, fmt.Errorf("camera: location and focus must be 3D: %w", mathutil.ErrDimensionMismatch)
	}
	if focus[2] == 0 {
		return nil, ErrDegenerateProjection
	}
	if rotation.IsZero() {
		rotation = mathutil.NewRotation(0, 0, 0)
	}
	return &Camera{
		location: location.Clone(),
		focus:    focus.Clone(),
		rotation: rotation,
	}, nil
}

// NewDefault returns a camera at DefaultLocation with DefaultFocus and no rotation.
func NewDefault() *Camera {
	c, _ := New(DefaultLocation(), DefaultFocus(), mathutil.NewRotation(0, 0, 0))
	return c
}

// Location returns a copy of the camera location.
func (c *Camera) Location() mathutil.Vector { return c.location.Clone() }

// Focus returns a copy of the focus offset.
func (c *Camera) Focus() mathutil.Vector { return c.focus.Clone() }

// Rotation returns the camera rotation.
func (c *Camera) Rotation() mathutil.Rotation { return c.rotation }

// Screen returns the screen mapping and whether one is configured.
func (c *Camera) Screen() (Screen, bool) {
	if c.screen == nil {
		return Screen{}, false
	}
	return *c.screen, true
}

// SetScreen configures the pixel mapping used by later projections.
func (c *Camera) SetScreen(s Screen) error {
	if err := s.validate(); err != nil {
		return err
	}
	c.screen = &s
	return nil
}

// Resize changes the screen resolution, keeping the field of view.
// The camera must already have a screen.
func (c *Camera) Resize(width, height float64) error {
	if c.screen == nil {
		return fmt.Errorf("%w: resize without a screen", ErrInvalidScreen)
	}
	return c.SetScreen(Screen{Width: width, Height: height, FOV: c.screen.FOV})
}

// ClearScreen removes the pixel mapping; projections return raw
// screen-plane coordinates again.
func (c *Camera) ClearScreen() { c.screen = nil }

// Project maps a world point to the screen.
//
// Points at or behind the focus project to the origin with class Behind.
// Otherwise the point is the intersection of the focus→point ray with the
// screen plane, mapped to pixels with a top-left origin when a screen is set.
func (c *Camera) Project(p mathutil.Vector) (Projection, error) {
	local, err := p.Sub(c.location)
	if err != nil {
		return Projection{}, fmt.Errorf("camera: project: %w", err)
	}
	if local, err = c.rotation.Unrotate(local); err != nil {
		return Projection{}, fmt.Errorf("camera: project: %w", err)
	}
	local, _ = local.Add(c.focus)

	z := local[2]
	if z <= c.focus[2] {
		return Projection{Point: mathutil.Zero(2), Class: Behind, Depth: z}, nil
	}

	ray, _ := local.Sub(c.focus)
	fraction := -c.focus[2] / ray[2]
	x, y := fraction*ray[0], fraction*ray[1]

	if s := c.screen; s != nil {
		mult := math.Min(s.Width, s.Height) / s.FOV
		x = x*mult + s.Width/2
		y = s.Height/2 - y*mult
	}

	class := InFront
	if z <= 0 {
		class = Between
	}
	return Projection{Point: mathutil.NewVector(x, y), Class: class, Depth: z}, nil
}

// Move translates the camera by v interpreted relative to its current facing.
func (c *Camera) Move(v mathutil.Vector) error {
	d, err := c.rotation.Rotate(v)
	if err != nil {
		return fmt.Errorf("camera: move: %w", err)
	}
	c.location, _ = c.location.Add(d)
	return nil
}

// Rotate adds r to the camera rotation angle by angle.
func (c *Camera) Rotate(r mathutil.Rotation) {
	c.rotation = c.rotation.Add(r)
}

// MoveFocus offsets the focus directly. It distorts the projection and is
// meant for experiments.
func (c *Camera) MoveFocus(v mathutil.Vector) error {
	f, err := c.focus.Add(v)
	if err != nil {
		return fmt.Errorf("camera: move focus: %w", err)
	}
	if f[2] == 0 {
		return ErrDegenerateProjection
	}
	c.focus = f
	return nil
}

// FocusTo returns the vector from the camera location to the world point v.
func (c *Camera) FocusTo(v mathutil.Vector) (mathutil.Vector, error) {
	d, err := v.Sub(c.location)
	if err != nil {
		return nil, fmt.Errorf("camera: focus to: %w", err)
	}
	return d, nil
}

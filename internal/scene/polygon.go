package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/raster"
)

// Style picks the colors of a primitive. Either may be nil but not both.
type Style struct {
	Fill    color.Color
	Outline color.Color
}

func (s Style) drawType() (DrawType, error) {
	switch {
	case s.Fill != nil && s.Outline != nil:
		return FillOutline, nil
	case s.Fill != nil:
		return Fill, nil
	case s.Outline != nil:
		return Outline, nil
	}
	return 0, ErrNoColor
}

var opaqueBlack = color.NRGBA{A: 0xff}

type polygon struct {
	Object
	vertices []mathutil.Vector
	kind     DrawType
	fill     color.NRGBA
	outline  color.NRGBA
}

func newPolygon(vertices []mathutil.Vector, style Style, at Transform) (polygon, error) {
	kind, err := style.drawType()
	if err != nil {
		return polygon{}, err
	}
	obj, err := newObject(at)
	if err != nil {
		return polygon{}, err
	}
	p := polygon{Object: obj, kind: kind, fill: opaqueBlack}
	for i, v := range vertices {
		if v.Dim() != 3 {
			return polygon{}, fmt.Errorf("scene: vertex %d %v: %w", i, v, mathutil.ErrDimensionMismatch)
		}
		p.vertices = append(p.vertices, v.Clone())
	}
	if style.Fill != nil {
		p.fill = color.NRGBAModel.Convert(style.Fill).(color.NRGBA)
	}
	if style.Outline != nil {
		p.outline = color.NRGBAModel.Convert(style.Outline).(color.NRGBA)
	}
	return p, nil
}

// Vertices returns copies of the local vertices.
func (p *polygon) Vertices() []mathutil.Vector {
	out := make([]mathutil.Vector, len(p.vertices))
	for i, v := range p.vertices {
		out[i] = v.Clone()
	}
	return out
}

// Draw transforms the vertices into the world, shades the face by the angle
// between its normal and the view direction, and projects each vertex.
func (p *polygon) Draw(cam *camera.Camera, ancestors []Transform) ([]DrawCommand, error) {
	world := make([]mathutil.Vector, len(p.vertices))
	for i, v := range p.vertices {
		w, err := p.worldPoint(v, ancestors)
		if err != nil {
			return nil, fmt.Errorf("scene: transform vertex %d: %w", i, err)
		}
		world[i] = w
	}

	angle, err := p.viewAngle(cam, world)
	if err != nil {
		return nil, err
	}

	cmd := DrawCommand{
		Type:    p.kind,
		Color:   opaqueBlack,
		Outline: p.outline,
		Points:  make([]mathutil.Vector, len(world)),
		Depth:   math.Inf(-1),
	}
	if p.kind != Outline {
		cmd.Color = raster.Shade(p.fill, angle)
	}
	for i, w := range world {
		proj, err := cam.Project(w)
		if err != nil {
			return nil, fmt.Errorf("scene: project vertex %d: %w", i, err)
		}
		cmd.Points[i] = proj.Point
		cmd.Depth = math.Max(cmd.Depth, proj.Depth)
		if proj.Class > cmd.Class {
			cmd.Class = proj.Class
		}
	}
	return []DrawCommand{cmd}, nil
}

// viewAngle is the angle between the face normal, taken from the winding of
// the first three vertices, and the vector from the camera to the centroid.
// A degenerate face or a centroid at the focus reads as edge-on.
func (p *polygon) viewAngle(cam *camera.Camera, world []mathutil.Vector) (float64, error) {
	e1, err := world[1].Sub(world[0])
	if err != nil {
		return 0, err
	}
	e2, err := world[2].Sub(world[1])
	if err != nil {
		return 0, err
	}
	normal, err := mathutil.Cross(e1, e2)
	if err != nil {
		return 0, err
	}
	centroid, err := mathutil.Sum(world...)
	if err != nil {
		return 0, err
	}
	view, err := cam.FocusTo(centroid.Div(float64(len(world))))
	if err != nil {
		return 0, err
	}
	angle, err := normal.AngleDiff(view)
	if errors.Is(err, mathutil.ErrZeroVector) {
		return math.Pi / 2, nil
	}
	return angle, err
}

// Triangle is a three-vertex primitive.
type Triangle struct {
	polygon
}

// NewTriangle builds a triangle from local vertices a, b, c.
func NewTriangle(a, b, c mathutil.Vector, style Style, at Transform) (*Triangle, error) {
	p, err := newPolygon([]mathutil.Vector{a, b, c}, style, at)
	if err != nil {
		return nil, fmt.Errorf("scene: triangle: %w", err)
	}
	return &Triangle{p}, nil
}

// Quadrilateral is a four-vertex primitive. Shading uses the first three
// vertices, so the corners should be coplanar.
type Quadrilateral struct {
	polygon
}

// NewQuadrilateral builds a quad from local vertices a, b, c, d in order.
func NewQuadrilateral(a, b, c, d mathutil.Vector, style Style, at Transform) (*Quadrilateral, error) {
	p, err := newPolygon([]mathutil.Vector{a, b, c, d}, style, at)
	if err != nil {
		return nil, fmt.Errorf("scene: quadrilateral: %w", err)
	}
	return &Quadrilateral{p}, nil
}

// NewPolygon builds a triangle or quadrilateral depending on len(vertices).
func NewPolygon(vertices []mathutil.Vector, style Style, at Transform) (Drawable, error) {
	switch len(vertices) {
	case 3:
		return NewTriangle(vertices[0], vertices[1], vertices[2], style, at)
	case 4:
		return NewQuadrilateral(vertices[0], vertices[1], vertices[2], vertices[3], style, at)
	}
	return nil, fmt.Errorf("scene: %d vertices: %w", len(vertices), ErrVertexCount)
}

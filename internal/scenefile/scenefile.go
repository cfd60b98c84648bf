// Package scenefile loads scene graphs from JSON. Rotations are written in
// degrees, colors as hex strings.
package scenefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/raster"
	"pinhole3d/internal/scene"
)

// Node kinds.
const (
	KindModel    = "model"
	KindTriangle = "triangle"
	KindQuad     = "quad"
	KindCube     = "cube"
)

// ErrUnusedField is returned for a field the node's kind cannot use.
var ErrUnusedField = errors.New("scenefile: field not used by this kind")

// File is the top level of a scene description.
type File struct {
	Name       string `json:"name,omitempty"`
	Background string `json:"background,omitempty"`
	Root       Node   `json:"root"`
}

// Node is one element of the tree. Which fields apply depends on Kind;
// an empty Kind means model.
type Node struct {
	Kind     string       `json:"kind,omitempty"`
	Name     string       `json:"name,omitempty"`
	Location [3]float64   `json:"location"`
	RotDeg   [3]float64   `json:"rotDeg"`
	Order    string       `json:"order,omitempty"` // e.g. "yxz"
	Vertices [][3]float64 `json:"vertices,omitempty"`
	Fill     string       `json:"fill,omitempty"`
	Outline  string       `json:"outline,omitempty"`
	Edge     float64      `json:"edge,omitempty"`
	Children []Node       `json:"children,omitempty"`
}

// Load reads and decodes a scene file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scene description.
func Parse(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("scenefile: parse: %w", err)
	}
	return f, nil
}

// DefaultBackground is used when a file names no background.
var DefaultBackground = color.NRGBA{R: 100, G: 100, B: 100, A: 255}

// BackgroundColor returns the background, or DefaultBackground when unset.
func (f File) BackgroundColor() (color.NRGBA, error) {
	if f.Background == "" {
		return DefaultBackground, nil
	}
	return raster.ParseHex(f.Background)
}

// Build turns the root node into a model.
func (f File) Build() (*scene.Model, error) {
	if k := f.Root.Kind; k != "" && k != KindModel && k != KindCube {
		return nil, fmt.Errorf("scenefile: root must be a model, have %q", k)
	}
	d, err := f.Root.Build()
	if err != nil {
		return nil, err
	}
	return d.(*scene.Model), nil
}

func (n Node) label() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Kind == "" {
		return KindModel
	}
	return n.Kind
}

func (n Node) transform() (scene.Transform, error) {
	order := mathutil.DefaultOrder
	if n.Order != "" {
		o, err := mathutil.ParseOrder(n.Order)
		if err != nil {
			return scene.Transform{}, err
		}
		order = o
	}
	rot, err := mathutil.NewRotationOrder(
		mathutil.Deg2Rad(n.RotDeg[0]),
		mathutil.Deg2Rad(n.RotDeg[1]),
		mathutil.Deg2Rad(n.RotDeg[2]),
		order,
	)
	if err != nil {
		return scene.Transform{}, err
	}
	return scene.At(mathutil.NewVector(n.Location[:]...), rot), nil
}

func (n Node) style() (scene.Style, error) {
	var s scene.Style
	if n.Fill != "" {
		c, err := raster.ParseHex(n.Fill)
		if err != nil {
			return s, err
		}
		s.Fill = c
	}
	if n.Outline != "" {
		c, err := raster.ParseHex(n.Outline)
		if err != nil {
			return s, err
		}
		s.Outline = c
	}
	return s, nil
}

// Build constructs the drawable for n and its descendants.
func (n Node) Build() (scene.Drawable, error) {
	d, err := n.build()
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", n.label(), err)
	}
	return d, nil
}

func (n Node) build() (scene.Drawable, error) {
	at, err := n.transform()
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "", KindModel:
		m, err := scene.NewModel(at)
		if err != nil {
			return nil, err
		}
		for _, c := range n.Children {
			d, err := c.Build()
			if err != nil {
				return nil, err
			}
			if err := m.AddChild(d); err != nil {
				return nil, err
			}
		}
		return m, nil

	case KindTriangle, KindQuad:
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%s nodes take no children: %w", n.Kind, ErrUnusedField)
		}
		want := 3
		if n.Kind == KindQuad {
			want = 4
		}
		if len(n.Vertices) != want {
			return nil, fmt.Errorf("%d vertices for %s: %w", len(n.Vertices), n.Kind, scene.ErrVertexCount)
		}
		style, err := n.style()
		if err != nil {
			return nil, err
		}
		vs := make([]mathutil.Vector, len(n.Vertices))
		for i, v := range n.Vertices {
			vs[i] = mathutil.NewVector(v[:]...)
		}
		return scene.NewPolygon(vs, style, at)

	case KindCube:
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%s nodes take no children: %w", n.Kind, ErrUnusedField)
		}
		if n.Outline != "" {
			return nil, fmt.Errorf("%s nodes take no outline: %w", n.Kind, ErrUnusedField)
		}
		style, err := n.style()
		if err != nil {
			return nil, err
		}
		if style.Fill == nil {
			return nil, scene.ErrNoColor
		}
		return scene.NewCube(n.Edge, style.Fill, at)
	}
	return nil, fmt.Errorf("unknown kind %q", n.Kind)
}

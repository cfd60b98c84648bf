package scene

import (
	"fmt"

	"pinhole3d/internal/camera"
)

// Model groups drawables under a shared transform. Moving or rotating a
// model carries every descendant with it.
type Model struct {
	Object
	children []Drawable
}

// NewModel returns a model placed at at holding children.
func NewModel(at Transform, children ...Drawable) (*Model, error) {
	obj, err := newObject(at)
	if err != nil {
		return nil, fmt.Errorf("scene: model: %w", err)
	}
	m := &Model{Object: obj}
	for _, c := range children {
		if err := m.AddChild(c); err != nil {
			m.release()
			return nil, err
		}
	}
	return m, nil
}

// release detaches every direct child so that it can join another model.
func (m *Model) release() {
	for _, c := range m.children {
		if p, ok := c.(placed); ok {
			p.object().owned = false
		}
	}
	m.children = nil
}

type placed interface {
	object() *Object
}

// AddChild appends d. A drawable can belong to only one model and a model
// cannot end up inside its own subtree.
func (m *Model) AddChild(d Drawable) error {
	if d == nil {
		return fmt.Errorf("scene: add child: nil drawable")
	}
	if sub, ok := d.(*Model); ok && (sub == m || sub.contains(m)) {
		return ErrCycle
	}
	if p, ok := d.(placed); ok {
		o := p.object()
		if o.owned {
			return ErrAlreadyAttached
		}
		o.owned = true
	}
	m.children = append(m.children, d)
	return nil
}

func (m *Model) contains(target *Model) bool {
	for _, c := range m.children {
		if sub, ok := c.(*Model); ok && (sub == target || sub.contains(target)) {
			return true
		}
	}
	return false
}

// Children returns the direct children in insertion order.
func (m *Model) Children() []Drawable {
	return append([]Drawable(nil), m.children...)
}

// Draw gathers the commands of every child with m's transform pushed onto
// the ancestor chain.
func (m *Model) Draw(cam *camera.Camera, ancestors []Transform) ([]DrawCommand, error) {
	chain := make([]Transform, len(ancestors), len(ancestors)+1)
	copy(chain, ancestors)
	chain = append(chain, m.at)

	var out []DrawCommand
	for i, c := range m.children {
		cmds, err := c.Draw(cam, chain)
		if err != nil {
			return nil, fmt.Errorf("scene: child %d: %w", i, err)
		}
		out = append(out, cmds...)
	}
	return out, nil
}

// Commands draws m as the root of a scene.
func (m *Model) Commands(cam *camera.Camera) ([]DrawCommand, error) {
	return m.Draw(cam, nil)
}

// Walk calls fn for m and every descendant, depth first.
func (m *Model) Walk(fn func(d Drawable, depth int)) {
	m.walk(fn, 0)
}

func (m *Model) walk(fn func(Drawable, int), depth int) {
	fn(m, depth)
	for _, c := range m.children {
		if sub, ok := c.(*Model); ok {
			sub.walk(fn, depth+1)
			continue
		}
		fn(c, depth+1)
	}
}

var _ Drawable = (*Model)(nil)
var _ Drawable = (*Triangle)(nil)
var _ Drawable = (*Quadrilateral)(nil)

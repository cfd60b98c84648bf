package scene

import (
	"fmt"

	"pinhole3d/internal/mathutil"
)

// Object is the placement shared by primitives and models.
type Object struct {
	at    Transform
	owned bool
}

func newObject(at Transform) (Object, error) {
	at, err := at.normalize()
	if err != nil {
		return Object{}, err
	}
	return Object{at: at}, nil
}

func (o *Object) object() *Object { return o }

// Location returns a copy of the object's location.
func (o *Object) Location() mathutil.Vector { return o.at.Location.Clone() }

// Rotation returns the object's rotation.
func (o *Object) Rotation() mathutil.Rotation { return o.at.Rotation }

// Transform returns the object's placement.
func (o *Object) Transform() Transform {
	return Transform{Location: o.Location(), Rotation: o.at.Rotation}
}

// Move translates the object by v in its parent's frame.
func (o *Object) Move(v mathutil.Vector) error {
	l, err := o.at.Location.Add(v)
	if err != nil {
		return fmt.Errorf("scene: move: %w", err)
	}
	o.at.Location = l
	return nil
}

// MoveRelative translates the object by v rotated through its own rotation,
// so that v is interpreted along the object's local axes.
func (o *Object) MoveRelative(v mathutil.Vector) error {
	d, err := o.at.Rotation.Rotate(v)
	if err != nil {
		return fmt.Errorf("scene: move: %w", err)
	}
	return o.Move(d)
}

// Rotate adds r to the object's rotation angle by angle.
func (o *Object) Rotate(r mathutil.Rotation) {
	o.at.Rotation = o.at.Rotation.Add(r)
}

// worldPoint applies the object's own transform and then every ancestor's,
// nearest first.
func (o *Object) worldPoint(v mathutil.Vector, ancestors []Transform) (mathutil.Vector, error) {
	p, err := o.at.Apply(v)
	if err != nil {
		return nil, err
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if p, err = ancestors[i].Apply(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

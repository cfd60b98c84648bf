package scene

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/mathutil"
)

const eps = 1e-9

var orange = color.NRGBA{R: 200, G: 100, B: 50, A: 255}

func vec(x, y, z float64) mathutil.Vector { return mathutil.NewVector(x, y, z) }

func at(x, y, z float64) Transform {
	return At(vec(x, y, z), mathutil.NewRotation(0, 0, 0))
}

// facingQuad lies in the plane z = 200 with a normal pointing away from
// the default camera.
func facingQuad(t *testing.T, style Style) *Quadrilateral {
	t.Helper()
	q, err := NewQuadrilateral(vec(-1, -1, 0), vec(1, -1, 0), vec(1, 1, 0), vec(-1, 1, 0), style, at(0, 0, 200))
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func drawOne(t *testing.T, d Drawable) DrawCommand {
	t.Helper()
	cmds, err := d.Draw(camera.NewDefault(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 {
		t.Fatalf("Draw: have %d commands, want 1", len(cmds))
	}
	return cmds[0]
}

func TestQuadFacingCamera(t *testing.T) {
	cmd := drawOne(t, facingQuad(t, Style{Fill: orange}))

	if cmd.Color != orange {
		t.Errorf("Color\nhave %v\nwant %v", cmd.Color, orange)
	}
	if cmd.Type != Fill || cmd.Class != camera.InFront {
		t.Errorf("have %v %v, want fill in-front", cmd.Type, cmd.Class)
	}
	if math.Abs(cmd.Depth-110) > eps {
		t.Errorf("Depth: have %v, want 110", cmd.Depth)
	}
	f := 100.0 / 210
	want := []mathutil.Vector{
		mathutil.NewVector(-f, -f),
		mathutil.NewVector(f, -f),
		mathutil.NewVector(f, f),
		mathutil.NewVector(-f, f),
	}
	for i := range want {
		if !cmd.Points[i].ApproxEqual(want[i], eps) {
			t.Errorf("Points[%d]\nhave %v\nwant %v", i, cmd.Points[i], want[i])
		}
	}
}

func TestQuadFacingAway(t *testing.T) {
	q, err := NewQuadrilateral(vec(-1, 1, 0), vec(1, 1, 0), vec(1, -1, 0), vec(-1, -1, 0), Style{Fill: orange}, at(0, 0, 200))
	if err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{A: 255}
	if cmd := drawOne(t, q); cmd.Color != want {
		t.Errorf("Color\nhave %v\nwant %v", cmd.Color, want)
	}

	// A half turn about y flips a facing quad around.
	f := facingQuad(t, Style{Fill: orange})
	f.Rotate(mathutil.NewRotation(0, math.Pi, 0))
	if cmd := drawOne(t, f); cmd.Color != want {
		t.Errorf("Color after half turn\nhave %v\nwant %v", cmd.Color, want)
	}
}

func TestShadingKeepsAlpha(t *testing.T) {
	fill := color.NRGBA{R: 200, G: 100, B: 50, A: 128}
	if cmd := drawOne(t, facingQuad(t, Style{Fill: fill})); cmd.Color != fill {
		t.Errorf("Color\nhave %v\nwant %v", cmd.Color, fill)
	}
}

func TestDegenerateTriangleIsEdgeOn(t *testing.T) {
	tri, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0), Style{Fill: orange}, at(0, 0, 200))
	if err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{R: 100, G: 50, B: 25, A: 255}
	if cmd := drawOne(t, tri); cmd.Color != want {
		t.Errorf("Color\nhave %v\nwant %v", cmd.Color, want)
	}
}

func TestStyles(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}

	cmd := drawOne(t, facingQuad(t, Style{Outline: red}))
	if cmd.Type != Outline || cmd.Color != (color.NRGBA{A: 255}) || cmd.Outline != red {
		t.Errorf("outline only: have %v %v %v", cmd.Type, cmd.Color, cmd.Outline)
	}

	cmd = drawOne(t, facingQuad(t, Style{Fill: orange, Outline: red}))
	if cmd.Type != FillOutline || cmd.Color != orange || cmd.Outline != red {
		t.Errorf("fill and outline: have %v %v %v", cmd.Type, cmd.Color, cmd.Outline)
	}

	if _, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), Style{}, Origin()); !errors.Is(err, ErrNoColor) {
		t.Errorf("no color: have %v", err)
	}
	if _, err := NewTriangle(vec(0, 0, 0), mathutil.NewVector(1, 0), vec(0, 1, 0), Style{Fill: orange}, Origin()); !errors.Is(err, mathutil.ErrDimensionMismatch) {
		t.Errorf("2D vertex: have %v", err)
	}
	if _, err := NewPolygon([]mathutil.Vector{vec(0, 0, 0), vec(1, 0, 0)}, Style{Fill: orange}, Origin()); !errors.Is(err, ErrVertexCount) {
		t.Errorf("two vertices: have %v", err)
	}
}

func TestDepthAndClassUseWorstVertex(t *testing.T) {
	tri, err := NewTriangle(vec(0, 0, 200), vec(1, 0, 200), vec(0, 1, 0), Style{Fill: orange}, Origin())
	if err != nil {
		t.Fatal(err)
	}
	cmd := drawOne(t, tri)
	if cmd.Class != camera.Between {
		t.Errorf("Class: have %v, want between", cmd.Class)
	}
	if math.Abs(cmd.Depth-110) > eps {
		t.Errorf("Depth: have %v, want 110", cmd.Depth)
	}

	tri, err = NewTriangle(vec(0, 0, 200), vec(1, 0, -500), vec(0, 1, 0), Style{Fill: orange}, Origin())
	if err != nil {
		t.Fatal(err)
	}
	if cmd := drawOne(t, tri); cmd.Class != camera.Behind {
		t.Errorf("Class: have %v, want behind", cmd.Class)
	}
}

func TestObjectMovement(t *testing.T) {
	tri, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), Style{Fill: orange}, Origin())
	if err != nil {
		t.Fatal(err)
	}
	if err := tri.Move(vec(1, 2, 3)); err != nil {
		t.Fatal(err)
	}
	if l := tri.Location(); !l.ApproxEqual(vec(1, 2, 3), eps) {
		t.Fatalf("Location after Move\nhave %v\nwant (1, 2, 3)", l)
	}

	tri.Rotate(mathutil.NewRotation(0, math.Pi/2, 0))
	if err := tri.MoveRelative(vec(0, 0, 1)); err != nil {
		t.Fatal(err)
	}
	if l := tri.Location(); !l.ApproxEqual(vec(0, 2, 3), eps) {
		t.Fatalf("Location after MoveRelative\nhave %v\nwant (0, 2, 3)", l)
	}
	if err := tri.Move(mathutil.NewVector(1, 1)); !errors.Is(err, mathutil.ErrDimensionMismatch) {
		t.Fatalf("2D move: have %v", err)
	}
}

func TestModelAppliesParentTransform(t *testing.T) {
	tri, err := NewTriangle(vec(0, 0, 0), vec(0, 1, 0), vec(-1, 0, 0), Style{Fill: orange}, at(1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(At(vec(0, 0, 200), mathutil.NewRotation(0, math.Pi/2, 0)), tri)
	if err != nil {
		t.Fatal(err)
	}
	cmds, err := m.Commands(camera.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 {
		t.Fatalf("have %d commands, want 1", len(cmds))
	}

	// Child placement first, then the parent's rotation, then its location:
	// the vertices land on (0,0,201), (0,1,201) and (0,0,200).
	cmd := cmds[0]
	if math.Abs(cmd.Depth-111) > eps {
		t.Errorf("Depth: have %v, want 111", cmd.Depth)
	}
	want := []mathutil.Vector{
		mathutil.NewVector(0, 0),
		mathutil.NewVector(0, 100.0/211),
		mathutil.NewVector(0, 0),
	}
	for i := range want {
		if !cmd.Points[i].ApproxEqual(want[i], eps) {
			t.Errorf("Points[%d]\nhave %v\nwant %v", i, cmd.Points[i], want[i])
		}
	}
}

func buildPair(t *testing.T, offset mathutil.Vector) (*Model, *Triangle, *Triangle) {
	t.Helper()
	place := func(x, y, z float64) Transform {
		l, err := vec(x, y, z).Add(offset)
		if err != nil {
			t.Fatal(err)
		}
		return At(l, mathutil.NewRotation(0, 0, 0))
	}
	a, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), Style{Fill: orange}, place(-2, 0, 200))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), Style{Fill: orange}, place(2, 0, 300))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(Origin(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	return m, a, b
}

func sameCommands(t *testing.T, have, want []DrawCommand) {
	t.Helper()
	if len(have) != len(want) {
		t.Fatalf("have %d commands, want %d", len(have), len(want))
	}
	for i := range want {
		h, w := have[i], want[i]
		if math.Abs(h.Depth-w.Depth) > eps || h.Class != w.Class || h.Color != w.Color {
			t.Errorf("command %d\nhave %v %v %v\nwant %v %v %v", i, h.Depth, h.Class, h.Color, w.Depth, w.Class, w.Color)
		}
		for j := range w.Points {
			if !h.Points[j].ApproxEqual(w.Points[j], eps) {
				t.Errorf("command %d point %d\nhave %v\nwant %v", i, j, h.Points[j], w.Points[j])
			}
		}
	}
}

func TestMovingModelMovesChildren(t *testing.T) {
	cam := camera.NewDefault()
	d := vec(1, 2, 3)

	moved, _, _ := buildPair(t, mathutil.Zero(3))
	if err := moved.Move(d); err != nil {
		t.Fatal(err)
	}
	have, err := moved.Commands(cam)
	if err != nil {
		t.Fatal(err)
	}
	shifted, _, _ := buildPair(t, d)
	want, err := shifted.Commands(cam)
	if err != nil {
		t.Fatal(err)
	}
	sameCommands(t, have, want)
}

func TestMovingChildLeavesSiblings(t *testing.T) {
	cam := camera.NewDefault()
	m, a, _ := buildPair(t, mathutil.Zero(3))
	before, err := m.Commands(cam)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Move(vec(0, 5, 0)); err != nil {
		t.Fatal(err)
	}
	after, err := m.Commands(cam)
	if err != nil {
		t.Fatal(err)
	}
	sameCommands(t, after[1:], before[1:])
	if after[0].Points[0].ApproxEqual(before[0].Points[0], eps) {
		t.Errorf("moved child still projects to %v", after[0].Points[0])
	}
}

func TestAddChild(t *testing.T) {
	a, err := NewModel(Origin())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewModel(Origin())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.AddChild(nil); err == nil {
		t.Error("AddChild(nil): have nil error")
	}
	if err := a.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("AddChild(self): have %v", err)
	}
	if err := a.AddChild(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("AddChild(ancestor): have %v", err)
	}

	tri, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), Style{Fill: orange}, Origin())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddChild(tri); err != nil {
		t.Fatal(err)
	}
	if err := a.AddChild(tri); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("AddChild(owned): have %v", err)
	}
	if n := len(a.Children()); n != 1 {
		t.Errorf("a.Children: have %d, want 1", n)
	}

	var seen []int
	a.Walk(func(_ Drawable, depth int) { seen = append(seen, depth) })
	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Errorf("Walk depths: have %v, want [0 1 2]", seen)
	}
}

func TestCube(t *testing.T) {
	cube, err := NewCube(2, orange, at(0, 0, 200))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(cube.Children()); n != 6 {
		t.Fatalf("Children: have %d, want 6", n)
	}
	cmds, err := cube.Commands(camera.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 6 {
		t.Fatalf("have %d commands, want 6", len(cmds))
	}
	for i, c := range cmds {
		if c.Class != camera.InFront || len(c.Points) != 4 {
			t.Errorf("face %d: have %v with %d points", i, c.Class, len(c.Points))
		}
	}
	// The near face sits at z = 199 and faces straight down the view axis.
	if cmds[0].Color != orange || math.Abs(cmds[0].Depth-109) > eps {
		t.Errorf("near face: have %v at depth %v", cmds[0].Color, cmds[0].Depth)
	}

	if _, err := NewCube(0, orange, Origin()); err == nil {
		t.Error("NewCube(0): have nil error")
	}
}

func TestFailedNewModelReleasesChildren(t *testing.T) {
	tri, err := NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), Style{Fill: orange}, Origin())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewModel(Origin(), tri, nil); err == nil {
		t.Fatal("NewModel with nil child: have nil error")
	}

	other, err := NewModel(Origin())
	if err != nil {
		t.Fatal(err)
	}
	if err := other.AddChild(tri); err != nil {
		t.Fatalf("AddChild after failed NewModel: have %v", err)
	}

	// Still exclusive once attached.
	if _, err := NewModel(Origin(), tri); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("NewModel with owned child: have %v", err)
	}
}

func TestVerticesAreCopies(t *testing.T) {
	q := facingQuad(t, Style{Fill: orange})
	vs := q.Vertices()
	want := []mathutil.Vector{vec(-1, -1, 0), vec(1, -1, 0), vec(1, 1, 0), vec(-1, 1, 0)}
	if len(vs) != len(want) {
		t.Fatalf("have %d vertices, want %d", len(vs), len(want))
	}
	for i := range want {
		if !vs[i].ApproxEqual(want[i], 0) {
			t.Errorf("vertex %d\nhave %v\nwant %v", i, vs[i], want[i])
		}
	}

	vs[0][0] = 99
	if v := q.Vertices()[0]; v[0] != -1 {
		t.Errorf("Vertices exposed internal state: have %v", v)
	}
}

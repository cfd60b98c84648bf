package scenefile

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/scene"
)

const sample = `{
  "background": "#102030",
  "root": {
    "location": [0, 0, 200],
    "children": [
      {"kind": "cube", "edge": 2, "fill": "#ff0000"},
      {"kind": "model", "rotDeg": [0, 90, 0], "order": "xyz", "children": [
        {"kind": "triangle", "vertices": [[0,0,0],[1,0,0],[0,1,0]], "outline": "#00ff00"}
      ]},
      {"kind": "quad", "vertices": [[-1,-1,0],[1,-1,0],[1,1,0],[-1,1,0]], "fill": "#0000ff80", "location": [0, 0, 50]}
    ]
  }
}`

func TestBuild(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	bg, err := f.BackgroundColor()
	if err != nil {
		t.Fatal(err)
	}
	if bg != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("background: have %v", bg)
	}

	root, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if l := root.Location(); !l.ApproxEqual(mathutil.NewVector(0, 0, 200), 1e-12) {
		t.Errorf("root location: have %v", l)
	}
	kids := root.Children()
	if len(kids) != 3 {
		t.Fatalf("root children: have %d, want 3", len(kids))
	}
	sub, ok := kids[1].(*scene.Model)
	if !ok {
		t.Fatalf("child 1: have %T, want *scene.Model", kids[1])
	}
	if y := sub.Rotation().Angle(mathutil.AxisY); math.Abs(y-math.Pi/2) > 1e-12 {
		t.Errorf("rotDeg not converted: have %v", y)
	}
	if o := sub.Rotation().Order(); o != (mathutil.Order{mathutil.AxisX, mathutil.AxisY, mathutil.AxisZ}) {
		t.Errorf("order: have %v", o)
	}

	cmds, err := root.Commands(camera.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 8 {
		t.Fatalf("commands: have %d, want 8", len(cmds))
	}
	if cmds[6].Type != scene.Outline {
		t.Errorf("triangle: have %v, want outline", cmds[6].Type)
	}
	if q := cmds[7]; q.Type != scene.Fill || q.Color != (color.NRGBA{B: 0xff, A: 0x80}) {
		t.Errorf("quad: have %v %v", q.Type, q.Color)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
		want error
	}{
		{"short triangle", `{"root":{"children":[{"kind":"triangle","vertices":[[0,0,0],[1,0,0]],"fill":"#fff"}]}}`, scene.ErrVertexCount},
		{"colorless quad", `{"root":{"children":[{"kind":"quad","vertices":[[0,0,0],[1,0,0],[1,1,0],[0,1,0]]}]}}`, scene.ErrNoColor},
		{"bad order", `{"root":{"order":"xxy"}}`, mathutil.ErrInvalidOrder},
		{"unfilled cube", `{"root":{"children":[{"kind":"cube","edge":1}]}}`, scene.ErrNoColor},
		{"outlined cube", `{"root":{"children":[{"kind":"cube","edge":1,"fill":"#fff","outline":"#000"}]}}`, ErrUnusedField},
		{"cube with children", `{"root":{"children":[{"kind":"cube","edge":1,"fill":"#fff","children":[{}]}]}}`, ErrUnusedField},
		{"triangle with children", `{"root":{"children":[{"kind":"triangle","vertices":[[0,0,0],[1,0,0],[0,1,0]],"fill":"#fff","children":[{}]}]}}`, ErrUnusedField},
		{"quad with children", `{"root":{"children":[{"kind":"quad","vertices":[[0,0,0],[1,0,0],[1,1,0],[0,1,0]],"fill":"#fff","children":[{}]}]}}`, ErrUnusedField},
	}
	for _, tc := range cases {
		f, err := Parse([]byte(tc.json))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if _, err := f.Build(); !errors.Is(err, tc.want) {
			t.Errorf("%s: have %v, want %v", tc.name, err, tc.want)
		}
	}

	for _, bad := range []string{
		`{"root":{"kind":"triangle"}}`,
		`{"root":{"children":[{"kind":"sphere"}]}}`,
		`{"root":{"children":[{"kind":"quad","vertices":[[0,0,0],[1,0,0],[1,1,0],[0,1,0]],"fill":"red"}]}}`,
	} {
		f, err := Parse([]byte(bad))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Build(); err == nil {
			t.Errorf("Build(%s): have nil error", bad)
		}
	}
}

func TestLoadDemoScene(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "scenes", "demo.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Build(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(broken): have nil error")
	}
}

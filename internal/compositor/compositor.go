// Package compositor paints draw commands back to front.
package compositor

import (
	"fmt"
	"image/color"
	"sort"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/scene"
)

// Surface receives finished 2D polygons. *raster.Canvas satisfies it.
type Surface interface {
	FillPolygon(points []mathutil.Vector, c color.Color)
	Polyline(points []mathutil.Vector, c color.Color, closed bool)
}

// Stats counts what happened to the commands of one frame.
type Stats struct {
	Gathered int
	Culled   int // not entirely in front of the screen plane
	Drawn    int
	Skipped  int // types the surface cannot paint
}

func (s Stats) String() string {
	return fmt.Sprintf("gathered=%d culled=%d drawn=%d skipped=%d", s.Gathered, s.Culled, s.Drawn, s.Skipped)
}

// Visible returns the commands whose class is InFront, ordered farthest
// first. Commands of equal depth keep their gathering order.
func Visible(cmds []scene.DrawCommand) []scene.DrawCommand {
	out := make([]scene.DrawCommand, 0, len(cmds))
	for _, c := range cmds {
		if c.Class == camera.InFront {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// Compose culls, sorts and dispatches cmds to s.
func Compose(cmds []scene.DrawCommand, s Surface) Stats {
	visible := Visible(cmds)
	st := Stats{Gathered: len(cmds), Culled: len(cmds) - len(visible)}
	for _, c := range visible {
		switch c.Type {
		case scene.Fill:
			s.FillPolygon(c.Points, c.Color)
		case scene.Outline:
			s.Polyline(c.Points, c.Outline, true)
		case scene.FillOutline:
			s.FillPolygon(c.Points, c.Color)
			s.Polyline(c.Points, c.Outline, true)
		default:
			st.Skipped++
			continue
		}
		st.Drawn++
	}
	return st
}

// Frame gathers the commands of root as seen by cam and composes them.
func Frame(root scene.Drawable, cam *camera.Camera, s Surface) (Stats, error) {
	cmds, err := root.Draw(cam, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("compositor: gather: %w", err)
	}
	return Compose(cmds, s), nil
}

package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"pinhole3d/internal/mathutil"
)

// Canvas is an in-memory drawing surface backed by an RGBA image.
// Polygons are scan-converted with golang.org/x/image/vector.
type Canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// NewCanvas allocates a transparent w×h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		ras: vector.NewRasterizer(w, h),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the backing image. It is overwritten by later drawing.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Resize reallocates the canvas if its size changed. The contents are lost.
func (c *Canvas) Resize(w, h int) {
	if w == c.Width() && h == c.Height() {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.ras.Reset(w, h)
}

// Clear fills the whole canvas with bg.
func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// FillPolygon fills the closed polygon through points with col.
func (c *Canvas) FillPolygon(points []mathutil.Vector, col color.Color) {
	if len(points) < 3 {
		return
	}
	c.ras.Reset(c.Width(), c.Height())
	c.ras.MoveTo(float32(points[0][0]), float32(points[0][1]))
	for _, p := range points[1:] {
		c.ras.LineTo(float32(p[0]), float32(p[1]))
	}
	c.ras.ClosePath()
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// Polyline strokes one-pixel segments through points with col, joining the
// last point back to the first when closed is set.
func (c *Canvas) Polyline(points []mathutil.Vector, col color.Color, closed bool) {
	n := len(points)
	if n < 2 {
		return
	}
	segs := n - 1
	if closed {
		segs = n
	}
	c.ras.Reset(c.Width(), c.Height())
	for i := 0; i < segs; i++ {
		a, b := points[i], points[(i+1)%n]
		c.segment(float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]))
	}
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// segment adds a one-pixel wide quad along a→b to the current path.
func (c *Canvas) segment(ax, ay, bx, by float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	// Half-pixel offset along the segment normal.
	nx, ny := -dy/l*0.5, dx/l*0.5
	c.ras.MoveTo(ax+nx, ay+ny)
	c.ras.LineTo(bx+nx, by+ny)
	c.ras.LineTo(bx-nx, by-ny)
	c.ras.LineTo(ax-nx, ay-ny)
	c.ras.ClosePath()
}

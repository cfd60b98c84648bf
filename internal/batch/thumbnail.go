package batch

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales img so that its longer side is at most maxSide, keeping
// the aspect ratio. Images that already fit are returned as is.
func Thumbnail(img *image.RGBA, maxSide int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}

	// RGBA is premultiplied, so filtering does not darken transparent edges
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ThumbName is the file name of the thumbnail of frame i.
func ThumbName(i int, format string) string {
	return FrameName(i, "thumb."+format)
}

// Package raster is a headless particles.Surface that draws into an
// in-memory RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/olivierh59500/particle-backdrop/internal/particles"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Canvas draws antialiased shapes into an *image.RGBA. Each shape is
// rasterized over its own bounding box only.
type Canvas struct {
	img      *image.RGBA
	bg       color.RGBA
	underlay image.Image
	z        vector.Rasterizer
}

// NewCanvas returns a width x height canvas cleared to background.
func NewCanvas(width, height int, background color.RGBA) *Canvas {
	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		bg:  background,
	}
	c.Clear()
	return c
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// SetUnderlay sets an image composited over the background on every
// Clear. Nil removes it.
func (c *Canvas) SetUnderlay(img image.Image) {
	c.underlay = img
}

// Clear fills the whole canvas with the background color and the
// underlay, if any.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.bg), image.Point{}, draw.Src)
	if c.underlay != nil {
		draw.Draw(c.img, c.img.Bounds(), c.underlay, c.underlay.Bounds().Min, draw.Over)
	}
}

// FillCircle draws a filled, antialiased disc.
func (c *Canvas) FillCircle(x, y, radius float64, col color.RGBA) {
	box := c.box(x-radius, y-radius, x+radius, y+radius)
	if box.Empty() {
		return
	}

	c.z.Reset(box.Dx(), box.Dy())
	cx := float32(x - float64(box.Min.X))
	cy := float32(y - float64(box.Min.Y))
	r := float32(radius)
	k := float32(kappa) * r

	c.z.MoveTo(cx+r, cy)
	c.z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	c.z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	c.z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	c.z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	c.z.ClosePath()
	c.z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// StrokeLine draws a segment as a width-wide quad in col at the given
// opacity.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.RGBA, opacity float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 || opacity <= 0 {
		return
	}

	// Half-width normal to the segment.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	box := c.box(
		math.Min(x1, x2)-width, math.Min(y1, y2)-width,
		math.Max(x1, x2)+width, math.Max(y1, y2)+width,
	)
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	pt := func(x, y float64) (float32, float32) {
		return float32(x - ox), float32(y - oy)
	}

	c.z.Reset(box.Dx(), box.Dy())
	c.z.MoveTo(pt(x1+nx, y1+ny))
	c.z.LineTo(pt(x2+nx, y2+ny))
	c.z.LineTo(pt(x2-nx, y2-ny))
	c.z.LineTo(pt(x1-nx, y1-ny))
	c.z.ClosePath()

	c.z.Draw(c.img, box, image.NewUniform(particles.Fade(col, opacity)), image.Point{})
}

// box returns the pixel rectangle covering the given extent, clipped to
// the canvas.
func (c *Canvas) box(minX, minY, maxX, maxY float64) image.Rectangle {
	r := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
	return r.Intersect(c.img.Bounds())
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to a PNG file at path. An empty canvas is
// rejected before the file is created, and a partly written file is
// removed on failure.
func (c *Canvas) SavePNG(path string) error {
	if c.img.Bounds().Empty() {
		return fmt.Errorf("saving %s: canvas is empty", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Package backdrop renders the faint noise tint painted beneath the
// particles when the backdrop is enabled.
package backdrop

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/olivierh59500/particle-backdrop/internal/palette"
)

// Perlin noise parameters
const (
	alpha  = 2.0
	beta   = 2.0
	octave = 3

	// cell is the pixel block size sampled once; noise varies slowly
	// enough that per-pixel sampling is wasted work.
	cell = 4
)

// Options tunes the tint.
type Options struct {
	Scale    float64 // Noise frequency per pixel
	Strength float64 // Peak alpha of the tint, 0..1
}

// Noise samples 2D perlin noise mapped into [0, 1].
type Noise struct {
	p *perlin.Perlin
}

// NewNoise returns a noise field for seed.
func NewNoise(seed int64) *Noise {
	return &Noise{p: perlin.NewPerlin(alpha, beta, octave, seed)}
}

// At returns the noise value at (x, y), clamped to [0, 1].
func (n *Noise) At(x, y float64) float64 {
	v := (n.p.Noise2D(x, y) + 1) / 2
	return math.Max(0, math.Min(1, v))
}

// Render paints a width x height tint that drifts between the two theme
// colors, with alpha following the noise up to opts.Strength.
func Render(width, height int, noise *Noise, theme palette.Theme, opts Options) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))

	for cy := 0; cy < height; cy += cell {
		for cx := 0; cx < width; cx += cell {
			v := noise.At(float64(cx)*opts.Scale, float64(cy)*opts.Scale)
			rgb := palette.ToRGBA(theme.Blend(v))
			c := color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: uint8(math.Round(v * opts.Strength * 255))}

			for y := cy; y < min(cy+cell, height); y++ {
				for x := cx; x < min(cx+cell, width); x++ {
					img.SetNRGBA(x, y, c)
				}
			}
		}
	}
	return img
}

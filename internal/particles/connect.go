package particles

import (
	"image/color"
	"math"
)

// LineColor is the hue of every connection line. Only its opacity varies.
var LineColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Opacity returns the line opacity for two particles distance apart:
// maxOpacity at distance 0 falling linearly to 0 at maxDistance.
func Opacity(distance, maxDistance, maxOpacity float64) float64 {
	return (1 - distance/maxDistance) * maxOpacity
}

// Fade returns c with its alpha scaled by opacity, rounded to the nearest
// step. Opacity is clamped to [0, 1].
func Fade(c color.RGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(opacity, 1))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(opacity * float64(c.A)))}
}

// Connect calls fn once for every unordered pair (ps[i], ps[j]) with i < j
// whose distance is below maxDistance.
func Connect(ps []*Particle, maxDistance float64, fn func(a, b *Particle, distance float64)) {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < maxDistance {
				fn(ps[i], ps[j], d)
			}
		}
	}
}

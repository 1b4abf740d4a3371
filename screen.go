package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/olivierh59500/particle-backdrop/internal/backdrop"
	"github.com/olivierh59500/particle-backdrop/internal/palette"
	"github.com/olivierh59500/particle-backdrop/internal/particles"
)

// screenSurface draws the field onto the ebiten screen image for the
// frame being rendered.
type screenSurface struct {
	target     *ebiten.Image
	background color.RGBA

	// Optional noise tint, rebuilt on resize
	noise *backdrop.Noise
	theme palette.Theme
	opts  backdrop.Options
	tint  *ebiten.Image
}

func (s *screenSurface) Clear() {
	s.target.Fill(s.background)
	if s.tint != nil {
		s.target.DrawImage(s.tint, nil)
	}
}

func (s *screenSurface) FillCircle(x, y, radius float64, c color.RGBA) {
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(radius), c, true)
}

func (s *screenSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA, opacity float64) {
	vector.StrokeLine(s.target, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), particles.Fade(c, opacity), true)
}

// resize rebuilds the tint for a new surface size. Without noise it does
// nothing.
func (s *screenSurface) resize(width, height int) {
	if s.noise == nil {
		return
	}
	if s.tint != nil {
		s.tint.Deallocate()
		s.tint = nil
	}
	if width <= 0 || height <= 0 {
		return
	}
	s.tint = ebiten.NewImageFromImage(backdrop.Render(width, height, s.noise, s.theme, s.opts))
}

// Package palette holds the two-color themes that tint the particles and
// the page elements drawn above them.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTheme is returned by Lookup for a name that matches no theme.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is an ordered pair of colors.
type Theme struct {
	Name      string
	Slug      string
	Primary   string // Hex, e.g. "#06D6A0"
	Secondary string
}

var themes = []Theme{
	{Name: "Teal & Turquoise", Slug: "teal-turquoise", Primary: "#06D6A0", Secondary: "#1B9AAA"},
	{Name: "Red & Yellow", Slug: "red-yellow", Primary: "#FF6B6B", Secondary: "#FFD93D"},
	{Name: "Purple & Lavender", Slug: "purple-lavender", Primary: "#6A0572", Secondary: "#AB83A1"},
	{Name: "Blue & Green", Slug: "blue-green", Primary: "#2E86AB", Secondary: "#A6DF95"},
	{Name: "Orange & Blue", Slug: "orange-blue", Primary: "#F46036", Secondary: "#5B85AA"},
	{Name: "Purple & Pink", Slug: "purple-pink", Primary: "#540D6E", Secondary: "#EE4266"},
}

// Rand is a source of uniform floats in [0, 1).
type Rand interface {
	Float64() float64
}

// All returns a copy of every theme in declaration order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Pick chooses one theme uniformly at random.
func Pick(rng Rand) Theme {
	i := int(rng.Float64() * float64(len(themes)))
	if i >= len(themes) {
		i = len(themes) - 1
	}
	return themes[i]
}

// Lookup finds a theme by slug or display name, ignoring case.
func Lookup(name string) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(name, t.Slug) || strings.EqualFold(name, t.Name) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// Hex returns the theme color for element index i: Primary for even
// indices, Secondary for odd ones.
func (t Theme) Hex(i int) string {
	if i%2 == 0 {
		return t.Primary
	}
	return t.Secondary
}

// Colors returns both theme colors as opaque RGBA values.
func (t Theme) Colors() [2]color.RGBA {
	return [2]color.RGBA{MustRGBA(t.Primary), MustRGBA(t.Secondary)}
}

// Blend mixes the two theme colors in Lab space; f=0 is Primary, f=1 is
// Secondary.
func (t Theme) Blend(f float64) colorful.Color {
	a, _ := colorful.MakeColor(MustRGBA(t.Primary))
	b, _ := colorful.MakeColor(MustRGBA(t.Secondary))
	return a.BlendLab(b, f).Clamped()
}

// ParseRGBA parses a "#rrggbb" or "#rgb" string into an opaque color.
func ParseRGBA(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	return ToRGBA(c), nil
}

// MustRGBA is ParseRGBA for the fixed theme table; it panics on bad input.
func MustRGBA(hex string) color.RGBA {
	c, err := ParseRGBA(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// ToRGBA converts a colorful color into an opaque RGBA.
func ToRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

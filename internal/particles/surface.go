package particles

import "image/color"

// Surface is the drawing capability a frame renders onto.
type Surface interface {
	// Clear wipes the whole surface.
	Clear()
	// FillCircle draws a filled disc centred on (x, y).
	FillCircle(x, y, radius float64, c color.RGBA)
	// StrokeLine draws a segment from (x1, y1) to (x2, y2) in c scaled by
	// opacity, which lies in [0, 1].
	StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA, opacity float64)
}

// Rand is a source of uniform floats in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

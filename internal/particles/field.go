package particles

import (
	"context"
	"image/color"
	"log/slog"
	"math"
)

// Options tunes how particles are created and connected.
type Options struct {
	Divisor     float64 // Surface width per particle, also width per unit of connection distance
	MaxCount    int     // Cap on the initial particle count
	MaxDistance float64 // Cap on the connection distance
	RadiusMin   float64
	RadiusSpan  float64 // Radius is drawn from [RadiusMin, RadiusMin+RadiusSpan)
	Speed       float64 // Speed scalar for initial particles
	ClickSpeed  float64 // Speed scalar for spawned particles
	ClickBurst  int     // Particles added per spawn
	MaxOpacity  float64 // Line opacity at distance 0
	LineWidth   float64
}

// DefaultOptions returns the stock backdrop tuning.
func DefaultOptions() Options {
	return Options{
		Divisor:     10,
		MaxCount:    100,
		MaxDistance: 100,
		RadiusMin:   1,
		RadiusSpan:  3,
		Speed:       0.5,
		ClickSpeed:  1,
		ClickBurst:  5,
		MaxOpacity:  0.2,
		LineWidth:   0.5,
	}
}

// TargetCount is the number of particles Reset creates for a surface of
// the given width: width/Divisor rounded down, capped at MaxCount.
func (o Options) TargetCount(width float64) int {
	if width <= 0 || o.Divisor <= 0 {
		return 0
	}
	n := int(math.Floor(width / o.Divisor))
	if n > o.MaxCount {
		n = o.MaxCount
	}
	return n
}

// ConnectDistance is the distance below which two particles are joined.
func (o Options) ConnectDistance(width float64) float64 {
	if o.Divisor <= 0 {
		return 0
	}
	return math.Min(width/o.Divisor, o.MaxDistance)
}

// Config holds everything NewField needs.
type Config struct {
	Width, Height float64
	Colors        [2]color.RGBA
	Rand          Rand
	Options       Options // Zero value means DefaultOptions
	Logger        *slog.Logger
}

// Field is the simulation context: surface bounds, palette, random source
// and the particle store. It is not safe for concurrent use; the host
// calls every method from its single render goroutine.
type Field struct {
	width, height float64
	colors        [2]color.RGBA
	rng           Rand
	opts          Options
	store         Store
	frames        uint64
	log           *slog.Logger
}

// NewField creates a field and populates it for the given bounds.
func NewField(cfg Config) *Field {
	opts := cfg.Options
	if opts == (Options{}) {
		opts = DefaultOptions()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f := &Field{
		width:  cfg.Width,
		height: cfg.Height,
		colors: cfg.Colors,
		rng:    cfg.Rand,
		opts:   opts,
		log:    logger,
	}
	f.Reset()
	return f
}

// Reset discards every particle, including spawned ones, and creates
// TargetCount fresh particles spread uniformly over the bounds.
func (f *Field) Reset() {
	f.store.Reset()

	n := f.opts.TargetCount(f.width)
	for i := 0; i < n; i++ {
		x := f.rng.Float64() * f.width
		y := f.rng.Float64() * f.height
		f.store.Append(f.newParticle(x, y, f.opts.Speed))
	}

	f.log.Debug("particles reset",
		"count", n,
		"width", f.width,
		"height", f.height,
		"connect_distance", f.ConnectDistance())
}

// Resize changes the surface bounds and reinitializes the store.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	f.Reset()
}

// Spawn appends ClickBurst particles at (x, y) moving at ClickSpeed.
func (f *Field) Spawn(x, y float64) {
	for i := 0; i < f.opts.ClickBurst; i++ {
		f.store.Append(f.newParticle(x, y, f.opts.ClickSpeed))
	}
	f.log.Debug("particles spawned", "x", x, "y", y, "total", f.store.Len())
}

// Step renders one frame: clear, move and draw every particle, then join
// nearby particles using their moved positions.
func (f *Field) Step(s Surface) {
	s.Clear()

	for _, p := range f.store.All() {
		p.Update(f.width, f.height)
		s.FillCircle(p.X, p.Y, p.Radius, p.Color)
	}

	maxDistance := f.ConnectDistance()
	lines := 0
	Connect(f.store.All(), maxDistance, func(a, b *Particle, d float64) {
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.opts.LineWidth, LineColor, Opacity(d, maxDistance, f.opts.MaxOpacity))
		lines++
	})

	f.frames++
	f.log.Log(context.Background(), levelTrace, "frame",
		"frame", f.frames,
		"particles", f.store.Len(),
		"lines", lines)
}

// Bounds returns the current surface size.
func (f *Field) Bounds() (width, height float64) {
	return f.width, f.height
}

// ConnectDistance is the connection distance for the current bounds.
func (f *Field) ConnectDistance() float64 {
	return f.opts.ConnectDistance(f.width)
}

// Particles returns the live particles in store order.
func (f *Field) Particles() []*Particle {
	return f.store.All()
}

func (f *Field) Len() int {
	return f.store.Len()
}

// Frames returns how many times Step has run.
func (f *Field) Frames() uint64 {
	return f.frames
}

// newParticle draws radius, color and velocity, in that order.
func (f *Field) newParticle(x, y, speed float64) *Particle {
	p := &Particle{
		X:      x,
		Y:      y,
		Radius: f.rng.Float64()*f.opts.RadiusSpan + f.opts.RadiusMin,
	}
	if f.rng.Float64() > 0.5 {
		p.Color = f.colors[0]
	} else {
		p.Color = f.colors[1]
	}
	p.VX = speed * (f.rng.Float64() - 0.5)
	p.VY = speed * (f.rng.Float64() - 0.5)
	return p
}

// levelTrace matches logging.LevelTrace without importing the logging
// package into the simulation core.
const levelTrace = slog.LevelDebug - 4

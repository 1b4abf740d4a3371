package particles

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

var (
	teal      = color.RGBA{R: 0x06, G: 0xD6, B: 0xA0, A: 0xFF}
	turquoise = color.RGBA{R: 0x1B, G: 0x9A, B: 0xAA, A: 0xFF}
)

// constRand returns the same value for every draw.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

// seqRand replays a fixed sequence of draws, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type circleOp struct {
	x, y, r float64
	c       color.RGBA
}

type lineOp struct {
	x1, y1, x2, y2 float64
	width          float64
	opacity        float64
}

// recorder is a Surface that remembers every call in order.
type recorder struct {
	ops     []string
	circles []circleOp
	lines   []lineOp
}

func (r *recorder) Clear() { r.ops = append(r.ops, "clear") }

func (r *recorder) FillCircle(x, y, radius float64, c color.RGBA) {
	r.ops = append(r.ops, "circle")
	r.circles = append(r.circles, circleOp{x, y, radius, c})
}

func (r *recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA, opacity float64) {
	r.ops = append(r.ops, "line")
	r.lines = append(r.lines, lineOp{x1, y1, x2, y2, width, opacity})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// emptyField returns a field with no initial particles whose spawns are
// single, motionless particles.
func emptyField(width, height float64) *Field {
	opts := DefaultOptions()
	opts.MaxCount = 0
	opts.ClickBurst = 1
	opts.ClickSpeed = 0
	return NewField(Config{
		Width:   width,
		Height:  height,
		Colors:  [2]color.RGBA{teal, turquoise},
		Rand:    constRand(0.25),
		Options: opts,
	})
}

func seededField(width, height float64, seed int64) *Field {
	return NewField(Config{
		Width:  width,
		Height: height,
		Colors: [2]color.RGBA{teal, turquoise},
		Rand:   rand.New(rand.NewSource(seed)),
	})
}

func TestTargetCount(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name  string
		width float64
		want  int
	}{
		{"large surface is capped", 1000, 100},
		{"wide surface is capped", 2560, 100},
		{"small surface", 50, 5},
		{"fraction rounds down", 55, 5},
		{"below one particle", 9, 0},
		{"zero width", 0, 0},
		{"negative width", -40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opts.TargetCount(tt.width); got != tt.want {
				t.Errorf("TargetCount(%v) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestConnectDistance(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		width float64
		want  float64
	}{
		{1000, 100},
		{1920, 100},
		{500, 50},
		{50, 5},
	}
	for _, tt := range tests {
		if got := opts.ConnectDistance(tt.width); got != tt.want {
			t.Errorf("ConnectDistance(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestOpacity(t *testing.T) {
	if got := Opacity(0, 100, 0.2); !almostEqual(got, 0.2) {
		t.Errorf("Opacity at distance 0 = %v, want 0.2", got)
	}
	if got := Opacity(100, 100, 0.2); !almostEqual(got, 0) {
		t.Errorf("Opacity at max distance = %v, want 0", got)
	}
	if got := Opacity(50, 100, 0.2); !almostEqual(got, 0.1) {
		t.Errorf("Opacity at half distance = %v, want 0.1", got)
	}

	prev := Opacity(0, 100, 0.2)
	for d := 1.0; d <= 100; d++ {
		got := Opacity(d, 100, 0.2)
		if got >= prev {
			t.Fatalf("Opacity not decreasing at distance %v: %v >= %v", d, got, prev)
		}
		prev = got
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		opacity float64
		want    uint8
	}{
		{0, 0},
		{0.2, 51},
		{0.199, 51}, // 50.745 rounds up
		{0.1, 26},   // 25.5 rounds half away from zero
		{1, 255},
		{1.5, 255},
		{-0.1, 0},
	}
	for _, tt := range tests {
		got := Fade(LineColor, tt.opacity)
		if got.A != tt.want {
			t.Errorf("Fade(%v).A = %d, want %d", tt.opacity, got.A, tt.want)
		}
		if got.R != 255 || got.G != 255 || got.B != 255 {
			t.Errorf("Fade(%v) changed hue: %v", tt.opacity, got)
		}
	}
}

func TestUpdateDisplacesByVelocity(t *testing.T) {
	p := &Particle{X: 10, Y: 20, VX: 0.3, VY: -0.2, Radius: 1}
	p.Update(100, 100)

	if !almostEqual(p.X, 10.3) || !almostEqual(p.Y, 19.8) {
		t.Errorf("position = (%v, %v), want (10.3, 19.8)", p.X, p.Y)
	}
	if p.VX != 0.3 || p.VY != -0.2 {
		t.Errorf("velocity changed inside bounds: (%v, %v)", p.VX, p.VY)
	}
}

func TestUpdateReflectsWithoutClamping(t *testing.T) {
	tests := []struct {
		name           string
		p              Particle
		wantX, wantY   float64
		wantVX, wantVY float64
	}{
		{
			name:  "right edge",
			p:     Particle{X: 99.8, Y: 50, VX: 0.5, VY: 0.1},
			wantX: 99.8 + 0.5, wantY: 50 + 0.1,
			wantVX: -0.5, wantVY: 0.1,
		},
		{
			name:  "left edge",
			p:     Particle{X: 0.1, Y: 50, VX: -0.4, VY: 0},
			wantX: 0.1 + -0.4, wantY: 50,
			wantVX: 0.4, wantVY: 0,
		},
		{
			name:  "bottom edge",
			p:     Particle{X: 50, Y: 99.9, VX: 0, VY: 0.25},
			wantX: 50, wantY: 99.9 + 0.25,
			wantVX: 0, wantVY: -0.25,
		},
		{
			name:  "corner flips both",
			p:     Particle{X: -0.1, Y: -0.1, VX: -0.2, VY: -0.3},
			wantX: -0.1 + -0.2, wantY: -0.1 + -0.3,
			wantVX: 0.2, wantVY: 0.3,
		},
		{
			name:  "exactly on edge does not flip",
			p:     Particle{X: 99.5, Y: 0.5, VX: 0.5, VY: -0.5},
			wantX: 100, wantY: 0,
			wantVX: 0.5, wantVY: -0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			p.Update(100, 100)
			if !almostEqual(p.X, tt.wantX) || !almostEqual(p.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
			if p.VX != tt.wantVX || p.VY != tt.wantVY {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", p.VX, p.VY, tt.wantVX, tt.wantVY)
			}
		})
	}
}

func TestVelocityMagnitudeIsPreserved(t *testing.T) {
	f := seededField(300, 200, 42)
	f.Spawn(150, 100)

	type speed struct{ vx, vy float64 }
	initial := make([]speed, f.Len())
	for i, p := range f.Particles() {
		initial[i] = speed{math.Abs(p.VX), math.Abs(p.VY)}
	}

	s := &recorder{}
	for frame := 0; frame < 2000; frame++ {
		f.Step(s)
		s.ops, s.circles, s.lines = s.ops[:0], s.circles[:0], s.lines[:0]
	}

	for i, p := range f.Particles() {
		if math.Abs(p.VX) != initial[i].vx || math.Abs(p.VY) != initial[i].vy {
			t.Fatalf("particle %d speed changed: (%v, %v) -> (%v, %v)",
				i, initial[i].vx, initial[i].vy, math.Abs(p.VX), math.Abs(p.VY))
		}
	}
}

func TestParticlesStayNearBounds(t *testing.T) {
	f := seededField(200, 120, 7)
	s := &recorder{}
	for frame := 0; frame < 5000; frame++ {
		f.Step(s)
		s.ops, s.circles, s.lines = s.ops[:0], s.circles[:0], s.lines[:0]
	}

	// Overshoot is at most one frame of displacement, which is below 0.5
	// for the default speed.
	for i, p := range f.Particles() {
		if p.X < -0.5 || p.X > 200.5 || p.Y < -0.5 || p.Y > 120.5 {
			t.Errorf("particle %d escaped to (%v, %v)", i, p.X, p.Y)
		}
	}
}

func TestNewFieldScenarios(t *testing.T) {
	tests := []struct {
		name         string
		width        float64
		height       float64
		wantCount    int
		wantDistance float64
	}{
		{"1000x1000", 1000, 1000, 100, 100},
		{"50x50", 50, 50, 5, 5},
		{"empty surface", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := seededField(tt.width, tt.height, 1)
			if f.Len() != tt.wantCount {
				t.Errorf("Len() = %d, want %d", f.Len(), tt.wantCount)
			}
			if f.ConnectDistance() != tt.wantDistance {
				t.Errorf("ConnectDistance() = %v, want %v", f.ConnectDistance(), tt.wantDistance)
			}
		})
	}
}

func TestInitialParticles(t *testing.T) {
	f := seededField(640, 480, 3)

	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 640 || p.Y < 0 || p.Y >= 480 {
			t.Errorf("particle %d starts outside bounds at (%v, %v)", i, p.X, p.Y)
		}
		if p.Radius < 1 || p.Radius >= 4 {
			t.Errorf("particle %d radius %v outside [1, 4)", i, p.Radius)
		}
		if p.Color != teal && p.Color != turquoise {
			t.Errorf("particle %d has color %v outside the palette", i, p.Color)
		}
		if math.Abs(p.VX) > 0.25 || math.Abs(p.VY) > 0.25 {
			t.Errorf("particle %d velocity (%v, %v) exceeds speed 0.5", i, p.VX, p.VY)
		}
	}
}

func TestInitialDrawOrder(t *testing.T) {
	// Draws per particle: x, y, radius, color, vx, vy.
	rng := &seqRand{vals: []float64{0.5, 0.25, 0.5, 0.9, 1, 0}}
	opts := DefaultOptions()
	f := NewField(Config{
		Width:   20,
		Height:  40,
		Colors:  [2]color.RGBA{teal, turquoise},
		Rand:    rng,
		Options: opts,
	})

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	p := f.Particles()[0]
	want := Particle{X: 10, Y: 10, Radius: 2.5, Color: teal, VX: 0.25, VY: -0.25}
	if *p != want {
		t.Errorf("particle = %+v, want %+v", *p, want)
	}
}

func TestSpawnAtClick(t *testing.T) {
	f := NewField(Config{
		Width:  1000,
		Height: 1000,
		Colors: [2]color.RGBA{teal, turquoise},
		Rand:   constRand(0.75),
	})
	before := f.Len()

	f.Spawn(200, 300)

	if got := f.Len() - before; got != 5 {
		t.Fatalf("spawned %d particles, want 5", got)
	}
	for _, p := range f.Particles()[before:] {
		if p.X != 200 || p.Y != 300 {
			t.Errorf("spawned particle at (%v, %v), want (200, 300)", p.X, p.Y)
		}
		// Speed 1 times (0.75 - 0.5).
		if p.VX != 0.25 || p.VY != 0.25 {
			t.Errorf("spawned velocity = (%v, %v), want (0.25, 0.25)", p.VX, p.VY)
		}
		if p.Radius != 3.25 {
			t.Errorf("spawned radius = %v, want 3.25", p.Radius)
		}
		if p.Color != teal {
			t.Errorf("spawned color = %v, want %v", p.Color, teal)
		}
	}

	// Initial particles use half the spawn speed.
	if p := f.Particles()[0]; p.VX != 0.125 {
		t.Errorf("initial VX = %v, want 0.125", p.VX)
	}
}

func TestResizeDiscardsSpawned(t *testing.T) {
	f := seededField(1000, 800, 9)
	f.Spawn(10, 10)
	f.Spawn(20, 20)
	if f.Len() != 110 {
		t.Fatalf("Len() = %d, want 110", f.Len())
	}

	f.Resize(50, 50)

	if f.Len() != 5 {
		t.Errorf("Len() after resize = %d, want 5", f.Len())
	}
	if w, h := f.Bounds(); w != 50 || h != 50 {
		t.Errorf("Bounds() = (%v, %v), want (50, 50)", w, h)
	}
	for i, p := range f.Particles() {
		if p.X >= 50 || p.Y >= 50 {
			t.Errorf("particle %d at (%v, %v) outside resized bounds", i, p.X, p.Y)
		}
	}
}

func TestThemeSurvivesResizeAndSpawn(t *testing.T) {
	f := seededField(400, 300, 11)
	f.Resize(640, 480)
	f.Spawn(100, 100)
	f.Spawn(320, 240)
	f.Resize(200, 100)
	f.Spawn(50, 50)

	if f.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", f.Len())
	}
	for i, p := range f.Particles() {
		if p.Color != teal && p.Color != turquoise {
			t.Errorf("particle %d has color %v, want one of the original pair", i, p.Color)
		}
	}
}

func TestStepTwoParticles(t *testing.T) {
	f := emptyField(1000, 1000)
	f.Spawn(0, 0)
	f.Spawn(50, 0)

	s := &recorder{}
	f.Step(s)

	if len(s.lines) != 1 {
		t.Fatalf("drew %d lines, want 1", len(s.lines))
	}
	l := s.lines[0]
	if !almostEqual(l.opacity, 0.1) {
		t.Errorf("opacity = %v, want 0.1", l.opacity)
	}
	if l.width != 0.5 {
		t.Errorf("line width = %v, want 0.5", l.width)
	}
	if l.x1 != 0 || l.y1 != 0 || l.x2 != 50 || l.y2 != 0 {
		t.Errorf("line = (%v,%v)-(%v,%v), want (0,0)-(50,0)", l.x1, l.y1, l.x2, l.y2)
	}
}

func TestStepSkipsDistantPairs(t *testing.T) {
	f := emptyField(1000, 1000)
	f.Spawn(0, 0)
	f.Spawn(100, 0)
	f.Spawn(0, 99.9)

	s := &recorder{}
	f.Step(s)

	// (0,0)-(100,0) is exactly at the limit; (100,0)-(0,99.9) is farther.
	if len(s.lines) != 1 {
		t.Fatalf("drew %d lines, want 1", len(s.lines))
	}
	if l := s.lines[0]; l.x2 != 0 || l.y2 != 99.9 {
		t.Errorf("unexpected line to (%v, %v)", l.x2, l.y2)
	}
}

func TestStepOrder(t *testing.T) {
	f := seededField(300, 300, 11)
	s := &recorder{}
	f.Step(s)

	if len(s.ops) == 0 || s.ops[0] != "clear" {
		t.Fatalf("first op = %v, want clear", s.ops)
	}
	n := f.Len()
	for i := 1; i <= n; i++ {
		if s.ops[i] != "circle" {
			t.Fatalf("op %d = %s, want circle", i, s.ops[i])
		}
	}
	for i := n + 1; i < len(s.ops); i++ {
		if s.ops[i] != "line" {
			t.Fatalf("op %d = %s, want line", i, s.ops[i])
		}
	}

	// Circles and lines are drawn at the moved positions.
	for i, p := range f.Particles() {
		c := s.circles[i]
		if c.x != p.X || c.y != p.Y || c.r != p.Radius || c.c != p.Color {
			t.Errorf("circle %d = %+v, particle at (%v, %v)", i, c, p.X, p.Y)
		}
	}
	at := make(map[[2]float64]bool)
	for _, p := range f.Particles() {
		at[[2]float64{p.X, p.Y}] = true
	}
	for i, l := range s.lines {
		if !at[[2]float64{l.x1, l.y1}] || !at[[2]float64{l.x2, l.y2}] {
			t.Errorf("line %d does not end on moved particles", i)
		}
	}
	if f.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", f.Frames())
	}
}

func TestStepEmptySurface(t *testing.T) {
	f := seededField(0, 0, 1)
	s := &recorder{}
	f.Step(s)

	if len(s.ops) != 1 || s.ops[0] != "clear" {
		t.Errorf("ops = %v, want [clear]", s.ops)
	}
}

func TestConnectIsOrderIndependent(t *testing.T) {
	ps := []*Particle{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 0, Y: 10},
		{X: 500, Y: 500},
		{X: 505, Y: 500},
	}
	reversed := make([]*Particle, len(ps))
	for i, p := range ps {
		reversed[len(ps)-1-i] = p
	}

	collect := func(in []*Particle) map[[2]*Particle]int {
		seen := make(map[[2]*Particle]int)
		Connect(in, 50, func(a, b *Particle, _ float64) {
			if a == b {
				t.Fatalf("particle paired with itself")
			}
			key := [2]*Particle{a, b}
			if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
				key = [2]*Particle{b, a}
			}
			seen[key]++
		})
		return seen
	}

	forward := collect(ps)
	backward := collect(reversed)

	if len(forward) != 4 {
		t.Errorf("forward pass found %d pairs, want 4", len(forward))
	}
	for k, n := range forward {
		if n != 1 {
			t.Errorf("pair %v drawn %d times", k, n)
		}
		if backward[k] != 1 {
			t.Errorf("pair %v drawn %d times in reversed order", k, backward[k])
		}
	}
	if len(backward) != len(forward) {
		t.Errorf("reversed pass found %d pairs, forward %d", len(backward), len(forward))
	}
}

func TestStore(t *testing.T) {
	var s Store
	a, b, c := &Particle{X: 1}, &Particle{X: 2}, &Particle{X: 3}
	s.Append(a)
	s.Append(b)
	s.Append(c)

	all := s.All()
	if len(all) != 3 || all[0] != a || all[1] != b || all[2] != c {
		t.Errorf("All() did not preserve insertion order")
	}

	s.Reset()
	if s.Len() != 0 || len(s.All()) != 0 {
		t.Errorf("Reset() left %d particles", s.Len())
	}
}

// Package particles holds the moving points of the backdrop and the
// per-frame step that moves, draws and connects them.
package particles

import "image/color"

// Particle struct: one moving point on the surface
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity, signed
	Radius float64
	Color  color.RGBA
}

// Update moves the particle by its velocity, then reverses the velocity on
// any axis where the new position lies outside [0, width] or [0, height].
// Position is left as is; the reversed velocity brings it back next frame.
func (p *Particle) Update(width, height float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > height {
		p.VY = -p.VY
	}
}

// Store is an ordered collection of particles. Order only matters to the
// connection pass, which pairs particles by index.
type Store struct {
	particles []*Particle
}

// Append adds p after every particle already stored.
func (s *Store) Append(p *Particle) {
	s.particles = append(s.particles, p)
}

// All returns the live particles in insertion order. The slice is shared
// with the store and must not be appended to.
func (s *Store) All() []*Particle {
	return s.particles
}

func (s *Store) Len() int {
	return len(s.particles)
}

// Reset discards every particle.
func (s *Store) Reset() {
	s.particles = nil
}

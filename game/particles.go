package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Particle burst settings
const (
	particlesPerBurst = 5
	particleMinSpeed  = 1.0
	particleMaxSpeed  = 3.0
	particleLifeStep  = 0.02 // life lost per update, ~0.83s at 60 TPS
	particleRadius    = 3.0
)

// Particle is a purely cosmetic dot with decaying life
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  color.Color
}

// IsAlive returns true if the particle still has life left
func (p *Particle) IsAlive() bool {
	return p.Life > 0
}

// ParticleSystem owns the particles spawned by the renderer
type ParticleSystem struct {
	particles []Particle
	rng       *rand.Rand
}

// NewParticleSystem creates an empty particle system
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		particles: make([]Particle, 0, 50),
		rng:       rng,
	}
}

// Len returns the number of live particles
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Emit spawns a burst of particles at (x, y) flying in random directions
func (ps *ParticleSystem) Emit(x, y float64, clr color.Color) {
	for i := 0; i < particlesPerBurst; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := particleMinSpeed + ps.rng.Float64()*(particleMaxSpeed-particleMinSpeed)
		ps.particles = append(ps.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Color: clr,
		})
	}
}

// Update advances every particle, draws the survivors as translucent circles
// and drops the dead ones.
func (ps *ParticleSystem) Update(canvas Canvas) {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= particleLifeStep
		if !p.IsAlive() {
			continue
		}
		canvas.SetAlpha(p.Life)
		canvas.FillCircle(p.X, p.Y, particleRadius, p.Color)
		canvas.SetAlpha(1)
		alive = append(alive, p)
	}
	// Clear the tail so dropped colors can be collected
	for i := len(alive); i < len(ps.particles); i++ {
		ps.particles[i] = Particle{}
	}
	ps.particles = alive
}

// Clear removes all particles
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

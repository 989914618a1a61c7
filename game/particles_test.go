package game

import (
	"image/color"
	"math"
	"testing"
)

func TestEmitAddsFiveParticles(t *testing.T) {
	ps := NewParticleSystem(newTestRand())
	ps.Emit(10, 20, color.White)
	if ps.Len() != 5 {
		t.Fatalf("particles after one burst = %d, want 5", ps.Len())
	}
	ps.Emit(0, 0, color.White)
	if ps.Len() != 10 {
		t.Fatalf("particles after two bursts = %d, want 10", ps.Len())
	}

	for i, p := range ps.particles[:5] {
		speed := math.Hypot(p.VX, p.VY)
		if speed < 1-1e-9 || speed >= 3 {
			t.Errorf("particle %d speed = %v, want in [1,3)", i, speed)
		}
		if p.Life != 1 || p.X != 10 || p.Y != 20 {
			t.Errorf("particle %d = %+v, want life 1 at (10,20)", i, p)
		}
	}
}

func TestParticlesExpireAfterFiftyUpdates(t *testing.T) {
	ps := NewParticleSystem(newTestRand())
	canvas := newRecordingCanvas(100, 100)
	ps.Emit(50, 50, color.White)

	for i := 1; i <= 49; i++ {
		ps.Update(canvas)
		if ps.Len() != 5 {
			t.Fatalf("particles after %d updates = %d, want 5", i, ps.Len())
		}
	}
	ps.Update(canvas)
	if ps.Len() != 0 {
		t.Fatalf("particles after 50 updates = %d, want 0", ps.Len())
	}
}

func TestParticleUpdateMovesAndFades(t *testing.T) {
	ps := NewParticleSystem(newTestRand())
	ps.particles = append(ps.particles, Particle{X: 1, Y: 2, VX: 3, VY: -1, Life: 1, Color: color.White})
	canvas := newRecordingCanvas(100, 100)

	ps.Update(canvas)

	p := ps.particles[0]
	if p.X != 4 || p.Y != 1 {
		t.Errorf("particle at (%v,%v), want (4,1)", p.X, p.Y)
	}
	if math.Abs(p.Life-0.98) > 1e-12 {
		t.Errorf("life = %v, want 0.98", p.Life)
	}
	if len(canvas.calls) != 1 || canvas.calls[0].op != "circle" {
		t.Fatalf("calls = %v, want one circle", canvas.ops())
	}
	call := canvas.calls[0]
	if math.Abs(call.alpha-0.98) > 1e-12 || call.w != particleRadius {
		t.Errorf("drawn with alpha %v radius %v", call.alpha, call.w)
	}
	if canvas.current.alpha != 1 {
		t.Errorf("alpha left at %v after drawing particles", canvas.current.alpha)
	}
}

func TestDeadParticlesAreNotDrawn(t *testing.T) {
	ps := NewParticleSystem(newTestRand())
	ps.particles = append(ps.particles,
		Particle{Life: 0.01, Color: color.White},
		Particle{Life: 0.5, Color: color.White},
	)
	canvas := newRecordingCanvas(100, 100)

	ps.Update(canvas)
	if ps.Len() != 1 {
		t.Fatalf("survivors = %d, want 1", ps.Len())
	}
	if len(canvas.calls) != 1 {
		t.Fatalf("drew %d particles, want 1", len(canvas.calls))
	}
}

package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Sprite geometry
const (
	playerRadius       = 20.0
	enemyRadius        = 15.0
	bulletSize         = 8.0
	healthBarWidth     = 30.0
	healthBarHeight    = 4.0
	healthBarOffsetY   = -25.0
	playerNoseX        = 20.0
	playerTailX        = -5.0
	playerTailHalfSpan = 10.0
)

var (
	colorPlayer          = mustHex("#4a90e2")
	colorPlayerIndicator = mustHex("#2c3e50")
	colorEnemy           = mustHex("#e74c3c")
	colorHealthTrack     = mustHex("#c0392b")
	colorHealthFill      = mustHex("#27ae60")
)

// Renderer paints the scene onto a Canvas. It never mutates simulation
// entities; the only state it owns is the particle system.
type Renderer struct {
	canvas    Canvas
	assets    *Assets
	particles *ParticleSystem
}

// NewRenderer creates a renderer drawing onto canvas with the loaded assets
func NewRenderer(canvas Canvas, assets *Assets, rng *rand.Rand) *Renderer {
	return &Renderer{
		canvas:    canvas,
		assets:    assets,
		particles: NewParticleSystem(rng),
	}
}

// Particles returns the renderer's particle system
func (r *Renderer) Particles() *ParticleSystem {
	return r.particles
}

// Clear erases the surface and repaints the tiled background
func (r *Renderer) Clear() {
	r.canvas.Clear()
	if r.assets != nil && r.assets.Background != nil {
		r.canvas.FillPattern(r.assets.Background)
	}
}

// DrawPlayer draws the player body and a triangle pointing along rotation
func (r *Renderer) DrawPlayer(x, y, rotation float64) {
	c := r.canvas
	c.Save()
	defer c.Restore()
	c.Translate(x, y)
	c.Rotate(rotation)

	c.FillCircle(0, 0, playerRadius, colorPlayer)
	c.FillPolygon([]Point{
		{playerNoseX, 0},
		{playerTailX, playerTailHalfSpan},
		{playerTailX, -playerTailHalfSpan},
	}, colorPlayerIndicator)
}

// DrawBullet draws the bullet sprite rotated to its direction of travel
func (r *Renderer) DrawBullet(x, y, rotation float64) {
	if r.assets == nil || r.assets.Bullet == nil {
		return
	}
	c := r.canvas
	c.Save()
	defer c.Restore()
	c.Translate(x, y)
	c.Rotate(rotation)
	c.DrawImage(r.assets.Bullet, -bulletSize/2, -bulletSize/2, bulletSize, bulletSize)
}

// DrawEnemy draws the enemy body with a health bar above it
func (r *Renderer) DrawEnemy(x, y, health float64) {
	c := r.canvas
	c.Save()
	defer c.Restore()
	c.Translate(x, y)

	c.FillCircle(0, 0, enemyRadius, colorEnemy)

	healthPercent := math.Max(0, math.Min(1, health/MaxHealth))
	c.FillRect(-healthBarWidth/2, healthBarOffsetY, healthBarWidth, healthBarHeight, colorHealthTrack)
	c.FillRect(-healthBarWidth/2, healthBarOffsetY, healthBarWidth*healthPercent, healthBarHeight, colorHealthFill)
}

// AddParticle spawns a burst of particles at (x, y)
func (r *Renderer) AddParticle(x, y float64, clr color.Color) {
	r.particles.Emit(x, y, clr)
}

// UpdateParticles steps and paints the particle system
func (r *Renderer) UpdateParticles() {
	r.particles.Update(r.canvas)
}

package game

import (
	"math"
)

// Movement holds the currently held directional keys
type Movement struct {
	Up, Down, Left, Right bool
}

// Player is the entity controlled by keyboard and mouse
type Player struct {
	// Position in screen coordinates
	X, Y float64

	Health float64
	Armor  float64
	Score  int

	// Ammo is shown on the HUD but firing does not consume it
	Ammo int

	// Rotation in radians, the aim direction
	Rotation float64

	Movement Movement

	// Shooting is true while the mouse button is held
	Shooting bool
}

// NewPlayer creates a player centered in a width x height screen with full stats
func NewPlayer(width, height float64) Player {
	return Player{
		X:      width / 2,
		Y:      height / 2,
		Health: MaxHealth,
		Armor:  MaxArmor,
		Score:  0,
		Ammo:   StartingAmmo,
	}
}

// Velocity returns the per-tick displacement implied by the movement intent.
// Opposite keys cancel out.
func (p *Player) Velocity() (float64, float64) {
	var dx, dy float64
	if p.Movement.Right {
		dx += PlayerSpeed
	}
	if p.Movement.Left {
		dx -= PlayerSpeed
	}
	if p.Movement.Down {
		dy += PlayerSpeed
	}
	if p.Movement.Up {
		dy -= PlayerSpeed
	}
	return dx, dy
}

// Move applies one tick of movement and clamps the result into the screen
func (p *Player) Move(width, height float64) {
	dx, dy := p.Velocity()
	p.X = clamp(p.X+dx, 0, width)
	p.Y = clamp(p.Y+dy, 0, height)
}

// Enemy homes toward the player. Health is only ever initialized.
type Enemy struct {
	X, Y   float64
	Health float64
}

// NewEnemy creates a new enemy with full health
func NewEnemy(x, y float64) Enemy {
	return Enemy{X: x, Y: y, Health: MaxHealth}
}

// homingEpsilon is the distance below which an enemy is considered to be on
// top of its target and does not move.
const homingEpsilon = 1e-9

// MoveToward moves the enemy EnemySpeed units toward (tx, ty)
func (e *Enemy) MoveToward(tx, ty float64) {
	dx := tx - e.X
	dy := ty - e.Y
	distance := math.Sqrt(dx*dx + dy*dy)
	if distance < homingEpsilon {
		return
	}
	e.X += dx / distance * EnemySpeed
	e.Y += dy / distance * EnemySpeed
}

// Bullet travels in a straight line along its rotation
type Bullet struct {
	X, Y     float64
	Rotation float64
}

// Advance moves the bullet BulletSpeed units along its rotation
func (b *Bullet) Advance() {
	b.X += math.Cos(b.Rotation) * BulletSpeed
	b.Y += math.Sin(b.Rotation) * BulletSpeed
}

// InBounds reports whether the bullet is inside [0, width] x [0, height].
// The boundary itself counts as inside.
func (b *Bullet) InBounds(width, height float64) bool {
	return b.X >= 0 && b.X <= width && b.Y >= 0 && b.Y <= height
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

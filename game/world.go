package game

import (
	"math/rand"
)

// Edge identifies a side of the screen
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// World is the authoritative simulation state, mutated once per tick by the
// game loop and read by the renderer and overlays.
type World struct {
	Width, Height float64

	Player  Player
	Enemies []Enemy
	Bullets []Bullet

	rng *rand.Rand
}

// NewWorld creates a world for a width x height screen with a fresh player
func NewWorld(width, height float64, rng *rand.Rand) *World {
	w := &World{
		Width:  width,
		Height: height,
		rng:    rng,
	}
	w.Reset()
	return w
}

// Reset replaces the player and empties the enemy and bullet collections
func (w *World) Reset() {
	w.Player = NewPlayer(w.Width, w.Height)
	w.Enemies = make([]Enemy, 0, 64)
	w.Bullets = make([]Bullet, 0, 64)
}

// SpawnBullet adds a bullet at (x, y) traveling along rotation
func (w *World) SpawnBullet(x, y, rotation float64) {
	w.Bullets = append(w.Bullets, Bullet{X: x, Y: y, Rotation: rotation})
}

// MovePlayer integrates the player's movement intent for one tick
func (w *World) MovePlayer() {
	w.Player.Move(w.Width, w.Height)
}

// MoveBullets advances every bullet, calls visit for each one at its new
// position and keeps only the bullets still inside the screen.
func (w *World) MoveBullets(visit func(b *Bullet)) {
	kept := w.Bullets[:0]
	for i := range w.Bullets {
		b := w.Bullets[i]
		b.Advance()
		if visit != nil {
			visit(&b)
		}
		if b.InBounds(w.Width, w.Height) {
			kept = append(kept, b)
		}
	}
	w.Bullets = kept
}

// MoveEnemies homes every enemy toward (tx, ty) and calls visit for each one
func (w *World) MoveEnemies(tx, ty float64, visit func(e *Enemy)) {
	for i := range w.Enemies {
		e := &w.Enemies[i]
		e.MoveToward(tx, ty)
		if visit != nil {
			visit(e)
		}
	}
}

// MaybeSpawnEnemy spawns one enemy with probability EnemySpawnChance and
// reports whether it did.
func (w *World) MaybeSpawnEnemy() bool {
	if w.rng.Float64() >= EnemySpawnChance {
		return false
	}
	edge := Edge(w.rng.Intn(4))
	x, y := w.spawnPoint(edge, w.rng.Float64())
	w.Enemies = append(w.Enemies, NewEnemy(x, y))
	return true
}

// spawnPoint returns the spawn position just outside edge. t in [0, 1) picks
// the coordinate along the edge.
func (w *World) spawnPoint(edge Edge, t float64) (float64, float64) {
	switch edge {
	case EdgeTop:
		return t * w.Width, -SpawnOffset
	case EdgeRight:
		return w.Width + SpawnOffset, t * w.Height
	case EdgeBottom:
		return t * w.Width, w.Height + SpawnOffset
	default:
		return -SpawnOffset, t * w.Height
	}
}

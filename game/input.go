package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Direction is one of the four movement intents
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// keyDirections maps browser-style key identifiers to movement intents
var keyDirections = map[string]Direction{
	"w":          DirUp,
	"ArrowUp":    DirUp,
	"s":          DirDown,
	"ArrowDown":  DirDown,
	"a":          DirLeft,
	"ArrowLeft":  DirLeft,
	"d":          DirRight,
	"ArrowRight": DirRight,
}

// ebitenKeyNames maps the ebiten keys we listen to onto key identifiers
var ebitenKeyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyS:          "s",
	ebiten.KeyA:          "a",
	ebiten.KeyD:          "d",
	ebiten.KeyArrowUp:    "ArrowUp",
	ebiten.KeyArrowDown:  "ArrowDown",
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
}

// InputAdapter translates key and pointer events into player intent. Events
// are dropped unless the screen is in the playing state.
type InputAdapter struct {
	world  *World
	screen *Screen
}

// NewInputAdapter creates an adapter writing into world, gated by screen
func NewInputAdapter(world *World, screen *Screen) *InputAdapter {
	return &InputAdapter{world: world, screen: screen}
}

func (in *InputAdapter) active() bool {
	return in.world != nil && in.screen.State() == ScreenPlaying
}

func (in *InputAdapter) setDirection(key string, pressed bool) {
	dir, ok := keyDirections[key]
	if !ok {
		return
	}
	m := &in.world.Player.Movement
	switch dir {
	case DirUp:
		m.Up = pressed
	case DirDown:
		m.Down = pressed
	case DirLeft:
		m.Left = pressed
	case DirRight:
		m.Right = pressed
	}
}

// KeyDown sets the movement flag mapped to key
func (in *InputAdapter) KeyDown(key string) {
	if !in.active() {
		return
	}
	in.setDirection(key, true)
}

// KeyUp clears the movement flag mapped to key. Unmapped keys are ignored.
func (in *InputAdapter) KeyUp(key string) {
	if !in.active() {
		return
	}
	in.setDirection(key, false)
}

// PointerMove aims the player at (x, y), given in surface coordinates
func (in *InputAdapter) PointerMove(x, y float64) {
	if !in.active() {
		return
	}
	p := &in.world.Player
	p.Rotation = math.Atan2(y-p.Y, x-p.X)
}

// PointerDown marks the player as shooting
func (in *InputAdapter) PointerDown() {
	if !in.active() {
		return
	}
	in.world.Player.Shooting = true
}

// PointerUp marks the player as no longer shooting
func (in *InputAdapter) PointerUp() {
	if !in.active() {
		return
	}
	in.world.Player.Shooting = false
}

// InputPoller reads ebiten's polled input once per update and replays it as
// discrete events on an InputAdapter.
type InputPoller struct {
	keys         []ebiten.Key
	lastX, lastY int
	cursorSeen   bool
}

// NewInputPoller creates a poller
func NewInputPoller() *InputPoller {
	return &InputPoller{keys: make([]ebiten.Key, 0, 10)}
}

// Poll dispatches this frame's key edges, cursor movement and mouse button
// edges to in.
func (p *InputPoller) Poll(in *InputAdapter) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if name, ok := ebitenKeyNames[k]; ok {
			in.KeyDown(name)
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if name, ok := ebitenKeyNames[k]; ok {
			in.KeyUp(name)
		}
	}

	x, y := ebiten.CursorPosition()
	if !p.cursorSeen || x != p.lastX || y != p.lastY {
		p.cursorSeen = true
		p.lastX, p.lastY = x, y
		in.PointerMove(float64(x), float64(y))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.PointerDown()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.PointerUp()
	}
}

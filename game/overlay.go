package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD and overlay layout
const (
	hudMarginX      = 16
	hudMarginY      = 16
	hudLineHeight   = 18
	titleScale      = 3.0
	overlayTextSize = 13
)

var (
	colorOverlayBackdrop = color.NRGBA{R: 0, G: 0, B: 0, A: 128}
	colorOverlayText     = color.White
	colorOverlayHint     = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// Overlay draws the loading text, menu, HUD and game-over summary. It only
// reads the player; lifecycle actions are handled by the Game.
type Overlay struct {
	face text.Face
}

// NewOverlay creates an overlay using the built-in bitmap font
func NewOverlay() *Overlay {
	return &Overlay{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw draws the chrome for state on top of screen
func (o *Overlay) Draw(screen *ebiten.Image, state ScreenState, player *Player) {
	switch state {
	case ScreenLoading:
		o.drawBackdrop(screen)
		o.drawCentered(screen, "Loading...", 0, titleScale, colorOverlayText)
	case ScreenMenu:
		o.drawBackdrop(screen)
		o.drawCentered(screen, "Battle Royale", -40, titleScale, colorOverlayText)
		o.drawCentered(screen, "Press Enter or click to start", 10, 1, colorOverlayText)
		o.drawCentered(screen, "Move: WASD or Arrow Keys   Aim: Mouse", 40, 1, colorOverlayHint)
	case ScreenPlaying:
		for i, line := range hudLines(player) {
			o.drawText(screen, line, hudMarginX, float64(hudMarginY+i*hudLineHeight), 1, text.AlignStart, colorOverlayText)
		}
	case ScreenGameOver:
		o.drawBackdrop(screen)
		o.drawCentered(screen, "Game Over", -40, titleScale, colorOverlayText)
		o.drawCentered(screen, fmt.Sprintf("Final score: %d", player.Score), 10, 1, colorOverlayText)
		o.drawCentered(screen, "Press R to play again", 40, 1, colorOverlayHint)
	}
}

// hudLines returns the HUD text for the player's stats
func hudLines(p *Player) []string {
	return []string{
		fmt.Sprintf("Health: %.0f", p.Health),
		fmt.Sprintf("Armor: %.0f", p.Armor),
		fmt.Sprintf("Score: %d", p.Score),
		fmt.Sprintf("Ammo: %d", p.Ammo),
	}
}

func (o *Overlay) drawBackdrop(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), colorOverlayBackdrop, false)
}

// drawCentered draws s horizontally centered, offsetY from the middle
func (o *Overlay) drawCentered(screen *ebiten.Image, s string, offsetY, scale float64, clr color.Color) {
	b := screen.Bounds()
	x := float64(b.Dx()) / 2
	y := float64(b.Dy())/2 + offsetY - overlayTextSize*scale/2
	o.drawText(screen, s, x, y, scale, text.AlignCenter, clr)
}

func (o *Overlay) drawText(screen *ebiten.Image, s string, x, y, scale float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, o.face, op)
}

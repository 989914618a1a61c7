package game

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// drawCall is one recorded canvas operation. x and y are surface
// coordinates after the current transform was applied.
type drawCall struct {
	op    string
	x, y  float64
	w, h  float64
	angle float64
	alpha float64
	color color.Color
}

// recordingCanvas records every drawing call instead of painting
type recordingCanvas struct {
	stateStack
	width, height int
	calls         []drawCall
	maxDepth      int
}

func newRecordingCanvas(width, height int) *recordingCanvas {
	return &recordingCanvas{stateStack: newStateStack(), width: width, height: height}
}

func (c *recordingCanvas) record(op string, x, y, w, h float64, clr color.Color) {
	sx, sy := c.current.xf.apply(x, y)
	c.calls = append(c.calls, drawCall{
		op:    op,
		x:     sx,
		y:     sy,
		w:     w,
		h:     h,
		angle: c.current.xf.angle,
		alpha: c.current.alpha,
		color: clr,
	})
}

func (c *recordingCanvas) Size() (int, int) { return c.width, c.height }

func (c *recordingCanvas) Clear() { c.record("clear", 0, 0, 0, 0, nil) }

func (c *recordingCanvas) FillPattern(img image.Image) {
	c.record("pattern", 0, 0, float64(img.Bounds().Dx()), float64(img.Bounds().Dy()), nil)
}

func (c *recordingCanvas) FillCircle(cx, cy, radius float64, clr color.Color) {
	c.record("circle", cx, cy, radius, radius, clr)
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	c.record("rect", x, y, w, h, clr)
}

func (c *recordingCanvas) FillPolygon(points []Point, clr color.Color) {
	c.record("polygon", points[0].X, points[0].Y, float64(len(points)), 0, clr)
}

func (c *recordingCanvas) DrawImage(img image.Image, x, y, w, h float64) {
	c.record("image", x, y, w, h, nil)
}

func (c *recordingCanvas) Save() {
	c.stateStack.Save()
	if c.Depth() > c.maxDepth {
		c.maxDepth = c.Depth()
	}
}

// ops returns the recorded operation names in order
func (c *recordingCanvas) ops() []string {
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.op
	}
	return out
}

func (c *recordingCanvas) reset() {
	c.calls = c.calls[:0]
}

func testAssets() *Assets {
	return &Assets{
		Background: image.NewRGBA(image.Rect(0, 0, 64, 64)),
		Bullet:     image.NewRGBA(image.Rect(0, 0, 8, 8)),
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ScreenWidth = 800
	cfg.ScreenHeight = 600
	cfg.Seed = 1
	return cfg
}

// newLoadedGame returns a game on a recording canvas with the embedded
// sprites loaded, sitting in the menu.
func newLoadedGame(t *testing.T) (*Game, *recordingCanvas) {
	t.Helper()
	cfg := testConfig()
	canvas := newRecordingCanvas(cfg.ScreenWidth, cfg.ScreenHeight)
	g := NewGameWithCanvas(cfg, zerolog.Nop(), canvas, AssetFS(""))
	t.Cleanup(g.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.AwaitAssets(ctx); err != nil {
		t.Fatalf("AwaitAssets: %v", err)
	}
	if g.State() != ScreenMenu {
		t.Fatalf("state after load = %s, want menu", g.State())
	}
	return g, canvas
}

// newPlayingGame returns a loaded game that has been started
func newPlayingGame(t *testing.T) (*Game, *recordingCanvas) {
	t.Helper()
	g, canvas := newLoadedGame(t)
	g.Start()
	if g.State() != ScreenPlaying {
		t.Fatalf("state after Start = %s, want playing", g.State())
	}
	return g, canvas
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

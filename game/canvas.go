package game

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a 2D point in canvas coordinates
type Point struct {
	X, Y float64
}

// Canvas is a 2D drawing surface with a save/restore transform stack.
// Shape coordinates are in the current transform's local space.
type Canvas interface {
	// Size returns the surface size in pixels
	Size() (width, height int)

	// Clear erases the whole surface
	Clear()

	// FillPattern tiles img over the whole surface
	FillPattern(img image.Image)

	FillCircle(cx, cy, radius float64, clr color.Color)
	FillRect(x, y, width, height float64, clr color.Color)
	FillPolygon(points []Point, clr color.Color)

	// DrawImage draws img scaled into the (x, y, width, height) box
	DrawImage(img image.Image, x, y, width, height float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)

	// SetAlpha sets the global alpha applied to subsequent fills
	SetAlpha(alpha float64)
}

// transform is a rigid 2D transform: rotate by angle then translate by (tx, ty)
type transform struct {
	tx, ty float64
	angle  float64
}

// apply maps a local point into surface coordinates
func (t transform) apply(x, y float64) (float64, float64) {
	sin, cos := math.Sincos(t.angle)
	return t.tx + x*cos - y*sin, t.ty + x*sin + y*cos
}

// translate returns t with a translation applied in local space
func (t transform) translate(x, y float64) transform {
	t.tx, t.ty = t.apply(x, y)
	return t
}

// rotate returns t with a rotation applied in local space
func (t transform) rotate(theta float64) transform {
	t.angle += theta
	return t
}

// canvasState is one entry of the save/restore stack
type canvasState struct {
	xf    transform
	alpha float64
}

// stateStack implements the Save/Restore/Translate/Rotate/SetAlpha part of
// Canvas for concrete surfaces.
type stateStack struct {
	current canvasState
	saved   []canvasState
}

func newStateStack() stateStack {
	return stateStack{current: canvasState{alpha: 1}}
}

func (s *stateStack) Save() {
	s.saved = append(s.saved, s.current)
}

func (s *stateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *stateStack) Translate(x, y float64) {
	s.current.xf = s.current.xf.translate(x, y)
}

func (s *stateStack) Rotate(theta float64) {
	s.current.xf = s.current.xf.rotate(theta)
}

func (s *stateStack) SetAlpha(alpha float64) {
	s.current.alpha = clamp(alpha, 0, 1)
}

// Depth returns the number of saved states
func (s *stateStack) Depth() int {
	return len(s.saved)
}

// applyAlpha scales clr by alpha
func applyAlpha(clr color.Color, alpha float64) color.NRGBA {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}

// mustHex parses a #rrggbb color literal
func mustHex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NullCanvas is a Canvas that discards all drawing. It keeps the transform
// stack so save/restore pairing behaves like a real surface.
type NullCanvas struct {
	stateStack
	width, height int
}

// NewNullCanvas creates a discarding canvas of the given size
func NewNullCanvas(width, height int) *NullCanvas {
	return &NullCanvas{stateStack: newStateStack(), width: width, height: height}
}

func (c *NullCanvas) Size() (int, int) { return c.width, c.height }

func (c *NullCanvas) Clear() {}
func (c *NullCanvas) FillPattern(image.Image) {}
func (c *NullCanvas) FillCircle(_, _, _ float64, _ color.Color) {}
func (c *NullCanvas) FillRect(_, _, _, _ float64, _ color.Color) {}
func (c *NullCanvas) FillPolygon([]Point, color.Color) {}
func (c *NullCanvas) DrawImage(_ image.Image, _, _, _, _ float64) {}

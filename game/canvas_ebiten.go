package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas is a Canvas backed by an offscreen ebiten image
type EbitenCanvas struct {
	stateStack

	dst *ebiten.Image

	// Source images converted to GPU images, keyed by the decoded image
	images map[image.Image]*ebiten.Image

	// 1x1 white source for filled polygons
	white *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenCanvas creates an offscreen drawing surface of the given size
func NewEbitenCanvas(width, height int) *EbitenCanvas {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &EbitenCanvas{
		stateStack: newStateStack(),
		dst:        ebiten.NewImage(width, height),
		images:     make(map[image.Image]*ebiten.Image),
		white:      white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Image returns the surface for blitting onto the screen
func (c *EbitenCanvas) Image() *ebiten.Image {
	return c.dst
}

func (c *EbitenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *EbitenCanvas) Clear() {
	c.dst.Clear()
}

func (c *EbitenCanvas) FillPattern(img image.Image) {
	tile := c.ebitenImage(img)
	tw, th := tile.Bounds().Dx(), tile.Bounds().Dy()
	if tw == 0 || th == 0 {
		return
	}
	w, h := c.Size()
	op := &ebiten.DrawImageOptions{}
	for y := 0; y < h; y += th {
		for x := 0; x < w; x += tw {
			op.GeoM.Reset()
			op.GeoM.Translate(float64(x), float64(y))
			c.dst.DrawImage(tile, op)
		}
	}
}

func (c *EbitenCanvas) FillCircle(cx, cy, radius float64, clr color.Color) {
	x, y := c.current.xf.apply(cx, cy)
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(radius), applyAlpha(clr, c.current.alpha), true)
}

func (c *EbitenCanvas) FillRect(x, y, width, height float64, clr color.Color) {
	c.FillPolygon([]Point{
		{x, y},
		{x + width, y},
		{x + width, y + height},
		{x, y + height},
	}, clr)
}

// FillPolygon fills a convex polygon using a triangle fan
func (c *EbitenCanvas) FillPolygon(points []Point, clr color.Color) {
	if len(points) < 3 {
		return
	}
	rgba := applyAlpha(clr, c.current.alpha)
	r := float32(rgba.R) / 0xff
	g := float32(rgba.G) / 0xff
	b := float32(rgba.B) / 0xff
	a := float32(rgba.A) / 0xff

	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]
	for _, p := range points {
		x, y := c.current.xf.apply(p.X, p.Y)
		c.vertices = append(c.vertices, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for i := 1; i < len(points)-1; i++ {
		c.indices = append(c.indices, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.dst.DrawTriangles(c.vertices, c.indices, c.white, op)
}

func (c *EbitenCanvas) DrawImage(img image.Image, x, y, width, height float64) {
	src := c.ebitenImage(img)
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}
	xf := c.current.xf
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(width/float64(sw), height/float64(sh))
	op.GeoM.Translate(x, y)
	op.GeoM.Rotate(xf.angle)
	op.GeoM.Translate(xf.tx, xf.ty)
	op.ColorScale.ScaleAlpha(float32(c.current.alpha))
	c.dst.DrawImage(src, op)
}

// ebitenImage converts a decoded image once and reuses it afterwards
func (c *EbitenCanvas) ebitenImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := c.images[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	c.images[img] = e
	return e
}

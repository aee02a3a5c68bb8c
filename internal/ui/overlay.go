//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"symbol-code/internal/core"
	"symbol-code/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws token markers, cell grid lines and input highlights on top
// of the painted grid.
type Overlay struct {
	scale     int
	showGrid  bool
	showArrow bool
	pixel     *ebiten.Image
}

// NewOverlay constructs an overlay for cells of scale pixels.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale, showGrid: true, showArrow: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles grid lines (G) and token arrows (A).
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		o.showArrow = !o.showArrow
	}
}

// Draw renders the overlay for a grid of the given size.
func (o *Overlay) Draw(screen *ebiten.Image, size core.Size, tokens []engine.Token, pending []engine.PendingInput) {
	if size.Rows <= 0 || size.Columns <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showGrid {
		o.drawGrid(screen, size, scale)
	}
	for _, p := range pending {
		o.outline(screen, p.Token.Position, scale, color.RGBA{R: 250, G: 220, B: 60, A: 255})
	}
	if o.showArrow {
		for _, t := range tokens {
			o.drawArrow(screen, t, scale)
		}
	}
}

func (o *Overlay) drawGrid(screen *ebiten.Image, size core.Size, scale int) {
	col := color.RGBA{R: 44, G: 44, B: 52, A: 255}
	w := float64(size.Columns * scale)
	h := float64(size.Rows * scale)
	for r := 1; r < size.Rows; r++ {
		y := float64(r * scale)
		o.drawLine(screen, 0, y, w, y, 1, col)
	}
	for c := 1; c < size.Columns; c++ {
		x := float64(c * scale)
		o.drawLine(screen, x, 0, x, h, 1, col)
	}
}

func (o *Overlay) outline(screen *ebiten.Image, p core.Position, scale int, col color.RGBA) {
	x0 := float64(p.Column * scale)
	y0 := float64(p.Row * scale)
	x1 := x0 + float64(scale)
	y1 := y0 + float64(scale)
	o.drawLine(screen, x0, y0, x1, y0, 2, col)
	o.drawLine(screen, x0, y1, x1, y1, 2, col)
	o.drawLine(screen, x0, y0, x0, y1, 2, col)
	o.drawLine(screen, x1, y0, x1, y1, 2, col)
}

// drawArrow points from the token's cell center toward its heading.
func (o *Overlay) drawArrow(screen *ebiten.Image, t engine.Token, scale int) {
	const headAngle = math.Pi / 6

	col := color.RGBA{R: 250, G: 250, B: 255, A: 255}
	if t.Representation == engine.Character {
		col = color.RGBA{R: 255, G: 200, B: 120, A: 255}
	}
	half := float64(scale) * 0.5
	cx := float64(t.Position.Column*scale) + half
	cy := float64(t.Position.Row*scale) + half
	dr, dc := t.Direction.Delta()
	tipX := cx + float64(dc)*half*0.9
	tipY := cy + float64(dr)*half*0.9
	baseX := cx + float64(dc)*half*0.5
	baseY := cy + float64(dr)*half*0.5
	o.drawLine(screen, baseX, baseY, tipX, tipY, 2, col)

	angle := math.Atan2(tipY-baseY, tipX-baseX)
	head := half * 0.25
	for _, side := range []float64{-1, 1} {
		a := angle + math.Pi + side*headAngle
		o.drawLine(screen, tipX, tipY, tipX+math.Cos(a)*head, tipY+math.Sin(a)*head, 2, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

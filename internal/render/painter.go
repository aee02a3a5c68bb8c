//go:build ebiten

package render

import (
	"image/color"

	"symbol-code/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// GridPainter rasterizes a symbol grid into a single RGBA image, one pixel
// per cell, and scales it onto the screen with cell captions on top.
type GridPainter struct {
	size core.Size
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of the given size.
func NewGridPainter(size core.Size) *GridPainter {
	gp := &GridPainter{}
	gp.resize(size)
	return gp
}

func (gp *GridPainter) resize(size core.Size) {
	gp.size = size
	gp.buf = make([]byte, 4*size.Rows*size.Columns)
	gp.img = ebiten.NewImage(size.Columns, size.Rows)
}

// Blit uploads g into the painter image and draws it at the given scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.Grid, scale int) {
	if g.Size() != gp.size {
		gp.resize(g.Size())
	}
	fillSymbolRGBA(gp.buf, g)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)

	face := basicfont.Face7x13
	for _, p := range g.Positions() {
		if !gp.size.Contains(p) {
			continue
		}
		s := g.Get(p)
		label := Label(s)
		if label == "" {
			continue
		}
		bounds := text.BoundString(face, label)
		x := p.Column*scale + (scale-bounds.Dx())/2
		y := p.Row*scale + (scale+bounds.Dy())/2
		text.Draw(dst, label, face, x, y, labelColor(s))
	}
}

// Size returns the grid dimensions the painter is sized for.
func (gp *GridPainter) Size() core.Size { return gp.size }

func labelColor(s core.Symbol) color.Color {
	if CategoryOf(s.Type) == CategoryVariable {
		return color.Black
	}
	return color.White
}

//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status and console panel to the right of the grid view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Draw paints the panel at offsetX with the given height. flash tints the
// panel header while a sound cell is ringing.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, s Status, flash bool) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	if flash {
		h.fillRect(0, 0, h.width, panelPadding+headerBaseline+4, color.RGBA{R: 60, G: 110, B: 60, A: 255})
	}

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Symbol Code", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	y += infoSpacing
	for _, line := range StatusLines(s) {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		y += lineHeight
	}

	y += lineHeight / 2
	h.fillRect(panelPadding, y-lineHeight+4, h.width-2*panelPadding, 1, color.RGBA{R: 54, G: 56, B: 64, A: 255})
	cols := (h.width - 2*panelPadding) / glyphWidth
	rows := (height - y - panelPadding) / lineHeight
	for _, line := range WrapConsole(s.Console, cols, rows) {
		y += lineHeight
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 160, G: 220, B: 160, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) fillRect(x, y, w, ht int, c color.RGBA) {
	if h.pixel == nil || w <= 0 || ht <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(ht))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

const (
	panelPadding   = 12
	lineHeight     = 16
	glyphWidth     = 7
	headerBaseline = 18
	infoSpacing    = 24
)

package render

import (
	"image/color"
	"strconv"

	"symbol-code/internal/core"
)

// Category groups symbol types that share a color.
type Category uint8

const (
	CategoryEmpty Category = iota
	CategoryVariable
	CategoryConversion
	CategoryMovement
	CategoryMath
	CategoryBlocking
	CategoryConstant
	CategoryIO
)

// Palette maps each category to its fill color.
var Palette = [...]color.RGBA{
	CategoryEmpty:      {R: 28, G: 28, B: 34, A: 255},
	CategoryVariable:   {R: 235, G: 235, B: 240, A: 255},
	CategoryConversion: {R: 150, G: 90, B: 200, A: 255},
	CategoryMovement:   {R: 60, G: 190, B: 210, A: 255},
	CategoryMath:       {R: 235, G: 145, B: 50, A: 255},
	CategoryBlocking:   {R: 210, G: 60, B: 60, A: 255},
	CategoryConstant:   {R: 130, G: 130, B: 140, A: 255},
	CategoryIO:         {R: 80, G: 180, B: 90, A: 255},
}

// CategoryOf returns the color category of t.
func CategoryOf(t core.SymbolType) Category {
	switch t {
	case core.SymbolVarInt, core.SymbolVarCharacter:
		return CategoryVariable
	case core.SymbolConvertInt, core.SymbolConvertCharacter:
		return CategoryConversion
	case core.SymbolUp, core.SymbolDown, core.SymbolLeft, core.SymbolRight, core.SymbolDuplicate:
		return CategoryMovement
	case core.SymbolAdd, core.SymbolSubtract, core.SymbolMultiply, core.SymbolDivide,
		core.SymbolModulo, core.SymbolEqual:
		return CategoryMath
	case core.SymbolNoEntry, core.SymbolTrash, core.SymbolStop:
		return CategoryBlocking
	case core.SymbolConstInt, core.SymbolConstCharacter, core.SymbolDie:
		return CategoryConstant
	case core.SymbolInput, core.SymbolPrint, core.SymbolSound, core.SymbolToggle:
		return CategoryIO
	}
	return CategoryEmpty
}

// ColorFor returns the fill color of a cell.
func ColorFor(s core.Symbol) color.RGBA {
	return Palette[CategoryOf(s.Type)]
}

var labels = map[core.SymbolType]string{
	core.SymbolConvertInt:       "#",
	core.SymbolConvertCharacter: "Aa",
	core.SymbolUp:               "^",
	core.SymbolDown:             "v",
	core.SymbolLeft:             "<",
	core.SymbolRight:            ">",
	core.SymbolDuplicate:        "<>",
	core.SymbolToggle:           "~",
	core.SymbolNoEntryDisabled:  "o",
	core.SymbolNoEntry:          "X",
	core.SymbolTrash:            "del",
	core.SymbolAdd:              "+",
	core.SymbolSubtract:         "-",
	core.SymbolMultiply:         "*",
	core.SymbolDivide:           "/",
	core.SymbolModulo:           "%",
	core.SymbolEqual:            "=",
	core.SymbolDie:              "?",
	core.SymbolInput:            "in",
	core.SymbolPrint:            "out",
	core.SymbolSound:            "snd",
	core.SymbolStop:             "stop",
}

// Label returns the short caption drawn on a cell. Valued cells show
// their value, as a glyph for character cells.
func Label(s core.Symbol) string {
	switch s.Type {
	case core.SymbolVarInt, core.SymbolConstInt:
		return strconv.Itoa(s.Value)
	case core.SymbolVarCharacter, core.SymbolConstCharacter:
		if core.IsIcon(s.Value) {
			return core.CharacterText(s.Value)
		}
		switch c := core.Character(s.Value); c {
		case " ":
			return "' '"
		case "\n":
			return "\\n"
		default:
			return c
		}
	case core.SymbolDie:
		if s.HasValue {
			return strconv.Itoa(s.Value)
		}
	}
	return labels[s.Type]
}

// fillSymbolRGBA writes one pixel per cell of g into buf in row-major order.
// buf must hold 4*rows*columns bytes.
func fillSymbolRGBA(buf []byte, g *core.Grid) {
	size := g.Size()
	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Columns; c++ {
			col := ColorFor(g.Get(core.Position{Row: r, Column: c}))
			base := (r*size.Columns + c) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

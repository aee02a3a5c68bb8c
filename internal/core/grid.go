package core

import "sort"

// Grid is a sparse program layout. Absent cells read as SymbolEmpty. The
// size is independent of the stored cells so programs can be loaded before
// their dimensions are known.
type Grid struct {
	size  Size
	cells map[Position]Symbol
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(size Size) *Grid {
	return &Grid{size: size, cells: make(map[Position]Symbol)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return g.size }

// SetSize changes the grid dimensions without touching stored cells.
func (g *Grid) SetSize(size Size) { g.size = size }

// Get returns the symbol at p, or the empty symbol when nothing is stored.
func (g *Grid) Get(p Position) Symbol {
	if s, ok := g.cells[p]; ok {
		return s
	}
	return Symbol{}
}

// Set stores s at p. Storing an empty symbol removes the cell.
func (g *Grid) Set(p Position, s Symbol) {
	if s.IsEmpty() {
		delete(g.cells, p)
		return
	}
	g.cells[p] = s
}

// Len returns the number of non-empty cells.
func (g *Grid) Len() int { return len(g.cells) }

// Positions returns the stored positions in row-major order.
func (g *Grid) Positions() []Position {
	out := make([]Position, 0, len(g.cells))
	for p := range g.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Cells returns a copy of the stored cell mapping.
func (g *Grid) Cells() map[Position]Symbol {
	out := make(map[Position]Symbol, len(g.cells))
	for p, s := range g.cells {
		out[p] = s
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{size: g.size, cells: g.Cells()}
}

package engine

import "symbol-code/internal/core"

// resolver memoizes cell values and operand lists for a single step. A new
// resolver is built for every step so dice re-roll between steps but read
// the same within one.
type resolver struct {
	grid     *core.Grid
	tokens   *arena
	dice     core.Dice
	values   map[core.Position]resolved
	operands map[core.Position][]int
}

type resolved struct {
	value int
	ok    bool
}

func newResolver(grid *core.Grid, tokens *arena, dice core.Dice) *resolver {
	return &resolver{
		grid:     grid,
		tokens:   tokens,
		dice:     dice,
		values:   make(map[core.Position]resolved),
		operands: make(map[core.Position][]int),
	}
}

// number returns the value readable at p. A die is rolled on first read
// and the roll is written into the runtime grid.
func (r *resolver) number(p core.Position) (int, bool) {
	if v, ok := r.values[p]; ok {
		return v.value, v.ok
	}
	cell := r.grid.Get(p)
	if cell.Type == core.SymbolDie {
		cell.Value = r.dice.Roll()
		cell.HasValue = true
		r.grid.Set(p, cell)
	}
	v, ok := cell.Number()
	r.values[p] = resolved{value: v, ok: ok}
	return v, ok
}

// operandsFor returns the arithmetic operands seen by t: numeric neighbor
// cells plus the values of every token sharing its cell, minus one
// instance of t's own value. The full multiset is cached per position.
func (r *resolver) operandsFor(t *Token) []int {
	all, ok := r.operands[t.Position]
	if !ok {
		for _, n := range r.grid.Size().Neighbors(t.Position) {
			if v, ok := r.number(n.Position); ok {
				all = append(all, v)
			}
		}
		for i := 0; i < r.tokens.len(); i++ {
			other := r.tokens.at(i)
			if other != nil && other.Position == t.Position {
				all = append(all, other.Value)
			}
		}
		r.operands[t.Position] = all
	}
	out := make([]int, 0, len(all))
	skipped := false
	for _, v := range all {
		if !skipped && v == t.Value {
			skipped = true
			continue
		}
		out = append(out, v)
	}
	return out
}

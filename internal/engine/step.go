package engine

import "symbol-code/internal/core"

// advance runs Move, Act, Combine and input collection in order. Each phase
// walks the token slots from last to first; removals tombstone a slot and
// spawned tokens are appended behind the walk.
func (e *Engine) advance() {
	e.step++
	if !e.move() {
		return
	}
	if !e.act(newResolver(e.runtime, &e.tokens, e.opts.Dice)) {
		return
	}
	e.combine()
	e.tokens.compact()
	e.collectInput()
}

// move advances every token one cell. Tokens leaving the grid are removed;
// a noEntry cell holds a token in place.
func (e *Engine) move() bool {
	size := e.runtime.Size()
	for i := e.tokens.len() - 1; i >= 0; i-- {
		t := e.tokens.at(i)
		if t == nil {
			continue
		}
		dest := t.Position.Step(t.Direction)
		if !size.Contains(dest) {
			e.tokens.remove(i)
			if e.tokens.empty() {
				e.halt(StopExhausted)
				return false
			}
			continue
		}
		if e.runtime.Get(dest).Type != core.SymbolNoEntry {
			t.Position = dest
		}
	}
	return true
}

// act applies the effect of the cell under each token. Tokens spawned here
// are not acted on until the next step.
func (e *Engine) act(r *resolver) bool {
	for i := e.tokens.len() - 1; i >= 0; i-- {
		t := e.tokens.at(i)
		if t == nil {
			continue
		}
		switch cell := e.runtime.Get(t.Position); cell.Type {
		case core.SymbolConvertInt:
			t.Representation = Int
		case core.SymbolConvertCharacter:
			t.Representation = Character
		case core.SymbolUp:
			t.Direction = core.Up
		case core.SymbolDown:
			t.Direction = core.Down
		case core.SymbolLeft:
			t.Direction = core.Left
		case core.SymbolRight:
			t.Direction = core.Right
		case core.SymbolDuplicate:
			e.duplicate(t)
		case core.SymbolTrash:
			e.tokens.remove(i)
			if e.tokens.empty() {
				e.halt(StopExhausted)
				return false
			}
		case core.SymbolAdd, core.SymbolSubtract, core.SymbolMultiply, core.SymbolDivide, core.SymbolModulo:
			for _, v := range r.operandsFor(t) {
				t.SetValue(apply(cell.Type, t.Value, v))
			}
		case core.SymbolEqual:
			e.equal(t, r)
		case core.SymbolPrint:
			e.print(t)
		case core.SymbolSound:
			e.opts.Observer.Sound()
		case core.SymbolToggle:
			e.toggle(t)
		case core.SymbolStop:
			e.halt(StopCell)
			return false
		}
	}
	return true
}

func apply(op core.SymbolType, acc, v int) int {
	switch op {
	case core.SymbolAdd:
		return acc + v
	case core.SymbolSubtract:
		return acc - v
	case core.SymbolMultiply:
		return acc * v
	case core.SymbolDivide:
		if v == 0 {
			return acc
		}
		return acc / v
	case core.SymbolModulo:
		if v == 0 {
			return acc
		}
		return acc % v
	}
	return acc
}

// duplicate turns t perpendicular and spawns a copy heading the other way.
func (e *Engine) duplicate(t *Token) {
	spawn := *t
	if t.Direction.Horizontal() {
		t.Direction = core.Up
		spawn.Direction = core.Down
	} else {
		t.Direction = core.Left
		spawn.Direction = core.Right
	}
	e.tokens.add(spawn)
}

// equal steers t toward the first neighbor (up, down, left, right) whose
// value matches. Without a match, t goes right if every token on its cell
// holds the same value, otherwise it is zeroed and sent left.
func (e *Engine) equal(t *Token, r *resolver) {
	for _, n := range e.runtime.Size().Neighbors(t.Position) {
		if v, ok := r.number(n.Position); ok && v == t.Value {
			t.Direction = n.Direction
			// A match ends this token's scan only; the rest of Act still runs.
			return
		}
	}
	for i := 0; i < e.tokens.len(); i++ {
		other := e.tokens.at(i)
		if other == nil || other == t || other.Position != t.Position {
			continue
		}
		if other.Value != t.Value {
			t.SetValue(0)
			t.Direction = core.Left
			return
		}
	}
	t.Direction = core.Right
}

func (e *Engine) print(t *Token) {
	segs := []Segment{t.Segment()}
	if e.opts.AlwaysNewline {
		segs = append(segs, Segment{Text: "\n"})
	}
	secret := e.console.write(segs, t.PlainText())
	e.opts.Observer.Printed(segs)
	if secret {
		e.log.Debug("secret trigger printed", "step", e.step)
		e.opts.Observer.Secret()
	}
}

// toggle flips switchable neighbors of t and launches a token from every
// neighboring constant, heading away from the toggle.
func (e *Engine) toggle(t *Token) {
	for _, n := range e.runtime.Size().Neighbors(t.Position) {
		cell := e.runtime.Get(n.Position)
		switch cell.Type {
		case core.SymbolNoEntry:
			e.runtime.Set(n.Position, core.Plain(core.SymbolNoEntryDisabled))
		case core.SymbolNoEntryDisabled:
			e.runtime.Set(n.Position, core.Plain(core.SymbolNoEntry))
		case core.SymbolUp:
			e.runtime.Set(n.Position, core.Plain(core.SymbolDown))
		case core.SymbolDown:
			e.runtime.Set(n.Position, core.Plain(core.SymbolUp))
		case core.SymbolLeft:
			e.runtime.Set(n.Position, core.Plain(core.SymbolRight))
		case core.SymbolRight:
			e.runtime.Set(n.Position, core.Plain(core.SymbolLeft))
		case core.SymbolConstInt, core.SymbolConstCharacter:
			rep := Int
			if cell.Type == core.SymbolConstCharacter {
				rep = Character
			}
			e.tokens.add(Token{
				Value:          cell.Value,
				Representation: rep,
				Position:       n.Position,
				Direction:      n.Direction,
			})
		}
	}
}

// combine merges tokens sharing both cell and direction. On a redirecting
// cell the removed token's value is added to its partner; elsewhere the
// removed token is simply dropped.
func (e *Engine) combine() {
	n := e.tokens.len()
	for i := n - 1; i >= 0; i-- {
		t := e.tokens.at(i)
		if t == nil {
			continue
		}
		for j := 0; j < n; j++ {
			other := e.tokens.at(j)
			if j == i || other == nil {
				continue
			}
			if other.Position != t.Position || other.Direction != t.Direction {
				continue
			}
			if e.runtime.Get(t.Position).Type.Redirects() {
				other.SetValue(other.Value + t.Value)
			}
			e.tokens.remove(i)
			break
		}
	}
}

// collectInput queues every token standing on an input cell.
func (e *Engine) collectInput() {
	e.pending = e.pending[:0]
	for i := 0; i < e.tokens.len(); i++ {
		t := e.tokens.at(i)
		if e.runtime.Get(t.Position).Type == core.SymbolInput {
			e.pending = append(e.pending, i)
		}
	}
	if len(e.pending) > 0 {
		e.log.Debug("awaiting input", "tokens", len(e.pending), "step", e.step)
		e.opts.Observer.InputRequested(e.Pending())
	}
}

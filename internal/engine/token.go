package engine

import (
	"strconv"

	"symbol-code/internal/core"
)

// Representation selects how a token's value is printed.
type Representation uint8

const (
	Int Representation = iota
	Character
)

func (r Representation) String() string {
	if r == Character {
		return "character"
	}
	return "int"
}

// Token is a moving value carrier. Value is kept inside the value domain by
// SetValue; direct writes must go through it.
type Token struct {
	Value          int
	Representation Representation
	Position       core.Position
	Direction      core.Direction
}

// SetValue stores v clamped to [core.MinValue, core.MaxValue].
func (t *Token) SetValue(v int) { t.Value = core.ClampValue(v) }

// Symbol renders the token as a variable cell for display overlays.
func (t Token) Symbol() core.Symbol {
	if t.Representation == Character {
		return core.Valued(core.SymbolVarCharacter, t.Value)
	}
	return core.Valued(core.SymbolVarInt, t.Value)
}

// PlainText is the printed form used for trigger detection.
func (t Token) PlainText() string {
	if t.Representation == Character {
		return core.CharacterText(t.Value)
	}
	return strconv.Itoa(t.Value)
}

// Segment is the rich console form of the token.
func (t Token) Segment() Segment {
	if t.Representation == Character && core.IsIcon(t.Value) {
		return Segment{Icon: core.Character(t.Value)}
	}
	if t.Representation == Character {
		return Segment{Text: core.Character(t.Value)}
	}
	return Segment{Text: strconv.Itoa(t.Value)}
}

// arena holds tokens in insertion order. Removal leaves a nil tombstone so
// indices stay stable while a phase iterates; compact drops tombstones.
type arena struct {
	slots []*Token
	live  int
}

func (a *arena) add(t Token) int {
	t.SetValue(t.Value)
	a.slots = append(a.slots, &t)
	a.live++
	return len(a.slots) - 1
}

func (a *arena) remove(i int) {
	if a.slots[i] == nil {
		return
	}
	a.slots[i] = nil
	a.live--
}

func (a *arena) at(i int) *Token { return a.slots[i] }

func (a *arena) len() int { return len(a.slots) }

func (a *arena) empty() bool { return a.live == 0 }

func (a *arena) compact() {
	n := 0
	for _, t := range a.slots {
		if t != nil {
			a.slots[n] = t
			n++
		}
	}
	for i := n; i < len(a.slots); i++ {
		a.slots[i] = nil
	}
	a.slots = a.slots[:n]
}

func (a *arena) reset() {
	a.slots = nil
	a.live = 0
}

// snapshot copies the live tokens in insertion order.
func (a *arena) snapshot() []Token {
	out := make([]Token, 0, a.live)
	for _, t := range a.slots {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out
}

package engine

import (
	"strings"
	"testing"

	"symbol-code/internal/core"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDice replays a fixed sequence of faces and counts rolls.
type scriptedDice struct {
	faces []int
	rolls int
}

func (d *scriptedDice) Roll() int {
	v := d.faces[d.rolls%len(d.faces)]
	d.rolls++
	return v
}

type recorder struct {
	printed []string
	sounds  int
	secrets int
	inputs  int
	stops   []StopReason
}

func (r *recorder) observer() Observer {
	return ObserverFuncs{
		OnPrinted: func(segs []Segment) {
			var b strings.Builder
			for _, s := range segs {
				b.WriteString(s.String())
			}
			r.printed = append(r.printed, b.String())
		},
		OnSound:          func() { r.sounds++ },
		OnSecret:         func() { r.secrets++ },
		OnInputRequested: func([]PendingInput) { r.inputs++ },
		OnStopped:        func(reason StopReason) { r.stops = append(r.stops, reason) },
	}
}

func pos(r, c int) core.Position { return core.Position{Row: r, Column: c} }

func newTestEngine(t *testing.T, rows, cols int, cells map[core.Position]core.Symbol) (*Engine, *recorder) {
	t.Helper()
	g := core.NewGrid(core.Size{Rows: rows, Columns: cols})
	for p, s := range cells {
		g.Set(p, s)
	}
	rec := &recorder{}
	e := New(g, Options{
		AlwaysNewline: false,
		Dice:          &scriptedDice{faces: []int{3}},
		Observer:      rec.observer(),
	})
	return e, rec
}

func varInt(v int) core.Symbol  { return core.Valued(core.SymbolVarInt, v) }
func varChar(v int) core.Symbol { return core.Valued(core.SymbolVarCharacter, v) }
func constInt(v int) core.Symbol {
	return core.Valued(core.SymbolConstInt, v)
}
func plain(t core.SymbolType) core.Symbol { return core.Plain(t) }

func TestStartWithoutVariablesIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, 3, 3, map[core.Position]core.Symbol{
		pos(0, 0): constInt(4),
		pos(1, 1): plain(core.SymbolPrint),
	})
	assert.False(t, e.Start())
	assert.Equal(t, Idle, e.State())
	e.Advance()
	assert.Equal(t, 0, e.StepNumber())
}

func TestStartCreatesTokensAndClearsCells(t *testing.T) {
	e, _ := newTestEngine(t, 3, 4, map[core.Position]core.Symbol{
		pos(0, 1): varInt(7),
		pos(2, 0): varChar(8),
		pos(1, 1): plain(core.SymbolAdd),
	})
	require.True(t, e.Start())
	assert.Equal(t, Running, e.State())

	want := []Token{
		{Value: 7, Representation: Int, Position: pos(0, 1), Direction: core.Right},
		{Value: 8, Representation: Character, Position: pos(2, 0), Direction: core.Right},
	}
	if diff := cmp.Diff(want, e.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	rt := e.Runtime()
	assert.Equal(t, core.SymbolEmpty, rt.Get(pos(0, 1)).Type)
	assert.Equal(t, core.SymbolEmpty, rt.Get(pos(2, 0)).Type)
	assert.Equal(t, core.SymbolVarInt, e.Program().Get(pos(0, 1)).Type, "program grid must stay untouched")

	display := e.Display()
	assert.Equal(t, varInt(7), display.Get(pos(0, 1)))
	assert.Equal(t, varChar(8), display.Get(pos(2, 0)))
	assert.Equal(t, plain(core.SymbolAdd), display.Get(pos(1, 1)))
}

func TestDisplayWhileIdleIsProgram(t *testing.T) {
	cells := map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
		pos(0, 2): plain(core.SymbolPrint),
	}
	e, _ := newTestEngine(t, 1, 3, cells)
	if diff := cmp.Diff(cells, e.Display().Cells()); diff != "" {
		t.Fatalf("idle display mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenLeavingGridStopsRun(t *testing.T) {
	e, rec := newTestEngine(t, 1, 2, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
	})
	require.True(t, e.Start())

	e.Advance()
	assert.Equal(t, Running, e.State())
	assert.Equal(t, 1, e.StepNumber())
	assert.Equal(t, pos(0, 1), e.Tokens()[0].Position)

	e.Advance()
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.Tokens())
	assert.Equal(t, 0, e.StepNumber())
	assert.Equal(t, []StopReason{StopExhausted}, rec.stops)
}

func TestTokenLeavingAnyEdgeStopsRun(t *testing.T) {
	cases := []struct {
		name  string
		steer core.SymbolType
		last  core.Position
	}{
		{"right", core.SymbolEmpty, pos(1, 2)},
		{"down", core.SymbolDown, pos(2, 1)},
		{"up", core.SymbolUp, pos(0, 1)},
		{"left", core.SymbolLeft, pos(1, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cells := map[core.Position]core.Symbol{pos(1, 0): varInt(1)}
			if tc.steer != core.SymbolEmpty {
				cells[pos(1, 1)] = plain(tc.steer)
			}
			e, rec := newTestEngine(t, 3, 3, cells)
			require.True(t, e.Start())

			e.Advance()
			e.Advance()
			require.Equal(t, Running, e.State())
			require.Len(t, e.Tokens(), 1)
			assert.Equal(t, tc.last, e.Tokens()[0].Position)

			e.Advance()
			assert.Equal(t, Idle, e.State())
			assert.Empty(t, e.Tokens())
			assert.Equal(t, []StopReason{StopExhausted}, rec.stops)
		})
	}
}

func TestOffGridRemovesOnlyThatToken(t *testing.T) {
	e, _ := newTestEngine(t, 2, 3, map[core.Position]core.Symbol{
		pos(0, 2): varInt(1),
		pos(1, 0): varInt(2),
	})
	require.True(t, e.Start())
	e.Advance()
	require.Equal(t, Running, e.State())
	tokens := e.Tokens()
	require.Len(t, tokens, 1)
	assert.Equal(t, 2, tokens[0].Value)
	assert.Equal(t, pos(1, 1), tokens[0].Position)
}

func TestNoEntryBlocksMovement(t *testing.T) {
	e, _ := newTestEngine(t, 1, 3, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
		pos(0, 2): plain(core.SymbolNoEntry),
	})
	require.True(t, e.Start())
	e.Advance()
	e.Advance()
	e.Advance()
	assert.Equal(t, pos(0, 1), e.Tokens()[0].Position)
	assert.Equal(t, 3, e.StepNumber())
}

func TestDisabledNoEntryDoesNotBlock(t *testing.T) {
	e, _ := newTestEngine(t, 1, 4, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
		pos(0, 2): plain(core.SymbolNoEntryDisabled),
	})
	require.True(t, e.Start())
	e.Advance()
	e.Advance()
	assert.Equal(t, pos(0, 2), e.Tokens()[0].Position)
}

func TestDirectionCells(t *testing.T) {
	e, _ := newTestEngine(t, 3, 3, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
		pos(0, 1): plain(core.SymbolDown),
		pos(1, 1): plain(core.SymbolLeft),
	})
	require.True(t, e.Start())
	e.Advance()
	assert.Equal(t, core.Down, e.Tokens()[0].Direction)
	e.Advance()
	tok := e.Tokens()[0]
	assert.Equal(t, pos(1, 1), tok.Position)
	assert.Equal(t, core.Left, tok.Direction)
}

func TestConvertCells(t *testing.T) {
	e, _ := newTestEngine(t, 1, 4, map[core.Position]core.Symbol{
		pos(0, 0): varInt(8),
		pos(0, 1): plain(core.SymbolConvertCharacter),
		pos(0, 2): plain(core.SymbolConvertInt),
	})
	require.True(t, e.Start())
	e.Advance()
	assert.Equal(t, Character, e.Tokens()[0].Representation)
	assert.Equal(t, 8, e.Tokens()[0].Value)
	e.Advance()
	assert.Equal(t, Int, e.Tokens()[0].Representation)
}

func TestDuplicateHorizontalSplitsVertically(t *testing.T) {
	e, _ := newTestEngine(t, 5, 5, map[core.Position]core.Symbol{
		pos(2, 0): varChar(12),
		pos(2, 1): plain(core.SymbolDuplicate),
	})
	require.True(t, e.Start())
	e.Advance()

	want := []Token{
		{Value: 12, Representation: Character, Position: pos(2, 1), Direction: core.Up},
		{Value: 12, Representation: Character, Position: pos(2, 1), Direction: core.Down},
	}
	if diff := cmp.Diff(want, e.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateVerticalSplitsHorizontally(t *testing.T) {
	e, _ := newTestEngine(t, 4, 4, map[core.Position]core.Symbol{
		pos(0, 0): varInt(3),
		pos(0, 1): plain(core.SymbolDown),
		pos(1, 1): plain(core.SymbolDuplicate),
	})
	require.True(t, e.Start())
	e.Advance()
	e.Advance()

	tokens := e.Tokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, core.Left, tokens[0].Direction)
	assert.Equal(t, core.Right, tokens[1].Direction)
	assert.Equal(t, pos(1, 1), tokens[1].Position)
}

func TestTrashRemovesLastToken(t *testing.T) {
	e, rec := newTestEngine(t, 1, 4, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
		pos(0, 1): plain(core.SymbolTrash),
	})
	require.True(t, e.Start())
	e.Advance()
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, []StopReason{StopExhausted}, rec.stops)
}

func TestStopCellHaltsRun(t *testing.T) {
	e, rec := newTestEngine(t, 2, 4, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
		pos(0, 1): plain(core.SymbolStop),
		pos(1, 0): varInt(2),
		pos(1, 1): plain(core.SymbolPrint),
	})
	require.True(t, e.Start())
	e.Advance()
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.Tokens())
	assert.True(t, e.Console().Empty())
	assert.Equal(t, []StopReason{StopCell}, rec.stops)
	// The print token acts first in reverse order, before the stop cell.
	assert.Equal(t, []string{"2"}, rec.printed)
}

func TestStopIsIdempotent(t *testing.T) {
	e, rec := newTestEngine(t, 1, 3, map[core.Position]core.Symbol{
		pos(0, 0): varInt(1),
	})
	e.Stop()
	require.True(t, e.Start())
	e.Stop()
	e.Stop()
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, []StopReason{StopRequested}, rec.stops)
	e.Advance()
	assert.Equal(t, 0, e.StepNumber())
}

func TestRestartAfterStopUsesPristineProgram(t *testing.T) {
	e, _ := newTestEngine(t, 3, 3, map[core.Position]core.Symbol{
		pos(1, 0): varInt(1),
		pos(1, 1): plain(core.SymbolToggle),
		pos(0, 1): plain(core.SymbolUp),
	})
	require.True(t, e.Start())
	e.Advance()
	require.Equal(t, core.SymbolDown, e.Runtime().Get(pos(0, 1)).Type)
	e.Stop()
	require.True(t, e.Start())
	assert.Equal(t, core.SymbolUp, e.Runtime().Get(pos(0, 1)).Type)
}

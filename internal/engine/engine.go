// Package engine runs symbol programs: tokens move across a runtime copy of
// the program grid, one four-phase step per Advance call.
package engine

import (
	"log/slog"

	"symbol-code/internal/core"
)

// State is the lifecycle state of an Engine.
type State uint8

const (
	Idle State = iota
	Running
	AwaitingInput
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingInput:
		return "awaiting input"
	}
	return "idle"
}

// Options configures an Engine.
type Options struct {
	// AlwaysNewline appends a newline after every printed token.
	AlwaysNewline bool
	// Dice rolls die cells. Defaults to an unseeded RNG.
	Dice     core.Dice
	Observer Observer
	Logger   *slog.Logger
}

// DefaultOptions returns the standard engine options.
func DefaultOptions() Options {
	return Options{AlwaysNewline: true}
}

// PendingInput identifies a token waiting for an externally supplied value.
type PendingInput struct {
	Index int
	Token Token
}

// Engine owns the runtime state of one program run. It is not safe for
// concurrent use; the driver serializes every call.
type Engine struct {
	program *core.Grid
	runtime *core.Grid
	tokens  arena
	step    int
	running bool
	console Console
	pending []int

	opts Options
	log  *slog.Logger
}

// New constructs an idle engine for program. The program grid is never
// mutated by a run.
func New(program *core.Grid, opts Options) *Engine {
	if program == nil {
		program = core.NewGrid(core.DefaultSize)
	}
	if opts.Dice == nil {
		opts.Dice = core.NewRandomRNG()
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		program: program,
		runtime: program.Clone(),
		opts:    opts,
		log:     log,
	}
}

// Program returns the static program grid.
func (e *Engine) Program() *core.Grid { return e.program }

// SetProgram replaces the static program. It stops any active run.
func (e *Engine) SetProgram(g *core.Grid) {
	e.Stop()
	e.program = g
	e.runtime = g.Clone()
}

// SetAlwaysNewline toggles the newline-after-print option.
func (e *Engine) SetAlwaysNewline(v bool) { e.opts.AlwaysNewline = v }

// State reports the lifecycle state.
func (e *Engine) State() State {
	switch {
	case !e.running:
		return Idle
	case len(e.pending) > 0:
		return AwaitingInput
	}
	return Running
}

// Running reports whether a run is active, including while awaiting input.
func (e *Engine) Running() bool { return e.running }

// StepNumber returns the number of steps taken in the current run.
func (e *Engine) StepNumber() int { return e.step }

// Console exposes the run output for read-only display.
func (e *Engine) Console() *Console { return &e.console }

// Tokens returns copies of the live tokens in insertion order.
func (e *Engine) Tokens() []Token { return e.tokens.snapshot() }

// Runtime returns a copy of the runtime grid.
func (e *Engine) Runtime() *core.Grid { return e.runtime.Clone() }

// Start begins a run. Every variable cell becomes a right-moving token and
// is cleared in the runtime grid. Start does nothing when the engine is
// already running or the program declares no variables.
func (e *Engine) Start() bool {
	if e.running {
		return false
	}
	e.runtime = e.program.Clone()
	e.tokens.reset()
	for _, p := range e.runtime.Positions() {
		cell := e.runtime.Get(p)
		var rep Representation
		switch cell.Type {
		case core.SymbolVarInt:
			rep = Int
		case core.SymbolVarCharacter:
			rep = Character
		default:
			continue
		}
		e.runtime.Set(p, core.Plain(core.SymbolEmpty))
		e.tokens.add(Token{
			Value:          cell.Value,
			Representation: rep,
			Position:       p,
			Direction:      core.Right,
		})
	}
	if e.tokens.empty() {
		e.log.Debug("start ignored, program declares no variables")
		return false
	}
	e.running = true
	e.step = 0
	e.console.reset()
	e.pending = nil
	e.log.Debug("run started", "tokens", e.tokens.live, "size", e.runtime.Size())
	return true
}

// Stop ends the run and discards all run state. It is idempotent.
func (e *Engine) Stop() {
	e.halt(StopRequested)
}

func (e *Engine) halt(reason StopReason) {
	wasRunning := e.running
	e.running = false
	e.tokens.reset()
	e.console.reset()
	e.pending = nil
	e.step = 0
	if wasRunning {
		e.log.Debug("run stopped", "reason", reason.String())
		e.opts.Observer.Stopped(reason)
	}
}

// Advance takes one step. It is a no-op when idle or awaiting input.
func (e *Engine) Advance() {
	if !e.running || len(e.pending) > 0 {
		return
	}
	e.advance()
}

// Pending lists the tokens awaiting input, in token order.
func (e *Engine) Pending() []PendingInput {
	out := make([]PendingInput, 0, len(e.pending))
	for _, i := range e.pending {
		out = append(out, PendingInput{Index: i, Token: *e.tokens.at(i)})
	}
	return out
}

// Fulfill assigns values to the pending tokens in order and resumes the
// run. Values are clamped; missing values leave a token unchanged and
// extra values are ignored.
func (e *Engine) Fulfill(values []int) {
	if len(e.pending) == 0 {
		return
	}
	for n, i := range e.pending {
		if n >= len(values) {
			break
		}
		e.tokens.at(i).SetValue(values[n])
	}
	e.pending = nil
	e.log.Debug("input fulfilled", "values", len(values))
}

// Display returns the grid a renderer should draw: the runtime grid with
// every live token overlaid while running, or the program when idle. Later
// tokens overwrite earlier ones at the same cell. The result is a copy.
func (e *Engine) Display() *core.Grid {
	if !e.running {
		return e.program.Clone()
	}
	out := e.runtime.Clone()
	for i := 0; i < e.tokens.len(); i++ {
		if t := e.tokens.at(i); t != nil {
			out.Set(t.Position, t.Symbol())
		}
	}
	return out
}

// Package runner drives an engine without a window: it paces steps off a
// ticker, streams console output to a writer and reads input values from a
// line-oriented reader.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"symbol-code/internal/core"
	"symbol-code/internal/engine"
	"symbol-code/internal/logging"
)

var (
	// ErrNoVariables is returned when the program declares no variable cells.
	ErrNoVariables = errors.New("program declares no variables")
	// ErrStepLimit is returned when a run is cut off by Options.MaxSteps.
	ErrStepLimit = errors.New("step limit reached")
	// ErrInputClosed is returned when the input reader ends while a token
	// is waiting for a value.
	ErrInputClosed = errors.New("input closed while awaiting a value")
)

// Options controls pacing and terminal behavior.
type Options struct {
	// Tick is the driver clock. Zero runs steps back to back.
	Tick time.Duration
	// Speed is the step multiplier, one of core.Speeds.
	Speed int
	// MaxSteps stops the run after that many steps. Zero is unlimited.
	MaxSteps int
	// Bell writes BEL for sound cells.
	Bell bool
	// Prompt writes a prompt before reading each input value.
	Prompt bool
}

// Result summarizes a finished run.
type Result struct {
	Steps   int
	Reason  engine.StopReason
	Secrets int
}

// Runner implements engine.Observer for a headless run. Pass it as the
// engine's observer, then call Run.
type Runner struct {
	in    *bufio.Scanner
	out   io.Writer
	opts  Options
	pacer *core.Pacer

	// lines is fed by a single reader goroutine so a pending read never
	// blocks cancellation.
	readOnce sync.Once
	lines    chan string
	readErr  error

	result  Result
	writeErr error
}

// New creates a runner reading values from in and writing output to out.
func New(in io.Reader, out io.Writer, opts Options) *Runner {
	return &Runner{
		in:    bufio.NewScanner(in),
		out:   out,
		opts:  opts,
		pacer: core.NewPacer(opts.Speed),
	}
}

// Run starts e and drives it until it stops on its own, ctx is cancelled,
// the step limit is hit or input runs out. The engine is always left idle.
func (r *Runner) Run(ctx context.Context, e *engine.Engine) (Result, error) {
	log := logging.FromContext(ctx)
	r.result = Result{}
	r.pacer.Reset()
	if !e.Start() {
		return r.result, ErrNoVariables
	}
	log.Info("run started", "tokens", len(e.Tokens()), "speed", r.pacer.Speed(), "tick", r.opts.Tick)

	var tick <-chan time.Time
	if r.opts.Tick > 0 {
		t := time.NewTicker(r.opts.Tick)
		defer t.Stop()
		tick = t.C
	}

	for e.Running() {
		if r.writeErr != nil {
			e.Stop()
			return r.result, fmt.Errorf("write output: %w", r.writeErr)
		}
		if e.State() == engine.AwaitingInput {
			values, err := r.readInput(ctx, e.Pending())
			if err != nil {
				e.Stop()
				return r.result, err
			}
			e.Fulfill(values)
			continue
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				e.Stop()
				return r.result, ctx.Err()
			case <-tick:
			}
			if !r.pacer.Tick() {
				continue
			}
		} else if err := ctx.Err(); err != nil {
			e.Stop()
			return r.result, err
		}
		if r.opts.MaxSteps > 0 && r.result.Steps >= r.opts.MaxSteps {
			log.Warn("step limit reached", "steps", r.result.Steps)
			e.Stop()
			return r.result, ErrStepLimit
		}
		e.Advance()
		r.result.Steps++
	}
	log.Info("run finished", "steps", r.result.Steps, "reason", r.result.Reason.String())
	return r.result, r.writeErr
}

// readInput reads one integer per pending token. Lines that do not parse
// yield 0.
func (r *Runner) readInput(ctx context.Context, pending []engine.PendingInput) ([]int, error) {
	r.readOnce.Do(func() {
		r.lines = make(chan string)
		go r.readLines()
	})
	values := make([]int, 0, len(pending))
	for _, p := range pending {
		if r.opts.Prompt {
			fmt.Fprintf(r.out, "? (%d,%d) ", p.Token.Position.Row, p.Token.Position.Column)
		}
		var line string
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case l, ok := <-r.lines:
			if !ok {
				if r.readErr != nil {
					return nil, fmt.Errorf("read input: %w", r.readErr)
				}
				return nil, ErrInputClosed
			}
			line = l
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			v = 0
		}
		values = append(values, v)
	}
	return values, nil
}

// readLines forwards scanned lines until the reader ends. It outlives a
// cancelled run while a read is still blocked.
func (r *Runner) readLines() {
	defer close(r.lines)
	for r.in.Scan() {
		r.lines <- r.in.Text()
	}
	r.readErr = r.in.Err()
}

func (r *Runner) write(s string) {
	if r.writeErr != nil {
		return
	}
	_, r.writeErr = io.WriteString(r.out, s)
}

func (r *Runner) Printed(segs []engine.Segment) {
	for _, s := range segs {
		r.write(s.String())
	}
}

func (r *Runner) Sound() {
	if r.opts.Bell {
		r.write("\a")
	}
}

func (r *Runner) Secret() { r.result.Secrets++ }

func (r *Runner) InputRequested([]engine.PendingInput) {}

func (r *Runner) Stopped(reason engine.StopReason) { r.result.Reason = reason }

var _ engine.Observer = (*Runner)(nil)

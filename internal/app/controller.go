package app

import (
	"log/slog"
	"time"

	"symbol-code/internal/core"
	"symbol-code/internal/engine"
	"symbol-code/internal/ui"
)

// Frame counts for transient HUD feedback at 60 updates per second.
const (
	soundFlashFrames = 8
	noticeFrames     = 180
)

// Options configures the windowed front end.
type Options struct {
	Program       *core.Grid
	Scale         int
	Speed         int
	Tick          time.Duration
	AlwaysNewline bool
	Dice          core.Dice
	Logger        *slog.Logger
}

// controller owns the engine and the run controls. It is kept free of
// ebiten so the key bindings map onto plain method calls.
type controller struct {
	engine *engine.Engine
	pacer  *core.Pacer
	entry  inputEntry
	paused bool
	log    *slog.Logger

	alwaysNewline bool

	flash      int
	notice     string
	noticeLeft int
}

func newController(opts Options) *controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	c := &controller{
		pacer:         core.NewPacer(opts.Speed),
		log:           log,
		alwaysNewline: opts.AlwaysNewline,
	}
	c.engine = engine.New(opts.Program, engine.Options{
		AlwaysNewline: opts.AlwaysNewline,
		Dice:          opts.Dice,
		Observer:      c,
		Logger:        log,
	})
	return c
}

// toggleRun starts an idle program or stops a running one.
func (c *controller) toggleRun() {
	if c.engine.Running() {
		c.engine.Stop()
		return
	}
	c.start()
}

func (c *controller) start() bool {
	c.entry.reset()
	c.pacer.Reset()
	c.paused = false
	if !c.engine.Start() {
		c.show("nothing to run: place a variable")
		return false
	}
	c.log.Info("run started", "tokens", len(c.engine.Tokens()), "speed", c.pacer.Speed())
	return true
}

// stepOnce pauses the run and advances exactly one step, starting the
// program first when idle.
func (c *controller) stepOnce() {
	if !c.engine.Running() {
		if !c.start() {
			return
		}
		c.paused = true
		return
	}
	c.paused = true
	c.engine.Advance()
}

func (c *controller) togglePause() {
	if c.engine.State() == engine.Running {
		c.paused = !c.paused
	}
}

// tick is called once per driver tick.
func (c *controller) tick() {
	if c.paused || c.engine.State() != engine.Running {
		return
	}
	if c.pacer.Tick() {
		c.engine.Advance()
	}
}

// frame ages transient feedback; called once per update.
func (c *controller) frame() {
	if c.flash > 0 {
		c.flash--
	}
	if c.noticeLeft > 0 {
		c.noticeLeft--
		if c.noticeLeft == 0 {
			c.notice = ""
		}
	}
}

func (c *controller) setSpeed(s int) { c.pacer.SetSpeed(s) }

func (c *controller) cycleSpeed() { c.pacer.NextSpeed() }

func (c *controller) toggleNewline() {
	c.alwaysNewline = !c.alwaysNewline
	c.engine.SetAlwaysNewline(c.alwaysNewline)
}

func (c *controller) awaitingInput() bool {
	return c.engine.State() == engine.AwaitingInput
}

func (c *controller) typeRune(r rune) {
	if c.engine.State() == engine.AwaitingInput {
		c.entry.typeRune(r)
	}
}

func (c *controller) backspace() { c.entry.backspace() }

// submit commits the typed value and fulfills the request once every
// pending token has one.
func (c *controller) submit() {
	if c.engine.State() != engine.AwaitingInput {
		return
	}
	pending := c.engine.Pending()
	if c.entry.commit(len(pending)) {
		c.log.Debug("input fulfilled", "values", c.entry.values)
		c.engine.Fulfill(c.entry.values)
		c.entry.reset()
	}
}

func (c *controller) show(msg string) {
	c.notice = msg
	c.noticeLeft = noticeFrames
}

func (c *controller) status() ui.Status {
	return ui.Status{
		State:         c.engine.State(),
		Step:          c.engine.StepNumber(),
		Speed:         c.pacer.Speed(),
		AlwaysNewline: c.alwaysNewline,
		Paused:        c.paused,
		Pending:       c.engine.Pending(),
		Filled:        c.entry.filled(),
		Entry:         c.entry.text(),
		Console:       c.engine.Console().Segments(),
		Notice:        c.notice,
	}
}

func (c *controller) Printed([]engine.Segment) {}

func (c *controller) Sound() { c.flash = soundFlashFrames }

func (c *controller) Secret() {
	c.log.Info("secret word printed")
	c.show("hi " + engine.SecretTrigger + "!")
}

func (c *controller) InputRequested([]engine.PendingInput) { c.entry.reset() }

func (c *controller) Stopped(reason engine.StopReason) {
	c.entry.reset()
	c.paused = false
	c.log.Info("run stopped", "reason", reason.String())
	if reason != engine.StopRequested {
		c.show("stopped: " + reason.String())
	}
}

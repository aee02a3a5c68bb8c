//go:build ebiten

package app

import (
	"symbol-code/internal/core"
	"symbol-code/internal/render"
	"symbol-code/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the status and console panel.
const hudWidth = 260

// Game adapts a symbol program run to the ebiten.Game interface.
type Game struct {
	ctrl    *controller
	clock   *core.FixedStep
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale int
	chars []rune
}

// New constructs a Game for the provided program.
func New(opts Options) *Game {
	if opts.Program == nil {
		opts.Program = core.NewGrid(core.DefaultSize)
	}
	if opts.Scale <= 0 {
		opts.Scale = 40
	}
	if opts.Tick <= 0 {
		opts.Tick = core.BaseTick
	}
	return &Game{
		ctrl:    newController(opts),
		clock:   core.NewFixedStep(opts.Tick),
		painter: render.NewGridPainter(opts.Program.Size()),
		overlay: ui.NewOverlay(opts.Scale),
		hud:     ui.NewHUD(hudWidth),
		scale:   opts.Scale,
	}
}

// WindowSize returns the outer size needed for the grid and panel.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}

// Update handles per-frame logic and advances the run on driver ticks.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.ctrl.frame()
	if g.ctrl.awaitingInput() {
		g.updateInput()
	} else {
		g.updateControls()
	}
	g.overlay.Update()

	if g.clock.ShouldStep() {
		g.ctrl.tick()
	}
	return nil
}

func (g *Game) updateControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.toggleRun()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.ctrl.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.stepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.ctrl.cycleSpeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.ctrl.toggleNewline()
	}
	speeds := map[ebiten.Key]int{
		ebiten.KeyDigit1: 1,
		ebiten.KeyDigit2: 2,
		ebiten.KeyDigit4: 4,
		ebiten.KeyDigit8: 8,
	}
	for key, s := range speeds {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.setSpeed(s)
		}
	}
}

func (g *Game) updateInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.toggleRun()
		return
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.ctrl.typeRune(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.ctrl.backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.ctrl.submit()
	}
}

// Draw renders the display grid, token markers and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	e := g.ctrl.engine
	display := e.Display()
	g.painter.Blit(screen, display, g.scale)
	g.overlay.Draw(screen, display.Size(), e.Tokens(), e.Pending())

	size := display.Size()
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, size.Columns*g.scale, h, g.ctrl.status(), g.ctrl.flash > 0)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.engine.Program().Size()
	h := s.Rows * g.scale
	if h < minHeight {
		h = minHeight
	}
	return s.Columns*g.scale + g.hud.Width(), h
}

const minHeight = 320

//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"os"

	"symbol-code/internal/app"
	"symbol-code/internal/cli"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, shouldExit, err := cli.Parse("symbolcode-gui", args, os.Stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	log := cli.NewLogger(cfg, os.Stderr)

	grid, err := cli.LoadProgram(cfg)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	game := app.New(app.Options{
		Program:       grid,
		Scale:         cfg.Scale,
		Speed:         cfg.Speed,
		Tick:          cfg.TickInterval,
		AlwaysNewline: cfg.AlwaysNewline,
		Logger:        log,
	})
	w, h := game.WindowSize()

	title := "Symbol Code"
	if cfg.ProgramPath != "" {
		title += " - " + cfg.ProgramPath
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"symbol-code/internal/cli"
	"symbol-code/internal/engine"
	"symbol-code/internal/logging"
	"symbol-code/internal/runner"

	"golang.org/x/term"
)

func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run parses args, loads the program and drives it until it stops.
func run(ctx context.Context, in io.Reader, out, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse("symbolcode", args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	log := cli.NewLogger(cfg, errW)
	ctx = logging.WithLogger(ctx, log)

	grid, err := cli.LoadProgram(cfg)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	r := runner.New(in, out, runner.Options{
		Tick:     cfg.TickInterval,
		Speed:    cfg.Speed,
		MaxSteps: cfg.MaxSteps,
		Bell:     isTerminal(out),
		Prompt:   isTerminal(in),
	})
	e := engine.New(grid, engine.Options{
		AlwaysNewline: cfg.AlwaysNewline,
		Observer:      r,
		Logger:        log,
	})

	res, err := r.Run(ctx, e)
	if res.Secrets > 0 {
		log.Info("secret word printed", "times", res.Secrets)
	}
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, runner.ErrNoVariables):
		return &cli.ExitError{Code: 1, Message: "nothing to run: " + err.Error()}
	}
	return err
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

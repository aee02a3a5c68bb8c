// Package cli parses the command line shared by the symbol-code binaries
// and turns the resulting settings into a logger and a program grid.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"symbol-code/internal/config"
	"symbol-code/internal/core"
	"symbol-code/internal/logging"
	"symbol-code/internal/program"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func newFlagSet(name string, output io.Writer, cfg *config.Config, cfgPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, `
Symbol Code - run grid programs of moving tokens.

Usage:
  %s [options] [PROGRAM_PATH]

Arguments:
  PROGRAM_PATH
    Program document to run. Without it the -template program runs.

Options:
`, name)
		fs.PrintDefaults()
	}
	fs.StringVar(cfgPath, "config", *cfgPath, "HCL settings file; flags override its values")
	cfg.Bind(fs)
	return fs
}

// Parse processes command-line arguments. It returns the merged settings,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(name string, args []string, output io.Writer) (*config.Config, bool, error) {
	cfg := config.Default()
	var cfgPath string
	fs := newFlagSet(name, output, cfg, &cfgPath)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if cfgPath != "" {
		// Flags must win over the file, so parse them again on top of it.
		cfg = config.Default()
		if err := cfg.LoadFile(cfgPath); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		fs = newFlagSet(name, io.Discard, cfg, &cfgPath)
		if err := fs.Parse(args); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	if fs.NArg() > 0 {
		cfg.ProgramPath = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}

// NewLogger builds the logger described by cfg, writing to w.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	log, _ := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Writer:  w,
		Journal: cfg.LogJournal,
	})
	return log
}

// LoadProgram reads the configured program document, or builds the named
// template when no document is given. A grid size other than the default
// overrides the template's own size.
func LoadProgram(cfg *config.Config) (*core.Grid, error) {
	if cfg.ProgramPath != "" {
		doc, err := program.Load(cfg.ProgramPath)
		if err != nil {
			return nil, err
		}
		return doc.Grid(cfg.Size()), nil
	}
	factory, ok := core.Templates()[cfg.Template]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", cfg.Template)
	}
	g := factory()
	if cfg.Size() != core.DefaultSize {
		g.SetSize(cfg.Size())
	}
	return g, nil
}

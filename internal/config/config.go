// Package config holds runtime settings for the symbol-code drivers.
// Settings come from defaults, an optional HCL file and command-line
// flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"symbol-code/internal/core"
)

// Config represents the runtime parameters for a driver.
type Config struct {
	ProgramPath string
	Template    string
	Rows        int
	Columns     int

	Speed        int
	TickInterval time.Duration
	MaxSteps     int

	AlwaysNewline bool

	LogLevel   string
	LogFormat  string
	LogJournal bool

	Scale int
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Template:      "empty",
		Rows:          core.DefaultSize.Rows,
		Columns:       core.DefaultSize.Columns,
		Speed:         1,
		TickInterval:  core.BaseTick,
		AlwaysNewline: true,
		LogLevel:      "info",
		LogFormat:     "text",
		Scale:         40,
	}
}

// Size returns the configured grid dimensions.
func (c *Config) Size() core.Size {
	return core.Size{Rows: c.Rows, Columns: c.Columns}
}

// Bind attaches the configuration to the provided FlagSet. Current values
// become the flag defaults, so load any file before binding.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ProgramPath, "program", c.ProgramPath, "path to a program document")
	fs.StringVar(&c.Template, "template", c.Template, "bundled program to run when no document is given")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Columns, "columns", c.Columns, "grid columns")
	fs.IntVar(&c.Speed, "speed", c.Speed, "speed multiplier: 1, 2, 4 or 8")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "driver clock interval")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "stop after this many steps (0 = unlimited)")
	fs.BoolVar(&c.AlwaysNewline, "newline", c.AlwaysNewline, "print every value on its own line")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
	fs.BoolVar(&c.LogJournal, "log-journal", c.LogJournal, "also send logs to the systemd journal")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per grid cell (GUI only)")
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Rows <= 0 || c.Columns <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d must be positive", c.Rows, c.Columns))
	}
	if !core.ValidSpeed(c.Speed) {
		errs = append(errs, fmt.Errorf("speed %d must be one of %v", c.Speed, core.Speeds))
	}
	if c.TickInterval < 0 {
		errs = append(errs, fmt.Errorf("tick interval %s must not be negative", c.TickInterval))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max steps %d must not be negative", c.MaxSteps))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat))
	}
	if c.ProgramPath == "" && c.Template == "" {
		errs = append(errs, errors.New("either a program path or a template is required"))
	}
	return errors.Join(errs...)
}

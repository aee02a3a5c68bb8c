package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"symbol-code/internal/core"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is the top-level shape of a settings file:
//
//	grid    { rows = 16  columns = 24 }
//	run     { template = "count-to-10"  speed = 2  tick = "125ms" }
//	console { always_newline = false }
//	log     { level = "debug"  format = "json"  journal = true }
//
// Expressions may reference preset.default and preset.large (rows and
// columns), base_tick, and env.NAME for environment variables.
type fileRoot struct {
	Grid    *gridBlock    `hcl:"grid,block"`
	Run     *runBlock     `hcl:"run,block"`
	Console *consoleBlock `hcl:"console,block"`
	Log     *logBlock     `hcl:"log,block"`
}

type gridBlock struct {
	Rows    *int `hcl:"rows,optional"`
	Columns *int `hcl:"columns,optional"`
	Scale   *int `hcl:"scale,optional"`
}

type runBlock struct {
	Program  *string `hcl:"program,optional"`
	Template *string `hcl:"template,optional"`
	Speed    *int    `hcl:"speed,optional"`
	Tick     *string `hcl:"tick,optional"`
	MaxSteps *int    `hcl:"max_steps,optional"`
}

type consoleBlock struct {
	AlwaysNewline *bool `hcl:"always_newline,optional"`
}

type logBlock struct {
	Level   *string `hcl:"level,optional"`
	Format  *string `hcl:"format,optional"`
	Journal *bool   `hcl:"journal,optional"`
}

// LoadFile overlays the settings in the HCL file at path onto c.
func (c *Config) LoadFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}
	return c.apply(file.Body, path)
}

// LoadBytes overlays settings parsed from src; filename is used in
// diagnostics only.
func (c *Config) LoadBytes(src []byte, filename string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse settings %s: %w", filename, diags)
	}
	return c.apply(file.Body, filename)
}

func (c *Config) apply(body hcl.Body, name string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, evalContext(), &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode settings %s: %w", name, diags)
	}
	if g := root.Grid; g != nil {
		setInt(&c.Rows, g.Rows)
		setInt(&c.Columns, g.Columns)
		setInt(&c.Scale, g.Scale)
	}
	if r := root.Run; r != nil {
		setString(&c.ProgramPath, r.Program)
		setString(&c.Template, r.Template)
		setInt(&c.Speed, r.Speed)
		setInt(&c.MaxSteps, r.MaxSteps)
		if r.Tick != nil {
			d, err := time.ParseDuration(*r.Tick)
			if err != nil {
				return fmt.Errorf("settings %s: run.tick: %w", name, err)
			}
			c.TickInterval = d
		}
	}
	if con := root.Console; con != nil && con.AlwaysNewline != nil {
		c.AlwaysNewline = *con.AlwaysNewline
	}
	if l := root.Log; l != nil {
		setString(&c.LogLevel, l.Level)
		setString(&c.LogFormat, l.Format)
		if l.Journal != nil {
			c.LogJournal = *l.Journal
		}
	}
	return nil
}

// evalContext creates the variables visible to settings expressions.
func evalContext() *hcl.EvalContext {
	size := func(s core.Size) cty.Value {
		return cty.ObjectVal(map[string]cty.Value{
			"rows":    cty.NumberIntVal(int64(s.Rows)),
			"columns": cty.NumberIntVal(int64(s.Columns)),
		})
	}
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && hclsyntax.ValidIdentifier(k) {
			env[k] = cty.StringVal(v)
		}
	}
	vars := map[string]cty.Value{
		"preset": cty.ObjectVal(map[string]cty.Value{
			"default": size(core.DefaultSize),
			"large":   size(core.LargeSize),
		}),
		"base_tick": cty.StringVal(core.BaseTick.String()),
		"env":       cty.ObjectVal(env),
	}
	return &hcl.EvalContext{Variables: vars}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

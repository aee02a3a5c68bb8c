package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"symbol-code/internal/config"
	"symbol-code/internal/core"
	"symbol-code/internal/program"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHelp(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse("symbolcode", []string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseUnknownFlag(t *testing.T) {
	_, _, err := Parse("symbolcode", []string{"-bogus"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseInvalidSetting(t *testing.T) {
	_, _, err := Parse("symbolcode", []string{"-speed", "3"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "speed")
}

func TestParsePositionalProgram(t *testing.T) {
	cfg, exit, err := Parse("symbolcode", []string{"-speed", "4", "prog.json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "prog.json", cfg.ProgramPath)
	assert.Equal(t, 4, cfg.Speed)
}

func TestParseConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
run {
  speed    = 2
  template = "hello-world"
}
log {
  level = "debug"
}
`), 0o600))

	cfg, _, err := Parse("symbolcode", []string{"-config", path, "-speed", "8"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Speed)
	assert.Equal(t, "hello-world", cfg.Template)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, _, err = Parse("symbolcode", []string{"-config", filepath.Join(t.TempDir(), "missing.hcl")}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestLoadProgramTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.Template = "empty-xl"
	g, err := LoadProgram(cfg)
	require.NoError(t, err)
	assert.Equal(t, core.LargeSize, g.Size())

	cfg.Template = "count-to-10"
	cfg.Rows, cfg.Columns = 4, 12
	g, err = LoadProgram(cfg)
	require.NoError(t, err)
	assert.Equal(t, core.Size{Rows: 4, Columns: 12}, g.Size())
	assert.Equal(t, core.SymbolVarInt, g.Get(core.Position{Row: 1, Column: 1}).Type)

	cfg.Template = "nope"
	_, err = LoadProgram(cfg)
	assert.Error(t, err)
}

func TestLoadProgramDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.json")
	g := core.NewGrid(core.DefaultSize)
	g.Set(core.Position{Row: 2, Column: 3}, core.Plain(core.SymbolTrash))
	require.NoError(t, program.Save(path, program.NewDocument(g)))

	cfg := config.Default()
	cfg.ProgramPath = path
	got, err := LoadProgram(cfg)
	require.NoError(t, err)
	assert.Equal(t, core.SymbolTrash, got.Get(core.Position{Row: 2, Column: 3}).Type)
	assert.Equal(t, core.DefaultSize, got.Size())
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogFormat = "json"
	out := &bytes.Buffer{}
	NewLogger(cfg, out).Info("hello")
	assert.Contains(t, out.String(), `"msg":"hello"`)
}

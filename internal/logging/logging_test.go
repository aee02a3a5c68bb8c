package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, level := New(Options{Level: "info", Format: "json", Writer: &buf})

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("run started", "tokens", 3)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "run started", rec["msg"])
	assert.EqualValues(t, 3, rec["tokens"])

	buf.Reset()
	level.Set(slog.LevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Level: "debug", Format: "text", Writer: &buf})
	logger.Debug("step", "n", 4)
	assert.Contains(t, buf.String(), "msg=step")
	assert.Contains(t, buf.String(), "n=4")
}

func TestNewWithoutWriterDiscards(t *testing.T) {
	logger, _ := New(Options{})
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestNewWithJournalKeepsLocalHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Level: "info", Writer: &buf, Journal: true})
	require.NotNil(t, logger)
	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	if _, err := newJournalHandler(); err != nil {
		assert.Contains(t, buf.String(), "systemd journal unavailable")
	}
}

func TestJournalKey(t *testing.T) {
	assert.Equal(t, "STOP_REASON", journalKey("stop.reason"))
	assert.Equal(t, "STEP2", journalKey("step2"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Writer: &buf})
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

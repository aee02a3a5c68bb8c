package ui

import (
	"fmt"
	"strings"

	"symbol-code/internal/engine"
)

// Status is the per-frame snapshot the HUD draws.
type Status struct {
	State         engine.State
	Step          int
	Speed         int
	AlwaysNewline bool
	Paused        bool

	// Pending lists tokens awaiting input; Entry is the value being typed
	// for Pending[Filled].
	Pending []engine.PendingInput
	Filled  int
	Entry   string

	Console []engine.Segment
	Notice  string
}

// StatusLines renders the header lines of the HUD panel.
func StatusLines(s Status) []string {
	state := s.State.String()
	if s.Paused && s.State == engine.Running {
		state += " (paused)"
	}
	newline := "off"
	if s.AlwaysNewline {
		newline = "on"
	}
	lines := []string{
		"state:   " + state,
		fmt.Sprintf("step:    %d", s.Step),
		fmt.Sprintf("speed:   x%d", s.Speed),
		"newline: " + newline,
	}
	if s.State == engine.AwaitingInput && s.Filled < len(s.Pending) {
		p := s.Pending[s.Filled].Token.Position
		lines = append(lines, fmt.Sprintf("input %d/%d at (%d,%d): %s_",
			s.Filled+1, len(s.Pending), p.Row, p.Column, s.Entry))
	}
	if s.Notice != "" {
		lines = append(lines, s.Notice)
	}
	return lines
}

// WrapConsole splits console output into lines of at most width runes and
// returns the last max of them. Icons are shown as [name].
func WrapConsole(segs []engine.Segment, width, max int) []string {
	if width <= 0 || max <= 0 {
		return nil
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.String())
	}
	var lines []string
	for _, raw := range strings.Split(b.String(), "\n") {
		r := []rune(raw)
		for len(r) > width {
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		lines = append(lines, string(r))
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}

package engine

import "strings"

// SecretTrigger is matched case-insensitively against printed output.
const SecretTrigger = "JAYDEN"

// Segment is one piece of rich console output: either literal text or a
// named icon from the character table.
type Segment struct {
	Text string
	Icon string
}

// String renders the segment, showing icons as [name].
func (s Segment) String() string {
	if s.Icon != "" {
		return "[" + s.Icon + "]"
	}
	return s.Text
}

// Console is the append-only output stream of a run plus the plain-text
// buffer scanned for SecretTrigger.
type Console struct {
	segments []Segment
	match    strings.Builder
}

// Segments returns a copy of the rich output stream.
func (c *Console) Segments() []Segment {
	return append([]Segment(nil), c.segments...)
}

// String renders the rich output stream as text.
func (c *Console) String() string {
	var b strings.Builder
	for _, s := range c.segments {
		b.WriteString(s.String())
	}
	return b.String()
}

// MatchBuffer returns the plain-text accumulation since the last trigger.
func (c *Console) MatchBuffer() string { return c.match.String() }

// Empty reports whether nothing has been printed.
func (c *Console) Empty() bool { return len(c.segments) == 0 }

// write appends output segments and their plain-text form, and reports
// whether the trigger fired.
func (c *Console) write(segs []Segment, plain string) bool {
	c.segments = append(c.segments, segs...)
	c.match.WriteString(plain)
	if strings.Contains(strings.ToUpper(c.match.String()), SecretTrigger) {
		c.match.Reset()
		return true
	}
	return false
}

func (c *Console) reset() {
	c.segments = nil
	c.match.Reset()
}

package app

import "strconv"

// maxEntryDigits bounds typed values; anything above 50 clamps anyway.
const maxEntryDigits = 3

// inputEntry collects one typed value per pending token.
type inputEntry struct {
	buf    []rune
	values []int
}

func (e *inputEntry) reset() {
	e.buf = e.buf[:0]
	e.values = e.values[:0]
}

// typeRune appends r when it is a digit.
func (e *inputEntry) typeRune(r rune) {
	if r < '0' || r > '9' || len(e.buf) >= maxEntryDigits {
		return
	}
	e.buf = append(e.buf, r)
}

func (e *inputEntry) backspace() {
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

// commit stores the typed value, 0 when nothing was typed, and reports
// whether want values have been collected.
func (e *inputEntry) commit(want int) bool {
	v, err := strconv.Atoi(string(e.buf))
	if err != nil {
		v = 0
	}
	e.values = append(e.values, v)
	e.buf = e.buf[:0]
	return len(e.values) >= want
}

func (e *inputEntry) filled() int { return len(e.values) }

func (e *inputEntry) text() string { return string(e.buf) }

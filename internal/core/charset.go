package core

import "strconv"

// Characters is the fixed table indexed by a character-represented value.
// Multi-letter entries name icons rather than printable glyphs.
var Characters = [MaxValue + 1]string{
	" ",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"@", "#", "$", "-", "+", "÷", "=", "/", "^", ".", "!", "?", "<", ">",
	"bookmark", "heart", "star", "flag", "tag", "bolt", "eye", "lock", "pin",
	"\n",
}

// Character returns the table entry for v, clamping out-of-range values.
func Character(v int) string {
	return Characters[ClampValue(v)]
}

// IsIcon reports whether the table entry for v is an icon name.
func IsIcon(v int) bool {
	return len([]rune(Character(v))) > 1
}

// CharacterText is the plain-text approximation of v: the glyph itself, or
// "(v)" for icon entries.
func CharacterText(v int) string {
	if IsIcon(v) {
		return "(" + strconv.Itoa(ClampValue(v)) + ")"
	}
	return Character(v)
}

// CharacterIndex finds the table index of a glyph or icon name.
func CharacterIndex(s string) (int, bool) {
	for i, c := range Characters {
		if c == s {
			return i, true
		}
	}
	return 0, false
}

package core

import "fmt"

// SymbolType enumerates the closed instruction set of a program cell.
type SymbolType uint8

const (
	SymbolEmpty SymbolType = iota

	SymbolVarInt
	SymbolVarCharacter
	SymbolConvertInt
	SymbolConvertCharacter

	SymbolUp
	SymbolDown
	SymbolLeft
	SymbolRight
	SymbolDuplicate
	SymbolToggle
	SymbolNoEntryDisabled
	SymbolNoEntry
	SymbolTrash

	SymbolAdd
	SymbolSubtract
	SymbolMultiply
	SymbolDivide
	SymbolModulo
	SymbolEqual

	SymbolConstInt
	SymbolConstCharacter
	SymbolDie

	SymbolInput
	SymbolPrint
	SymbolSound
	SymbolStop

	symbolTypeCount
)

var symbolTags = [symbolTypeCount]string{
	SymbolEmpty:            "empty",
	SymbolVarInt:           "varInt",
	SymbolVarCharacter:     "varCharacter",
	SymbolConvertInt:       "convertInt",
	SymbolConvertCharacter: "convertCharacter",
	SymbolUp:               "up",
	SymbolDown:             "down",
	SymbolLeft:             "left",
	SymbolRight:            "right",
	SymbolDuplicate:        "duplicate",
	SymbolToggle:           "toggle",
	SymbolNoEntryDisabled:  "noEntryDisabled",
	SymbolNoEntry:          "noEntry",
	SymbolTrash:            "trash",
	SymbolAdd:              "add",
	SymbolSubtract:         "subtract",
	SymbolMultiply:         "multiply",
	SymbolDivide:           "divide",
	SymbolModulo:           "modulo",
	SymbolEqual:            "equal",
	SymbolConstInt:         "constInt",
	SymbolConstCharacter:   "constCharacter",
	SymbolDie:              "die",
	SymbolInput:            "input",
	SymbolPrint:            "print",
	SymbolSound:            "sound",
	SymbolStop:             "stop",
}

// SymbolTypes lists every symbol type in declaration order.
func SymbolTypes() []SymbolType {
	out := make([]SymbolType, 0, symbolTypeCount)
	for t := SymbolType(0); t < symbolTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// String returns the persisted tag of the symbol type.
func (t SymbolType) String() string {
	if t < symbolTypeCount {
		return symbolTags[t]
	}
	return fmt.Sprintf("SymbolType(%d)", uint8(t))
}

// ParseSymbolType resolves a persisted tag into a SymbolType.
func ParseSymbolType(tag string) (SymbolType, error) {
	for i, s := range symbolTags {
		if s == tag {
			return SymbolType(i), nil
		}
	}
	return SymbolEmpty, fmt.Errorf("unknown symbol type %q", tag)
}

// MarshalText implements encoding.TextMarshaler.
func (t SymbolType) MarshalText() ([]byte, error) {
	if t >= symbolTypeCount {
		return nil, fmt.Errorf("invalid symbol type %d", uint8(t))
	}
	return []byte(symbolTags[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SymbolType) UnmarshalText(b []byte) error {
	parsed, err := ParseSymbolType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Valued reports whether symbols of this type carry a static integer.
func (t SymbolType) Valued() bool {
	switch t {
	case SymbolVarInt, SymbolVarCharacter, SymbolConstInt, SymbolConstCharacter:
		return true
	}
	return false
}

// Redirects reports whether the type is one of the direction-changing cells.
func (t SymbolType) Redirects() bool {
	switch t {
	case SymbolUp, SymbolDown, SymbolLeft, SymbolRight, SymbolDuplicate:
		return true
	}
	return false
}

// Symbol is a single program cell. HasValue marks whether Value is
// meaningful; die cells gain a value only once rolled during a run.
type Symbol struct {
	Type     SymbolType
	Value    int
	HasValue bool
}

// Plain returns a symbol of type t with no value.
func Plain(t SymbolType) Symbol { return Symbol{Type: t} }

// Valued returns a symbol of type t carrying v clamped to the value domain.
func Valued(t SymbolType, v int) Symbol {
	return Symbol{Type: t, Value: ClampValue(v), HasValue: true}
}

// Number returns the numeric value a constant-like cell exposes.
func (s Symbol) Number() (int, bool) {
	switch s.Type {
	case SymbolConstInt, SymbolConstCharacter, SymbolDie:
		return s.Value, s.HasValue
	}
	return 0, false
}

// IsEmpty reports whether the symbol is the empty cell.
func (s Symbol) IsEmpty() bool { return s.Type == SymbolEmpty }

func (s Symbol) String() string {
	if s.HasValue {
		return fmt.Sprintf("%s(%d)", s.Type, s.Value)
	}
	return s.Type.String()
}

// Value domain bounds shared by tokens and constants.
const (
	MinValue = 0
	MaxValue = 50
)

// ClampValue restricts v to [MinValue, MaxValue].
func ClampValue(v int) int {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// Package program reads and writes persisted symbol programs.
//
// A document is a JSON object {"fileVersion": 1, "canvas": ...}. The canvas
// maps positions to symbols and is written as a flat array alternating a
// position object and a symbol object:
//
//	[{"row":0,"column":1},{"type":"varInt","intValue":3}, ...]
//
// Decoding also accepts an object keyed by "row,column" strings.
package program

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"symbol-code/internal/core"
)

// FileVersion is written into every encoded document.
const FileVersion = 1

// ErrDecode wraps every decoding failure.
var ErrDecode = errors.New("program: decode")

// Document is a persisted program.
type Document struct {
	FileVersion int
	Canvas      map[core.Position]core.Symbol
}

// NewDocument wraps the cells of g in a document.
func NewDocument(g *core.Grid) Document {
	return Document{FileVersion: FileVersion, Canvas: g.Cells()}
}

// Grid builds a program grid of the given size from the canvas. Cells are
// kept even if they fall outside size.
func (d Document) Grid(size core.Size) *core.Grid {
	g := core.NewGrid(size)
	for p, s := range d.Canvas {
		g.Set(p, s)
	}
	return g
}

type wireDocument struct {
	FileVersion int             `json:"fileVersion"`
	Canvas      json.RawMessage `json:"canvas"`
}

type wirePosition struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type wireSymbol struct {
	Type     core.SymbolType `json:"type"`
	IntValue *int            `json:"intValue,omitempty"`
}

func toWire(s core.Symbol) wireSymbol {
	w := wireSymbol{Type: s.Type}
	if s.HasValue {
		v := s.Value
		w.IntValue = &v
	}
	return w
}

func fromWire(w wireSymbol) (core.Symbol, error) {
	s := core.Symbol{Type: w.Type}
	if w.IntValue != nil {
		if *w.IntValue < core.MinValue || *w.IntValue > core.MaxValue {
			return s, fmt.Errorf("%s value %d out of range", w.Type, *w.IntValue)
		}
		s.Value, s.HasValue = *w.IntValue, true
	}
	if w.Type.Valued() && !s.HasValue {
		return s, fmt.Errorf("%s requires an intValue", w.Type)
	}
	return s, nil
}

// Encode serializes d with positions in row-major order.
func Encode(d Document) ([]byte, error) {
	g := core.NewGrid(core.Size{})
	for p, s := range d.Canvas {
		g.Set(p, s)
	}
	canvas := make([]any, 0, 2*g.Len())
	for _, p := range g.Positions() {
		canvas = append(canvas, wirePosition{Row: p.Row, Column: p.Column}, toWire(g.Get(p)))
	}
	raw, err := json.Marshal(canvas)
	if err != nil {
		return nil, fmt.Errorf("program: encode canvas: %w", err)
	}
	version := d.FileVersion
	if version == 0 {
		version = FileVersion
	}
	return json.Marshal(wireDocument{FileVersion: version, Canvas: raw})
}

// Decode parses a document. Unknown fields are ignored.
func Decode(data []byte) (Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	canvas, err := decodeCanvas(w.Canvas)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Document{FileVersion: w.FileVersion, Canvas: canvas}, nil
}

// DecodeLenient parses a document, yielding an empty canvas on failure.
func DecodeLenient(data []byte) Document {
	d, err := Decode(data)
	if err != nil {
		return Document{FileVersion: FileVersion, Canvas: map[core.Position]core.Symbol{}}
	}
	return d
}

// DecodeCanvas parses a bare canvas, as used by bundled templates.
func DecodeCanvas(data []byte) (map[core.Position]core.Symbol, error) {
	canvas, err := decodeCanvas(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return canvas, nil
}

func decodeCanvas(raw json.RawMessage) (map[core.Position]core.Symbol, error) {
	canvas := make(map[core.Position]core.Symbol)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return canvas, nil
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		if len(items)%2 != 0 {
			return nil, fmt.Errorf("canvas array has odd length %d", len(items))
		}
		for i := 0; i < len(items); i += 2 {
			var wp wirePosition
			if err := json.Unmarshal(items[i], &wp); err != nil {
				return nil, fmt.Errorf("canvas entry %d position: %w", i/2, err)
			}
			s, err := decodeSymbol(items[i+1])
			if err != nil {
				return nil, fmt.Errorf("canvas entry %d: %w", i/2, err)
			}
			canvas[core.Position{Row: wp.Row, Column: wp.Column}] = s
		}
	case '{':
		var items map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		for key, item := range items {
			p, err := parseKey(key)
			if err != nil {
				return nil, err
			}
			s, err := decodeSymbol(item)
			if err != nil {
				return nil, fmt.Errorf("canvas entry %q: %w", key, err)
			}
			canvas[p] = s
		}
	default:
		return nil, fmt.Errorf("canvas must be an array or object")
	}
	for p, s := range canvas {
		if s.IsEmpty() {
			delete(canvas, p)
		}
	}
	return canvas, nil
}

func decodeSymbol(raw json.RawMessage) (core.Symbol, error) {
	var ws wireSymbol
	if err := json.Unmarshal(raw, &ws); err != nil {
		return core.Symbol{}, err
	}
	return fromWire(ws)
}

func parseKey(key string) (core.Position, error) {
	r, c, ok := strings.Cut(key, ",")
	if !ok {
		return core.Position{}, fmt.Errorf("canvas key %q is not \"row,column\"", key)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return core.Position{}, fmt.Errorf("canvas key %q: %w", key, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return core.Position{}, fmt.Errorf("canvas key %q: %w", key, err)
	}
	return core.Position{Row: row, Column: col}, nil
}

// Load reads a document from path. Read errors are returned; malformed
// contents decode to an empty canvas.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("program: read %s: %w", path, err)
	}
	return DecodeLenient(data), nil
}

// Save writes d to path.
func Save(path string, d Document) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("program: write %s: %w", path, err)
	}
	return nil
}

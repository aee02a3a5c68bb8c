package program

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"symbol-code/internal/core"
	"symbol-code/internal/engine"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCanvas(r *rand.Rand, n int) map[core.Position]core.Symbol {
	types := core.SymbolTypes()[1:]
	canvas := make(map[core.Position]core.Symbol, n)
	for i := 0; i < n; i++ {
		p := core.Position{Row: r.IntN(40), Column: r.IntN(40)}
		t := types[r.IntN(len(types))]
		if t.Valued() {
			canvas[p] = core.Valued(t, r.IntN(core.MaxValue+1))
			continue
		}
		canvas[p] = core.Plain(t)
	}
	return canvas
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		canvas := randomCanvas(r, r.IntN(60))
		data, err := Encode(Document{FileVersion: FileVersion, Canvas: canvas})
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, FileVersion, got.FileVersion)
		if diff := cmp.Diff(canvas, got.Canvas); diff != "" {
			t.Fatalf("round trip %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestEncodeWritesAlternatingArray(t *testing.T) {
	data, err := Encode(Document{Canvas: map[core.Position]core.Symbol{
		{Row: 1, Column: 0}: core.Plain(core.SymbolPrint),
		{Row: 0, Column: 2}: core.Valued(core.SymbolConstInt, 9),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"fileVersion": 1,
		"canvas": [
			{"row": 0, "column": 2}, {"type": "constInt", "intValue": 9},
			{"row": 1, "column": 0}, {"type": "print"}
		]
	}`, string(data))
}

func TestDecodeObjectKeyedCanvas(t *testing.T) {
	doc, err := Decode([]byte(`{
		"fileVersion": 1,
		"extra": {"ignored": true},
		"canvas": {
			"0,1": {"type": "varInt", "intValue": 3, "color": "blue"},
			"2, 4": {"type": "trash"}
		}
	}`))
	require.NoError(t, err)
	want := map[core.Position]core.Symbol{
		{Row: 0, Column: 1}: core.Valued(core.SymbolVarInt, 3),
		{Row: 2, Column: 4}: core.Plain(core.SymbolTrash),
	}
	if diff := cmp.Diff(want, doc.Canvas); diff != "" {
		t.Fatalf("canvas mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"unknown type":   `{"canvas":[{"row":0,"column":0},{"type":"teleport"}]}`,
		"odd array":      `{"canvas":[{"row":0,"column":0}]}`,
		"missing value":  `{"canvas":[{"row":0,"column":0},{"type":"constInt"}]}`,
		"value too high": `{"canvas":[{"row":0,"column":0},{"type":"varInt","intValue":51}]}`,
		"bad key":        `{"canvas":{"a":{"type":"add"}}}`,
		"scalar canvas":  `{"canvas":5}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(input))
			require.ErrorIs(t, err, ErrDecode)

			doc := DecodeLenient([]byte(input))
			assert.Empty(t, doc.Canvas)
		})
	}
}

func TestDecodeMissingCanvasIsEmpty(t *testing.T) {
	doc, err := Decode([]byte(`{"fileVersion": 1}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Canvas)
}

func TestGridKeepsOutOfBoundsCells(t *testing.T) {
	doc := Document{Canvas: map[core.Position]core.Symbol{
		{Row: 30, Column: 30}: core.Plain(core.SymbolAdd),
	}}
	g := doc.Grid(core.DefaultSize)
	assert.Equal(t, core.SymbolAdd, g.Get(core.Position{Row: 30, Column: 30}).Type)
	assert.Equal(t, core.DefaultSize, g.Size())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.symbolcode")
	g, err := Template("count-to-10")
	require.NoError(t, err)
	require.NoError(t, Save(path, NewDocument(g)))

	doc, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(g.Cells(), doc.Canvas); diff != "" {
		t.Fatalf("loaded canvas mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	doc, err = Load(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Canvas)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestTemplatesRegistered(t *testing.T) {
	for _, name := range []string{"empty", "empty-xl", "hello-world", "count-to-10"} {
		f, ok := core.Templates()[name]
		require.True(t, ok, name)
		assert.NotNil(t, f())
	}
	assert.Equal(t, core.LargeSize, core.Templates()["empty-xl"]().Size())
	_, err := Template("nope")
	assert.Error(t, err)
}

func runToEnd(t *testing.T, g *core.Grid) string {
	t.Helper()
	var out strings.Builder
	e := engine.New(g, engine.Options{
		AlwaysNewline: true,
		Observer: engine.ObserverFuncs{
			OnPrinted: func(segs []engine.Segment) {
				for _, s := range segs {
					out.WriteString(s.String())
				}
			},
		},
	})
	require.True(t, e.Start())
	for i := 0; i < 1000 && e.Running(); i++ {
		e.Advance()
	}
	require.False(t, e.Running(), "program did not terminate")
	return out.String()
}

func TestCountToTenTemplate(t *testing.T) {
	g, err := Template("count-to-10")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n", runToEnd(t, g))
}

func TestHelloWorldTemplate(t *testing.T) {
	g, err := Template("hello-world")
	require.NoError(t, err)
	got := strings.ReplaceAll(runToEnd(t, g), "\n", "")
	assert.Equal(t, "HELLO WORLD", got)
}

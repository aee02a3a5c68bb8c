package program

import (
	"embed"
	"fmt"

	"symbol-code/internal/core"
)

//go:embed templates/*.json
var bundled embed.FS

// Template loads a bundled canvas by name at the default grid size.
func Template(name string) (*core.Grid, error) {
	data, err := bundled.ReadFile("templates/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("program: unknown template %q", name)
	}
	canvas, err := DecodeCanvas(data)
	if err != nil {
		return nil, fmt.Errorf("program: template %q: %w", name, err)
	}
	return Document{FileVersion: FileVersion, Canvas: canvas}.Grid(core.DefaultSize), nil
}

func mustTemplate(name string) core.Factory {
	return func() *core.Grid {
		g, err := Template(name)
		if err != nil {
			panic(err)
		}
		return g
	}
}

func init() {
	core.Register("empty", func() *core.Grid { return core.NewGrid(core.DefaultSize) })
	core.Register("empty-xl", func() *core.Grid { return core.NewGrid(core.LargeSize) })
	core.Register("hello-world", mustTemplate("hello-world"))
	core.Register("count-to-10", mustTemplate("count-to-10"))
}

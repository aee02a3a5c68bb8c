package core

// Position addresses a grid cell by row and column.
type Position struct {
	Row    int
	Column int
}

// Step returns the position one cell away in the given direction.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Column: p.Column + dc}
}

// Size describes the dimensions of a program grid.
type Size struct {
	Rows    int
	Columns int
}

// Grid presets offered by the editor.
var (
	DefaultSize = Size{Rows: 10, Columns: 16}
	LargeSize   = Size{Rows: 16, Columns: 24}
)

// Contains reports whether p lies inside the grid bounds.
func (s Size) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < s.Rows && p.Column >= 0 && p.Column < s.Columns
}

// Direction is the heading of a moving token.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the row and column offsets of a single move.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool { return d == Left || d == Right }

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Neighbor is an in-bounds cell orthogonally adjacent to some position,
// together with the direction leading to it.
type Neighbor struct {
	Direction Direction
	Position  Position
}

// Neighbors enumerates the in-bounds neighbors of p in the fixed order
// up, down, left, right.
func (s Size) Neighbors(p Position) []Neighbor {
	out := make([]Neighbor, 0, 4)
	for _, d := range [...]Direction{Up, Down, Left, Right} {
		n := p.Step(d)
		if s.Contains(n) {
			out = append(out, Neighbor{Direction: d, Position: n})
		}
	}
	return out
}

// Factory builds a fresh program grid.
type Factory func() *Grid

var templates = map[string]Factory{}

// Register adds a program template under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	templates[name] = f
}

// Templates exposes the registry of available program templates.
func Templates() map[string]Factory {
	return templates
}

package grid

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	astar "github.com/pdrpinto/gridastar"
)

// Scenario is a grid together with the endpoints of a search across it.
type Scenario struct {
	Grid  *Grid
	Start astar.Location
	Goal  astar.Location
}

// scenarioFile is the YAML layout of a scenario:
//
//	diagonal: false
//	start: [0, 0]
//	goal: [4, 2]
//	rows:
//	  - "S..#."
//	  - ".3.#."
//	  - "....G"
type scenarioFile struct {
	Diagonal *bool    `yaml:"diagonal"`
	Start    []int    `yaml:"start"`
	Goal     []int    `yaml:"goal"`
	Rows     []string `yaml:"rows"`
}

// Parse builds a scenario from text rows, top row first. '#' is a wall, '.'
// a free cell, '1'-'9' a cell of that value, 'S' the start and 'G' the goal.
func Parse(rows []string, diagonal bool) (*Scenario, error) {
	scenario, hasStart, hasGoal, err := parseRows(rows, diagonal)
	if err != nil {
		return nil, err
	}
	if !hasStart || !hasGoal {
		return nil, fmt.Errorf("%w: rows need one 'S' and one 'G'", ErrInvalidScenario)
	}
	return scenario, nil
}

// Decode reads a YAML scenario. Explicit start and goal keys take precedence
// over 'S' and 'G' markers in the rows.
func Decode(r io.Reader) (*Scenario, error) {
	var file scenarioFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	diagonal := true
	if file.Diagonal != nil {
		diagonal = *file.Diagonal
	}
	scenario, hasStart, hasGoal, err := parseRows(file.Rows, diagonal)
	if err != nil {
		return nil, err
	}

	if file.Start != nil {
		if scenario.Start, err = pointFromYAML("start", file.Start); err != nil {
			return nil, err
		}
		hasStart = true
	}
	if file.Goal != nil {
		if scenario.Goal, err = pointFromYAML("goal", file.Goal); err != nil {
			return nil, err
		}
		hasGoal = true
	}
	if !hasStart || !hasGoal {
		return nil, fmt.Errorf("%w: start and goal are required", ErrInvalidScenario)
	}
	for name, loc := range map[string]astar.Location{"start": scenario.Start, "goal": scenario.Goal} {
		if !scenario.Grid.Passable(loc) {
			return nil, fmt.Errorf("%w: %s %s is not a passable cell", ErrInvalidScenario, name, loc)
		}
	}
	return scenario, nil
}

// LoadFile reads a YAML scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	scenario, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

func parseRows(rows []string, diagonal bool) (*Scenario, bool, bool, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, false, false, fmt.Errorf("%w: no rows", ErrInvalidScenario)
	}
	width := len(rows[0])
	g, err := New(width, len(rows), WithDiagonal(diagonal))
	if err != nil {
		return nil, false, false, err
	}

	scenario := &Scenario{Grid: g}
	var hasStart, hasGoal bool
	for y, row := range rows {
		if len(row) != width {
			return nil, false, false, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidScenario, y, len(row), width)
		}
		for x, cell := range row {
			loc := astar.NewLocation(x, y)
			switch {
			case cell == '.':
			case cell == '#':
				g.cells[y*width+x] = Wall
			case cell >= '1' && cell <= '9':
				g.cells[y*width+x] = int(cell - '0')
			case cell == 'S':
				if hasStart {
					return nil, false, false, fmt.Errorf("%w: second 'S' at %s", ErrInvalidScenario, loc)
				}
				scenario.Start, hasStart = loc, true
			case cell == 'G':
				if hasGoal {
					return nil, false, false, fmt.Errorf("%w: second 'G' at %s", ErrInvalidScenario, loc)
				}
				scenario.Goal, hasGoal = loc, true
			default:
				return nil, false, false, fmt.Errorf("%w: unknown cell %q at %s", ErrInvalidScenario, cell, loc)
			}
		}
	}
	return scenario, hasStart, hasGoal, nil
}

func pointFromYAML(name string, values []int) (astar.Location, error) {
	if len(values) != 2 {
		return astar.Location{}, fmt.Errorf("%w: %s must be [x, y]", ErrInvalidScenario, name)
	}
	return astar.NewLocation(values[0], values[1]), nil
}

// Render draws the grid as text rows using the Parse alphabet, with '*'
// marking path cells other than the start and goal. Values above 9 print as '+'.
func (g *Grid) Render(path []astar.Location, start, goal astar.Location) string {
	onPath := make(map[astar.Location]bool, len(path))
	for _, loc := range path {
		onPath[loc] = true
	}

	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			loc := astar.NewLocation(x, y)
			value := g.Value(loc)
			switch {
			case loc == start:
				b.WriteByte('S')
			case loc == goal:
				b.WriteByte('G')
			case onPath[loc]:
				b.WriteByte('*')
			case value == Wall:
				b.WriteByte('#')
			case value == 0:
				b.WriteByte('.')
			case value <= 9:
				b.WriteByte(byte('0' + value))
			default:
				b.WriteByte('+')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

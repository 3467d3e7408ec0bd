// Package grid is a rectangular 2D map for astar. Every cell carries an
// integer value added to the cost of stepping onto it; Wall cells cannot be
// entered at all. Movement is 8-connected unless diagonal moves are disabled,
// and a step costs its Euclidean length plus the destination cell's value.
package grid

import (
	"errors"
	"fmt"
	"math"

	astar "github.com/pdrpinto/gridastar"
)

// Wall is the cell value of an impassable cell.
const Wall = math.MaxInt32

// MaxCells is the largest number of cells New accepts.
const MaxCells = 1 << 26

// ErrInvalidScenario is returned for malformed grids and scenario files.
var ErrInvalidScenario = errors.New("grid: invalid scenario")

// Grid is a width x height map. The zero value is not usable; call New.
type Grid struct {
	width    int
	height   int
	cells    []int
	diagonal bool
}

// Option configures a Grid.
type Option func(*Grid)

// WithDiagonal enables or disables diagonal moves. They are enabled by default.
func WithDiagonal(enabled bool) Option {
	return func(g *Grid) { g.diagonal = enabled }
}

// New returns a grid with every cell set to 0.
func New(width, height int, options ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidScenario, width, height)
	}
	if width > MaxCells/height {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d cells", ErrInvalidScenario, width, height, MaxCells)
	}
	g := &Grid{
		width:    width,
		height:   height,
		cells:    make([]int, width*height),
		diagonal: true,
	}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

func (g *Grid) Width() int     { return g.width }
func (g *Grid) Height() int    { return g.height }
func (g *Grid) Diagonal() bool { return g.diagonal }

// InBounds reports whether loc lies on the grid.
func (g *Grid) InBounds(loc astar.Location) bool {
	return loc.X >= 0 && loc.X < g.width && loc.Y >= 0 && loc.Y < g.height
}

// Value returns the cell value at loc. Cells off the grid read as Wall.
func (g *Grid) Value(loc astar.Location) int {
	if !g.InBounds(loc) {
		return Wall
	}
	return g.cells[loc.Y*g.width+loc.X]
}

// Set stores value at loc.
func (g *Grid) Set(loc astar.Location, value int) error {
	if !g.InBounds(loc) {
		return fmt.Errorf("%w: %s is outside %dx%d", ErrInvalidScenario, loc, g.width, g.height)
	}
	if value < 0 {
		return fmt.Errorf("%w: negative value %d at %s", ErrInvalidScenario, value, loc)
	}
	g.cells[loc.Y*g.width+loc.X] = value
	return nil
}

// Passable reports whether loc is on the grid and not a wall.
func (g *Grid) Passable(loc astar.Location) bool {
	return g.Value(loc) != Wall
}

// Neighbors implements astar.Map.
func (g *Grid) Neighbors(loc astar.Location) []astar.Neighbor {
	neighbors := make([]astar.Neighbor, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx != 0 && dy != 0 && !g.diagonal {
				continue
			}
			next := loc.Add(dx, dy)
			if !g.Passable(next) {
				continue
			}
			step := 1.0
			if dx != 0 && dy != 0 {
				step = math.Sqrt2
			}
			neighbors = append(neighbors, astar.Neighbor{
				Location: next,
				Cost:     step + float64(g.Value(next)),
			})
		}
	}
	return neighbors
}

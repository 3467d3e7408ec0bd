package grid

import (
	"fmt"
	"math/rand"

	astar "github.com/pdrpinto/gridastar"
)

// GenerateParams shapes the random walls of Generate.
type GenerateParams struct {
	Width    int
	Height   int
	Clusters int
	Steps    int
	Density  float64
	Diagonal bool
}

// DefaultGenerateParams is a 40x24 grid with a moderate amount of walls.
var DefaultGenerateParams = GenerateParams{
	Width:    40,
	Height:   24,
	Clusters: 8,
	Steps:    200,
	Density:  0.25,
	Diagonal: true,
}

// Generate builds a scenario with clustered random walls laid down by random
// walks. Start and goal are distinct random cells and are never walls.
func Generate(params GenerateParams, rng *rand.Rand) (*Scenario, error) {
	if params.Width <= 0 || params.Height <= 0 || (params.Width == 1 && params.Height == 1) {
		return nil, fmt.Errorf("%w: size %dx%d is too small", ErrInvalidScenario, params.Width, params.Height)
	}
	g, err := New(params.Width, params.Height, WithDiagonal(params.Diagonal))
	if err != nil {
		return nil, err
	}

	var start, goal astar.Location
	for start == goal {
		start = astar.NewLocation(rng.Intn(params.Width), rng.Intn(params.Height))
		goal = astar.NewLocation(rng.Intn(params.Width), rng.Intn(params.Height))
	}

	directions := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for c := 0; c < params.Clusters; c++ {
		p := astar.NewLocation(rng.Intn(params.Width), rng.Intn(params.Height))
		for s := 0; s < params.Steps; s++ {
			if rng.Float64() < params.Density && p != start && p != goal {
				g.cells[p.Y*g.width+p.X] = Wall
			}
			d := directions[rng.Intn(len(directions))]
			if next := p.Add(d[0], d[1]); g.InBounds(next) {
				p = next
			}
		}
	}
	return &Scenario{Grid: g, Start: start, Goal: goal}, nil
}

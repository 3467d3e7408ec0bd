package grid

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/pdrpinto/gridastar"
)

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 3}, {3, 0}, {-1, -1}, {MaxCells + 1, 1}, {1 << 20, 1 << 20}, {3037000500, 3037000500}} {
		_, err := New(size[0], size[1])
		require.ErrorIs(t, err, ErrInvalidScenario, "size %dx%d", size[0], size[1])
	}
}

func TestGrid_Neighbors(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)

	corner := g.Neighbors(astar.NewLocation(0, 0))
	want := []astar.Neighbor{
		{Location: astar.NewLocation(1, 0), Cost: 1},
		{Location: astar.NewLocation(0, 1), Cost: 1},
		{Location: astar.NewLocation(1, 1), Cost: math.Sqrt2},
	}
	if diff := cmp.Diff(want, corner); diff != "" {
		t.Errorf("neighbors mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, g.Neighbors(astar.NewLocation(1, 1)), 8)

	straight, err := New(3, 3, WithDiagonal(false))
	require.NoError(t, err)
	assert.Len(t, straight.Neighbors(astar.NewLocation(0, 0)), 2)
	assert.Len(t, straight.Neighbors(astar.NewLocation(1, 1)), 4)
}

func TestGrid_NeighborsSkipWallsAndAddValues(t *testing.T) {
	g, err := New(3, 3, WithDiagonal(false))
	require.NoError(t, err)
	require.NoError(t, g.Set(astar.NewLocation(1, 0), 3))
	require.NoError(t, g.Set(astar.NewLocation(0, 1), Wall))

	neighbors := g.Neighbors(astar.NewLocation(0, 0))
	require.Len(t, neighbors, 1)
	assert.Equal(t, astar.NewLocation(1, 0), neighbors[0].Location)
	assert.Equal(t, 4.0, neighbors[0].Cost)
}

func TestGrid_ValueAndBounds(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	assert.True(t, g.InBounds(astar.NewLocation(1, 1)))
	assert.False(t, g.InBounds(astar.NewLocation(2, 0)))
	assert.False(t, g.InBounds(astar.NewLocation(0, -1)))
	assert.Equal(t, Wall, g.Value(astar.NewLocation(5, 5)))
	assert.False(t, g.Passable(astar.NewLocation(5, 5)))

	require.ErrorIs(t, g.Set(astar.NewLocation(2, 2), 1), ErrInvalidScenario)
	require.ErrorIs(t, g.Set(astar.NewLocation(0, 0), -1), ErrInvalidScenario)
	require.NoError(t, g.Set(astar.NewLocation(0, 0), 7))
	assert.Equal(t, 7, g.Value(astar.NewLocation(0, 0)))
}

func TestParse(t *testing.T) {
	scenario, err := Parse([]string{
		"S.#",
		"4.G",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, astar.NewLocation(0, 0), scenario.Start)
	assert.Equal(t, astar.NewLocation(2, 1), scenario.Goal)
	assert.Equal(t, 3, scenario.Grid.Width())
	assert.Equal(t, 2, scenario.Grid.Height())
	assert.False(t, scenario.Grid.Diagonal())
	assert.Equal(t, Wall, scenario.Grid.Value(astar.NewLocation(2, 0)))
	assert.Equal(t, 4, scenario.Grid.Value(astar.NewLocation(0, 1)))
	assert.Equal(t, 0, scenario.Grid.Value(scenario.Start))
}

func TestParse_Errors(t *testing.T) {
	cases := map[string][]string{
		"no rows":      nil,
		"empty row":    {""},
		"ragged":       {"S..", "G."},
		"unknown cell": {"S?G"},
		"two starts":   {"S.S", "..G"},
		"two goals":    {"S.G", "..G"},
		"no goal":      {"S.."},
		"no start":     {"..G"},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(rows, true)
			require.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestDecode(t *testing.T) {
	scenario, err := Decode(strings.NewReader(`
diagonal: false
rows:
  - "S..#"
  - ".2.G"
`))
	require.NoError(t, err)
	assert.Equal(t, astar.NewLocation(0, 0), scenario.Start)
	assert.Equal(t, astar.NewLocation(3, 1), scenario.Goal)
	assert.Equal(t, 2, scenario.Grid.Value(astar.NewLocation(1, 1)))
	assert.False(t, scenario.Grid.Diagonal())
}

func TestDecode_ExplicitEndpoints(t *testing.T) {
	scenario, err := Decode(strings.NewReader(`
start: [0, 1]
goal: [2, 0]
rows:
  - "S.."
  - "..G"
`))
	require.NoError(t, err)
	assert.Equal(t, astar.NewLocation(0, 1), scenario.Start)
	assert.Equal(t, astar.NewLocation(2, 0), scenario.Goal)
	assert.True(t, scenario.Grid.Diagonal())
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]string{
		"not yaml":         "rows: [",
		"unknown key":      "rows: [\"S.G\"]\nspeed: 3\n",
		"missing goal":     "rows: [\"S..\"]\n",
		"bad point":        "goal: [1]\nrows: [\"S..\"]\n",
		"goal on wall":     "goal: [1, 0]\nrows: [\"S#.\"]\n",
		"start off grid":   "start: [9, 9]\nrows: [\"..G\"]\n",
		"no rows at all":   "diagonal: true\n",
		"ragged yaml rows": "rows: [\"S.\", \"..G\"]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestLoadFile(t *testing.T) {
	_, err := LoadFile(t.TempDir() + "/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open scenario")
}

func TestRender(t *testing.T) {
	scenario, err := Parse([]string{
		"S..",
		"##5",
		"G..",
	}, false)
	require.NoError(t, err)

	path := []astar.Location{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	require.NoError(t, scenario.Grid.Set(astar.NewLocation(1, 2), 12))
	got := scenario.Grid.Render(path, scenario.Start, scenario.Goal)
	assert.Equal(t, "S**\n##5\nG+.\n", got)
}

func TestGenerate(t *testing.T) {
	params := GenerateParams{Width: 15, Height: 10, Clusters: 4, Steps: 60, Density: 0.5, Diagonal: true}

	first, err := Generate(params, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := Generate(params, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.NotEqual(t, first.Start, first.Goal)
	assert.True(t, first.Grid.Passable(first.Start))
	assert.True(t, first.Grid.Passable(first.Goal))
	assert.Equal(t, 15, first.Grid.Width())
	assert.Equal(t, 10, first.Grid.Height())
	assert.Equal(t, first.Grid.Render(nil, first.Start, first.Goal), second.Grid.Render(nil, second.Start, second.Goal))

	_, err = Generate(GenerateParams{Width: 1, Height: 1}, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidScenario)
	_, err = Generate(GenerateParams{Width: -2, Height: -3}, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidScenario)

	// The product of these sides overflows int.
	_, err = Generate(GenerateParams{Width: 3037000500, Height: 3037000500}, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidScenario)
	assert.NotContains(t, err.Error(), "too small")
	assert.Contains(t, err.Error(), "exceeds")
}

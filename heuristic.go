package astar

import (
	"fmt"
	"math"
	"strings"
)

// Zero always estimates 0, which turns the search into Dijkstra's algorithm.
func Zero(from, to Location) float64 { return 0 }

// Manhattan is the 4-connected grid distance.
func Manhattan(from, to Location) float64 {
	return float64(abs(from.X-to.X) + abs(from.Y-to.Y))
}

// Euclidean is the straight-line distance.
func Euclidean(from, to Location) float64 {
	return math.Hypot(float64(from.X-to.X), float64(from.Y-to.Y))
}

// Octile is the exact distance on an empty 8-connected grid where diagonal
// steps cost sqrt(2).
func Octile(from, to Location) float64 {
	dx, dy := abs(from.X-to.X), abs(from.Y-to.Y)
	lo, hi := min(dx, dy), max(dx, dy)
	return float64(hi-lo) + math.Sqrt2*float64(lo)
}

// Chebyshev is the 8-connected distance where every step costs 1.
func Chebyshev(from, to Location) float64 {
	return float64(max(abs(from.X-to.X), abs(from.Y-to.Y)))
}

// HeuristicByName looks up one of the heuristics above by its lower-case name.
func HeuristicByName(name string) (Heuristic, error) {
	switch strings.ToLower(name) {
	case "zero", "dijkstra":
		return Zero, nil
	case "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "octile":
		return Octile, nil
	case "chebyshev":
		return Chebyshev, nil
	}
	return nil, fmt.Errorf("unknown heuristic %q", name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package astar

import "strconv"

// Location is a cell on a 2D integer grid. It is a plain value type and is
// used directly as a map key; two locations are equal iff both coordinates match.
type Location struct {
	X int
	Y int
}

// NewLocation returns the location (x, y).
func NewLocation(x, y int) Location {
	return Location{X: x, Y: y}
}

// Add returns the location offset by (dx, dy).
func (l Location) Add(dx, dy int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// Hash is a deterministic function of (X, Y). Equal locations always hash equally.
func (l Location) Hash() uint64 {
	result := uint64(41)
	result = 93*result + uint64(int64(l.X))
	result = 93*result + uint64(int64(l.Y))
	return result
}

func (l Location) String() string {
	return "(" + strconv.Itoa(l.X) + "," + strconv.Itoa(l.Y) + ")"
}

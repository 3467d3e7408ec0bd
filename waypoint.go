package astar

import "github.com/pdrpinto/gridastar/internal"

// Waypoint is a search node as seen by the Frontier. Values must stay stable
// while the waypoint sits in the open or closed set.
type Waypoint interface {
	Location() Location
	// PreviousCost is the cost accumulated from the start (g).
	PreviousCost() float64
	// TotalCost is PreviousCost plus the heuristic estimate to the goal (f).
	TotalCost() float64
}

// Node is the Waypoint used by Search and Stepper. It links back to the node
// it was reached from so the path can be rebuilt once the goal is found.
type Node struct {
	Loc      Location
	Previous *Node
	Cost     float64
	Estimate float64
}

func (n *Node) Location() Location    { return n.Loc }
func (n *Node) PreviousCost() float64 { return n.Cost }
func (n *Node) TotalCost() float64    { return n.Cost + n.Estimate }

// Path returns the locations from the start node up to and including n.
func (n *Node) Path() []Location {
	if n == nil {
		return nil
	}
	nodes := internal.ReconstructPath(n, func(current *Node) (*Node, bool) {
		return current.Previous, current.Previous != nil
	})
	path := make([]Location, len(nodes))
	for i, node := range nodes {
		path[i] = node.Loc
	}
	return path
}

package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode(t *testing.T) {
	start := &Node{Loc: NewLocation(0, 0), Estimate: 4}
	middle := &Node{Loc: NewLocation(1, 0), Previous: start, Cost: 1, Estimate: 3}
	end := &Node{Loc: NewLocation(1, 1), Previous: middle, Cost: 2.5, Estimate: 1}

	var w Waypoint = end
	assert.Equal(t, NewLocation(1, 1), w.Location())
	assert.Equal(t, 2.5, w.PreviousCost())
	assert.Equal(t, 3.5, w.TotalCost())

	assert.Equal(t, []Location{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, end.Path())
	assert.Equal(t, []Location{{X: 0, Y: 0}}, start.Path())

	var none *Node
	assert.Nil(t, none.Path())
}

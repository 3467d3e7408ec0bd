// Package astar provides A* pathfinding over 2D integer grids.
//
// The core is Frontier, the open/closed bookkeeping of a best-first search:
// it holds the discovered but unexpanded waypoints, the expanded ones, and
// hands out the open waypoint with the lowest total cost. Callers that bring
// their own search loop use it directly:
//
//	frontier, err := astar.NewFrontier(m)
//	frontier.AddOpen(start)
//	for {
//		current, ok := frontier.MinOpen()
//		if !ok || current.Location() == goal {
//			break
//		}
//		// offer neighbors with frontier.AddOpen
//		_ = frontier.Close(current.Location())
//	}
//
// Two entry points run that loop for you:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Both relax neighbors on a worker pool while a single orchestrator owns the
// frontier. Package grid provides a ready-made Map.
package astar

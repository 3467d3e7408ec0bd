package astar

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Location
	Open      map[Location]bool
	Closed    map[Location]bool
	Done      bool
	Found     bool
	Path      []Location
	TotalCost float64
	StepIndex int
}

// Stepper runs the same loop as Search one expansion at a time, for UIs or
// debugging tools. Call Close when done with it.
type Stepper struct {
	run       *orchestrator
	stepCount int
	done      bool
	found     bool
	last      *Node
	err       error
}

// NewStepper creates a new stepper using the same worker-based expansion logic as Search
func NewStepper(
	parent context.Context,
	m Map,
	startNode Location,
	goalNode Location,
	heuristic Heuristic,
	options ...Option,
) (*Stepper, error) {
	run, err := newOrchestrator(parent, m, startNode, goalNode, heuristic, buildOptions(options))
	if err != nil {
		return nil, err
	}
	return &Stepper{run: run}, nil
}

// Close stops the workers
func (s *Stepper) Close() {
	if s.run != nil {
		s.run.stop()
	}
}

// Frontier gives read access to the frontier driven by the stepper.
func (s *Stepper) Frontier() *Frontier { return s.run.frontier }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done every further call returns the final snapshot.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.done {
		return s.snapshot(), s.err
	}

	outcome, err := s.run.step()
	if outcome.current != nil {
		s.last = outcome.current
	}
	if err != nil {
		s.done = true
		s.err = err
		return s.snapshot(), err
	}
	if outcome.done {
		s.done = true
		s.found = outcome.found
		return s.snapshot(), nil
	}
	s.stepCount++
	return s.snapshot(), nil
}

func (s *Stepper) snapshot() StepSnapshot {
	snapshot := StepSnapshot{
		Open:      locationSet(s.run.frontier.OpenLocations()),
		Closed:    locationSet(s.run.frontier.ClosedLocations()),
		Done:      s.done,
		Found:     s.found,
		StepIndex: s.stepCount,
	}
	if s.last != nil {
		snapshot.Current = s.last.Loc
	}
	if s.found {
		snapshot.Path = s.last.Path()
		snapshot.TotalCost = s.last.Cost
	}
	return snapshot
}

func locationSet(locations []Location) map[Location]bool {
	set := make(map[Location]bool, len(locations))
	for _, location := range locations {
		set[location] = true
	}
	return set
}

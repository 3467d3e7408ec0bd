package astar

import (
	"container/heap"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

var (
	// ErrNilMap is returned by NewFrontier when no map is given.
	ErrNilMap = errors.New("astar: map cannot be nil")
	// ErrNotOpen is returned by Frontier.Close for a location that has no open waypoint.
	ErrNotOpen = errors.New("astar: location is not open")
)

// Frontier holds the open and closed waypoints of one search. Each location
// is Unvisited, Open or Closed; Closed is terminal unless WithReopen is set.
//
// A Frontier is owned by a single search and is not safe for concurrent use.
type Frontier struct {
	searchMap Map

	open      openQueue
	openIndex map[Location]*openEntry
	closed    map[Location]Waypoint
	sequence  uint64

	reopen       bool
	lenientClose bool
	logger       *zap.Logger
}

// FrontierOption configures a Frontier.
type FrontierOption func(*Frontier)

// WithReopen lets AddOpen accept a closed location again when the new
// waypoint has a strictly lower previous cost than the closed one. The
// location is moved back to the open set, so open and closed stay disjoint.
func WithReopen() FrontierOption {
	return func(frontier *Frontier) { frontier.reopen = true }
}

// WithLenientClose makes Close a no-op for locations that are not open
// instead of returning ErrNotOpen.
func WithLenientClose() FrontierOption {
	return func(frontier *Frontier) { frontier.lenientClose = true }
}

// WithFrontierLogger sets the logger used for debug output.
func WithFrontierLogger(logger *zap.Logger) FrontierOption {
	return func(frontier *Frontier) {
		if logger != nil {
			frontier.logger = logger
		}
	}
}

// NewFrontier creates an empty frontier over m.
func NewFrontier(m Map, options ...FrontierOption) (*Frontier, error) {
	if isNil(m) {
		return nil, ErrNilMap
	}
	frontier := &Frontier{
		searchMap: m,
		openIndex: make(map[Location]*openEntry),
		closed:    make(map[Location]Waypoint),
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(frontier)
	}
	heap.Init(&frontier.open)
	return frontier, nil
}

// Map returns the map the search is navigating.
func (f *Frontier) Map() Map { return f.searchMap }

// OpenCount returns the number of open waypoints.
func (f *Frontier) OpenCount() int { return len(f.openIndex) }

// ClosedCount returns the number of closed waypoints.
func (f *Frontier) ClosedCount() int { return len(f.closed) }

// AddOpen adds w to the open set, or replaces the open waypoint at the same
// location when w has a strictly lower previous cost. It reports whether the
// open set changed. Closed locations are rejected unless WithReopen is set.
// A nil waypoint, including a typed nil pointer, is ignored.
func (f *Frontier) AddOpen(w Waypoint) bool {
	if isNil(w) {
		return false
	}
	location := w.Location()

	if closed, isClosed := f.closed[location]; isClosed {
		if !f.reopen || w.PreviousCost() >= closed.PreviousCost() {
			f.logger.Debug("rejected waypoint at closed location",
				zap.Stringer("location", location),
				zap.Float64("previous_cost", w.PreviousCost()))
			return false
		}
		delete(f.closed, location)
		f.logger.Debug("reopened closed location", zap.Stringer("location", location))
	}

	if entry, exists := f.openIndex[location]; exists {
		if w.PreviousCost() < entry.Waypoint.PreviousCost() {
			entry.Waypoint = w
			entry.Sequence = f.nextSequence()
			heap.Fix(&f.open, entry.IndexInQueue)
			return true
		}
		return false
	}

	entry := &openEntry{Waypoint: w, Sequence: f.nextSequence()}
	heap.Push(&f.open, entry)
	f.openIndex[location] = entry
	return true
}

// MinOpen returns the open waypoint with the lowest total cost without
// removing it. Among equal total costs the earliest inserted one wins.
func (f *Frontier) MinOpen() (Waypoint, bool) {
	if f.open.Len() == 0 {
		return nil, false
	}
	return f.open[0].Waypoint, true
}

// Close moves the open waypoint at loc to the closed set.
func (f *Frontier) Close(loc Location) error {
	entry, exists := f.openIndex[loc]
	if !exists {
		if f.lenientClose {
			f.logger.Debug("ignored close of location that is not open", zap.Stringer("location", loc))
			return nil
		}
		return fmt.Errorf("close %s: %w", loc, ErrNotOpen)
	}
	heap.Remove(&f.open, entry.IndexInQueue)
	delete(f.openIndex, loc)
	f.closed[loc] = entry.Waypoint
	return nil
}

// IsClosed reports whether loc is in the closed set.
func (f *Frontier) IsClosed(loc Location) bool {
	_, closed := f.closed[loc]
	return closed
}

// IsOpen reports whether loc is in the open set.
func (f *Frontier) IsOpen(loc Location) bool {
	_, open := f.openIndex[loc]
	return open
}

// Open returns the open waypoint at loc.
func (f *Frontier) Open(loc Location) (Waypoint, bool) {
	entry, ok := f.openIndex[loc]
	if !ok {
		return nil, false
	}
	return entry.Waypoint, true
}

// Closed returns the closed waypoint at loc.
func (f *Frontier) Closed(loc Location) (Waypoint, bool) {
	w, ok := f.closed[loc]
	return w, ok
}

// OpenLocations returns the open locations in no particular order.
func (f *Frontier) OpenLocations() []Location {
	locations := make([]Location, 0, len(f.openIndex))
	for location := range f.openIndex {
		locations = append(locations, location)
	}
	return locations
}

// ClosedLocations returns the closed locations in no particular order.
func (f *Frontier) ClosedLocations() []Location {
	locations := make([]Location, 0, len(f.closed))
	for location := range f.closed {
		locations = append(locations, location)
	}
	return locations
}

func (f *Frontier) nextSequence() uint64 {
	f.sequence++
	return f.sequence
}

// isNil also catches interfaces holding a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return value.IsNil()
	}
	return false
}

package astar

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/zap"
)

var (
	// ErrNoPath is returned when the open set runs out before the goal is reached.
	ErrNoPath = errors.New("no path found")
	// ErrExpansionLimit is returned when WithMaxExpansions is exceeded.
	ErrExpansionLimit = errors.New("expansion limit reached")
)

// Map is the space a search navigates.
type Map interface {
	Neighbors(loc Location) []Neighbor
}

// Neighbor represents a reachable location with the cost of moving there.
type Neighbor struct {
	Location Location
	Cost     float64
}

// Heuristic returns the estimated cost from one location to another.
type Heuristic func(from Location, to Location) float64

// Result contains the outcome of a search
type Result struct {
	Path          []Location
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	MaxExpansions   int
	Logger          *zap.Logger
	FrontierOptions []FrontierOption
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should relax neighbors.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions stops the search with ErrExpansionLimit after n
// expansions. Zero means no limit.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithLogger sets the logger for the search and its frontier.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithFrontier passes options through to the frontier the search creates.
func WithFrontier(frontierOptions ...FrontierOption) Option {
	return func(options *Options) {
		options.FrontierOptions = append(options.FrontierOptions, frontierOptions...)
	}
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = zap.NewNop()
	}
	return searchOptions
}

// Search runs A* from start to goal over m. Neighbor relaxation is spread
// over a worker pool while a single orchestrator owns the frontier.
func Search(
	ctx context.Context,
	m Map,
	startNode Location,
	goalNode Location,
	heuristic Heuristic,
	options ...Option,
) (Result, error) {
	run, err := newOrchestrator(ctx, m, startNode, goalNode, heuristic, buildOptions(options))
	if err != nil {
		return Result{}, err
	}
	defer run.stop()

	for {
		outcome, err := run.step()
		if err != nil {
			return Result{ExpandedNodes: run.expanded}, err
		}
		if !outcome.done {
			continue
		}
		if !outcome.found {
			return Result{ExpandedNodes: run.expanded}, ErrNoPath
		}
		return Result{
			Path:          outcome.current.Path(),
			TotalCost:     outcome.current.Cost,
			ExpandedNodes: run.expanded,
			Found:         true,
		}, nil
	}
}

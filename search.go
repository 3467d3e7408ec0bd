package astar

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type stepOutcome struct {
	current *Node
	done    bool
	found   bool
}

// orchestrator owns the frontier of one search and feeds the worker pool.
type orchestrator struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	frontier  *Frontier
	goal      Location
	heuristic Heuristic

	tasks     chan ExpandTask
	proposals chan *Node

	maxExpansions int
	expanded      int
	logger        *zap.Logger
}

func newOrchestrator(
	parent context.Context,
	m Map,
	startNode Location,
	goalNode Location,
	heuristic Heuristic,
	options Options,
) (*orchestrator, error) {
	if heuristic == nil {
		heuristic = Zero
	}
	frontierOptions := append([]FrontierOption{WithFrontierLogger(options.Logger)}, options.FrontierOptions...)
	frontier, err := NewFrontier(m, frontierOptions...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	group, groupCtx := errgroup.WithContext(ctx)
	run := &orchestrator{
		ctx:           ctx,
		cancel:        cancel,
		group:         group,
		frontier:      frontier,
		goal:          goalNode,
		heuristic:     heuristic,
		tasks:         make(chan ExpandTask),
		proposals:     make(chan *Node),
		maxExpansions: options.MaxExpansions,
		logger:        options.Logger,
	}

	for i := 0; i < options.NumberOfWorkers; i++ {
		group.Go(func() error {
			return expandWorker(groupCtx, run.tasks, run.proposals)
		})
	}

	frontier.AddOpen(&Node{Loc: startNode, Estimate: heuristic(startNode, goalNode)})
	run.logger.Debug("search started",
		zap.Stringer("start", startNode),
		zap.Stringer("goal", goalNode),
		zap.Int("workers", options.NumberOfWorkers))
	return run, nil
}

// stop cancels the workers and waits for them to exit.
func (run *orchestrator) stop() {
	run.cancel()
	_ = run.group.Wait()
}

// step expands the cheapest open node, or reports that the search is over.
func (run *orchestrator) step() (stepOutcome, error) {
	if err := run.ctx.Err(); err != nil {
		return stepOutcome{done: true}, err
	}

	waypoint, ok := run.frontier.MinOpen()
	if !ok {
		run.logger.Debug("open set exhausted", zap.Int("expanded", run.expanded))
		return stepOutcome{done: true}, nil
	}
	// Only *Node values are ever offered to the frontier.
	current := waypoint.(*Node)

	if current.Loc == run.goal {
		run.logger.Debug("goal reached",
			zap.Float64("cost", current.Cost),
			zap.Int("expanded", run.expanded))
		return stepOutcome{current: current, done: true, found: true}, nil
	}
	if run.maxExpansions > 0 && run.expanded >= run.maxExpansions {
		return stepOutcome{current: current, done: true},
			fmt.Errorf("after %d expansions: %w", run.expanded, ErrExpansionLimit)
	}

	neighbors := run.frontier.Map().Neighbors(current.Loc)
	if err := run.relaxNeighbors(current, neighbors); err != nil {
		return stepOutcome{current: current, done: true}, err
	}
	if err := run.frontier.Close(current.Loc); err != nil {
		return stepOutcome{current: current, done: true}, err
	}
	run.expanded++
	return stepOutcome{current: current}, nil
}

// relaxNeighbors hands every neighbor to the workers and offers the returned
// candidates to the frontier. Sending and receiving are interleaved so a small
// pool never blocks on a large neighborhood.
func (run *orchestrator) relaxNeighbors(current *Node, neighbors []Neighbor) error {
	sent, received := 0, 0
	for received < len(neighbors) {
		var tasks chan<- ExpandTask
		var next ExpandTask
		if sent < len(neighbors) {
			tasks = run.tasks
			next = ExpandTask{
				From:          current,
				Neighbor:      neighbors[sent],
				GoalNode:      run.goal,
				HeuristicFunc: run.heuristic,
			}
		}

		select {
		case <-run.ctx.Done():
			return run.ctx.Err()
		case tasks <- next:
			sent++
		case proposal := <-run.proposals:
			received++
			run.frontier.AddOpen(proposal)
		}
	}
	return nil
}

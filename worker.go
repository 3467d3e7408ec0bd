package astar

import "context"

// ExpandTask represents a request from the orchestrator to the workers.
type ExpandTask struct {
	From          *Node
	Neighbor      Neighbor
	GoalNode      Location
	HeuristicFunc Heuristic
}

// relax turns the task into a candidate node for the neighbor.
func (task ExpandTask) relax() *Node {
	tentativeG := task.From.Cost + task.Neighbor.Cost
	return &Node{
		Loc:      task.Neighbor.Location,
		Previous: task.From,
		Cost:     tentativeG,
		Estimate: task.HeuristicFunc(task.Neighbor.Location, task.GoalNode),
	}
}

// expandWorker relaxes tasks until the context is done.
func expandWorker(ctx context.Context, tasks <-chan ExpandTask, proposals chan<- *Node) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case task := <-tasks:
			proposal := task.relax()
			select {
			case <-ctx.Done():
				return nil
			case proposals <- proposal:
			}
		}
	}
}

package astar

// openEntry is a waypoint held in the open set together with its heap position.
type openEntry struct {
	Waypoint     Waypoint
	Sequence     uint64
	IndexInQueue int
}

// openQueue orders open entries by total cost. Entries with equal total cost
// come out in insertion order.
type openQueue []*openEntry

func (queue openQueue) Len() int { return len(queue) }
func (queue openQueue) Less(i, j int) bool {
	fi, fj := queue[i].Waypoint.TotalCost(), queue[j].Waypoint.TotalCost()
	if fi != fj {
		return fi < fj
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue openQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *openQueue) Push(x any) {
	entry := x.(*openEntry)
	entry.IndexInQueue = len(*queue)
	*queue = append(*queue, entry)
}

func (queue *openQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	entry := oldQueue[n-1]
	oldQueue[n-1] = nil
	entry.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return entry
}

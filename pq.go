package astar

// PriorityQueueItem is one open-frontier entry. IndexInQueue is kept current
// by the queue so heap.Fix can apply a decrease-key in O(log n).
type PriorityQueueItem struct {
	Node         Coordinate
	GScore       int
	HScore       int
	FCost        int
	Sequence     uint64
	IndexInQueue int
}

// PriorityQueue orders items by FCost, then HScore, then Sequence
// (discovery order), so expansion order is fully determined by the grid.
type PriorityQueue []*PriorityQueueItem

func (queue PriorityQueue) Len() int { return len(queue) }

func (queue PriorityQueue) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	if a.HScore != b.HScore {
		return a.HScore < b.HScore
	}
	return a.Sequence < b.Sequence
}

func (queue PriorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

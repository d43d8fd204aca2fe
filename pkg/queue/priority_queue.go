package queue

import (
	"container/heap"
	"sync"
)

// taskHeap is a max-heap keyed by Priority.
type taskHeap []*Task

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].Priority > h[j].Priority }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*Task))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	task := old[n-1]
	old[n-1] = nil // release the reference held by the backing array
	*h = old[:n-1]
	return task
}

// PriorityQueue is a concurrency-safe max-priority container.
//
// Push and Pop are O(log n) and never block beyond the structural update.
// Tasks with equal priority are equal for ordering purposes: their relative
// order is unspecified and is not FIFO.
type PriorityQueue struct {
	mu   sync.Mutex
	heap taskHeap
}

// NewPriorityQueue creates an empty queue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{heap: make(taskHeap, 0, 64)}
}

// Push inserts a task. Nil tasks are ignored.
func (q *PriorityQueue) Push(task *Task) {
	if task == nil {
		return
	}

	q.mu.Lock()
	heap.Push(&q.heap, task)
	q.mu.Unlock()
}

// Pop removes and returns the highest-priority task.
// It returns false immediately when the queue is empty.
func (q *PriorityQueue) Pop() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.heap) == 0 {
		return nil, false
	}
	return heap.Pop(&q.heap).(*Task), true
}

// Len returns the number of queued tasks at the time of the call.
func (q *PriorityQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

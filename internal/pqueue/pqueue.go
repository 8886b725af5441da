// Package pqueue provides the min-heap priority queue backing the
// shortest-path engines.
package pqueue

import "container/heap"

type item struct {
	node     int64
	priority float64
}

type itemHeap []item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(item)) }

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue is a min-heap of node ids keyed by a numeric priority.
// Ties are broken arbitrarily.
type Queue struct {
	h itemHeap
}

func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push inserts node with the given priority in O(log n).
func (q *Queue) Push(node int64, priority float64) {
	heap.Push(&q.h, item{node: node, priority: priority})
}

// Pop removes and returns the node with the smallest priority in O(log n).
// Popping an empty queue is a programming error and panics.
func (q *Queue) Pop() int64 {
	if len(q.h) == 0 {
		panic("pqueue: pop from empty queue")
	}
	return heap.Pop(&q.h).(item).node
}

func (q *Queue) Empty() bool { return len(q.h) == 0 }

func (q *Queue) Len() int { return len(q.h) }

package event

import (
	"container/heap"
	"time"
)

// scheduled is one pending event
type scheduled[O comparable] struct {
	owner  O
	action Action
	at     time.Duration
	seq    uint64
	index  int // position in the heap, -1 once popped or removed
}

// eventQueue is a min-heap ordered by (at, seq)
type eventQueue[O comparable] []*scheduled[O]

var _ heap.Interface = (*eventQueue[int])(nil)

func (q eventQueue[O]) Len() int { return len(q) }

func (q eventQueue[O]) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue[O]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue[O]) Push(x any) {
	ev := x.(*scheduled[O])
	ev.index = len(*q)
	*q = append(*q, ev)
}

func (q *eventQueue[O]) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*q = old[:n-1]
	return ev
}

// peek returns the earliest event without removing it
func (q eventQueue[O]) peek() *scheduled[O] {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

package event

import (
	"container/heap"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/minesim/status"
)

// Handler executes an action on behalf of its owner
// It may schedule or cancel events, including for the owner itself
type Handler[O comparable] func(owner O, action Action)

// Option configures a Scheduler
type Option[O comparable] func(*Scheduler[O])

// WithLiveness makes the scheduler skip events whose owner is no longer live
func WithLiveness[O comparable](live func(O) bool) Option[O] {
	return func(s *Scheduler[O]) {
		s.live = live
	}
}

// WithStatus publishes fired/cancelled/skipped counters to reg
func WithStatus[O comparable](reg *status.Registry) Option[O] {
	return func(s *Scheduler[O]) {
		s.statFired = reg.Ints.Get(status.SchedulerFired)
		s.statCancelled = reg.Ints.Get(status.SchedulerCancelled)
		s.statSkipped = reg.Ints.Get(status.SchedulerSkipped)
	}
}

// Scheduler owns the virtual clock and the time-ordered queue of pending events
// Single-threaded: Schedule, CancelAll and Drain must be called from one goroutine,
// handlers run synchronously inside Drain
type Scheduler[O comparable] struct {
	now     time.Duration
	nextSeq uint64

	queue   eventQueue[O]
	pending map[O]map[*scheduled[O]]struct{} // owner -> its pending events

	handler Handler[O]
	live    func(O) bool

	statFired     *atomic.Int64
	statCancelled *atomic.Int64
	statSkipped   *atomic.Int64
}

// NewScheduler creates a scheduler at virtual time zero
func NewScheduler[O comparable](handler Handler[O], opts ...Option[O]) *Scheduler[O] {
	s := &Scheduler[O]{
		pending:       make(map[O]map[*scheduled[O]]struct{}),
		handler:       handler,
		statFired:     new(atomic.Int64),
		statCancelled: new(atomic.Int64),
		statSkipped:   new(atomic.Int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the virtual clock
func (s *Scheduler[O]) Now() time.Duration {
	return s.now
}

// Len returns the number of pending events
func (s *Scheduler[O]) Len() int {
	return len(s.queue)
}

// Pending returns the number of pending events owned by owner
func (s *Scheduler[O]) Pending(owner O) int {
	return len(s.pending[owner])
}

// NextAt returns the trigger time of the earliest pending event
func (s *Scheduler[O]) NextAt() (time.Duration, bool) {
	if ev := s.queue.peek(); ev != nil {
		return ev.at, true
	}
	return 0, false
}

// Schedule queues action for owner at Now()+delay; negative delays fire now
func (s *Scheduler[O]) Schedule(owner O, action Action, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	ev := &scheduled[O]{
		owner:  owner,
		action: action,
		at:     s.now + delay,
		seq:    s.nextSeq,
	}
	s.nextSeq++
	heap.Push(&s.queue, ev)

	set := s.pending[owner]
	if set == nil {
		set = make(map[*scheduled[O]]struct{})
		s.pending[owner] = set
	}
	set[ev] = struct{}{}
}

// CancelAll drops every pending event of owner and returns how many were dropped
// Safe with no pending events and from inside a handler, including the owner's own
func (s *Scheduler[O]) CancelAll(owner O) int {
	set, ok := s.pending[owner]
	if !ok {
		return 0
	}
	delete(s.pending, owner)
	for ev := range set {
		if ev.index >= 0 {
			heap.Remove(&s.queue, ev.index)
		}
	}
	s.statCancelled.Add(int64(len(set)))
	return len(set)
}

// Drain fires, in (time, insertion) order, every event due at or before upTo,
// including events scheduled by handlers during this drain
// The clock follows each fired event and ends at upTo; it never moves backwards
func (s *Scheduler[O]) Drain(upTo time.Duration) int {
	fired := 0
	for {
		ev := s.queue.peek()
		if ev == nil || ev.at > upTo {
			break
		}
		heap.Pop(&s.queue)
		s.forget(ev)
		if ev.at > s.now {
			s.now = ev.at
		}

		if s.live != nil && !s.live(ev.owner) {
			s.statSkipped.Add(1)
			continue
		}
		s.handler(ev.owner, ev.action)
		fired++
		s.statFired.Add(1)
	}
	if upTo > s.now {
		s.now = upTo
	}
	return fired
}

// Advance drains everything due within d of the current clock
func (s *Scheduler[O]) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	return s.Drain(s.now + d)
}

// forget removes a popped event from its owner's index
func (s *Scheduler[O]) forget(ev *scheduled[O]) {
	set := s.pending[ev.owner]
	delete(set, ev)
	if len(set) == 0 {
		delete(s.pending, ev.owner)
	}
}

package fetch

import "fmt"

// State is the slot lifecycle: Idle --start--> InFlight --finish--> Idle.
type State int

const (
	Idle State = iota
	InFlight
)

func (s State) String() string {
	if s == InFlight {
		return "in-flight"
	}
	return "idle"
}

// Operation is a blocking data retrieval run on a background goroutine.
type Operation[T any] func() (T, error)

// Outcome is what one Poll observed. Pending outcomes carry no value.
type Outcome[T any] struct {
	Ready bool
	Key   string // request key the finished task was issued for
	Value T
	Err   error
}

// Pending reports whether the task is still running.
func (o Outcome[T]) Pending() bool { return !o.Ready }

type task[T any] struct {
	key   string
	done  chan struct{}
	value T
	err   error
}

// Slot tracks at most one outstanding background request for one logical
// data need. It is driven from a single goroutine (the redraw loop); the only
// cross-goroutine handoff is the task result, published by closing done.
// The zero value is an idle slot.
type Slot[T any] struct {
	inflight *task[T]
}

// Poll never blocks. With no task in flight it starts op tagged with key.
// While the task runs it returns a pending outcome. Once the task has finished
// it hands the result over exactly once and the slot returns to Idle.
//
// A task is never cancelled: a hung operation keeps the slot in flight and
// suppresses further fetches for this slot.
func (s *Slot[T]) Poll(key string, op Operation[T]) Outcome[T] {
	if s.inflight == nil {
		s.inflight = start(key, op)
	}

	t := s.inflight
	select {
	case <-t.done:
		s.inflight = nil
		return Outcome[T]{Ready: true, Key: t.key, Value: t.value, Err: t.err}
	default:
		return Outcome[T]{}
	}
}

// State returns Idle or InFlight.
func (s *Slot[T]) State() State {
	if s.inflight == nil {
		return Idle
	}
	return InFlight
}

// Key returns the request key of the in-flight task, or "" when idle.
func (s *Slot[T]) Key() string {
	if s.inflight == nil {
		return ""
	}
	return s.inflight.key
}

func start[T any](key string, op Operation[T]) *task[T] {
	t := &task[T]{key: key, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("fetch %s panicked: %v", key, r)
			}
		}()
		t.value, t.err = op()
	}()
	return t
}

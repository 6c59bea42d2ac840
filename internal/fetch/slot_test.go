package fetch

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// waitReady polls the slot until it delivers or the deadline passes.
func waitReady[T any](t *testing.T, s *Slot[T], key string, op Operation[T]) Outcome[T] {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out := s.Poll(key, op); out.Ready {
			return out
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("slot never became ready")
	return Outcome[T]{}
}

func TestPoll_AtMostOneInFlight(t *testing.T) {
	var spawned atomic.Int32
	gate := make(chan struct{})
	op := func() (int, error) {
		spawned.Add(1)
		<-gate
		return 42, nil
	}

	var s Slot[int]
	for i := 0; i < 100; i++ {
		if out := s.Poll("TSLA", op); out.Ready {
			t.Fatalf("poll %d: expected pending before the task finishes", i)
		}
	}
	if s.State() != InFlight {
		t.Fatalf("expected in-flight, got %s", s.State())
	}
	close(gate)

	out := waitReady(t, &s, "TSLA", op)
	if out.Value != 42 || out.Err != nil {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if n := spawned.Load(); n != 1 {
		t.Errorf("expected exactly 1 task spawned, got %d", n)
	}
}

func TestPoll_ExactlyOnceDelivery(t *testing.T) {
	var calls atomic.Int32
	block := make(chan struct{})
	op := func() (string, error) {
		if calls.Add(1) == 1 {
			return "first", nil
		}
		<-block
		return "second", nil
	}
	defer close(block)

	var s Slot[string]
	out := waitReady(t, &s, "AAPL", op)
	if out.Value != "first" {
		t.Fatalf("expected first result, got %q", out.Value)
	}
	if s.State() != Idle {
		t.Fatalf("expected idle after delivery, got %s", s.State())
	}

	// The next polls start a fresh task and never re-deliver "first".
	for i := 0; i < 50; i++ {
		if out := s.Poll("AAPL", op); out.Ready {
			t.Fatalf("poll %d re-delivered a result: %+v", i, out)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("expected 2 operations, got %d", n)
	}
}

func TestPoll_HungTaskSuppressesNewFetches(t *testing.T) {
	var spawned atomic.Int32
	hang := make(chan struct{})
	defer close(hang)
	op := func() (int, error) {
		spawned.Add(1)
		<-hang
		return 0, nil
	}

	var s Slot[int]
	for i := 0; i < 20; i++ {
		s.Poll("NVDA", op)
		time.Sleep(time.Millisecond)
	}
	if s.State() != InFlight {
		t.Errorf("expected slot to stay in flight, got %s", s.State())
	}
	if n := spawned.Load(); n > 1 {
		t.Errorf("expected 1 task, got %d", n)
	}
}

func TestPoll_KeyOfIssuedRequest(t *testing.T) {
	gate := make(chan struct{})
	op := func() (int, error) {
		<-gate
		return 1, nil
	}

	var s Slot[int]
	s.Poll("TSLA|1d", op)
	if s.Key() != "TSLA|1d" {
		t.Fatalf("expected in-flight key TSLA|1d, got %q", s.Key())
	}
	close(gate)

	// Polling with a new key does not restart the running task; the outcome
	// carries the key it was issued for.
	out := waitReady(t, &s, "AAPL|1d", op)
	if out.Key != "TSLA|1d" {
		t.Errorf("expected outcome key TSLA|1d, got %q", out.Key)
	}
	if s.Key() != "" {
		t.Errorf("expected empty key when idle, got %q", s.Key())
	}
}

func TestPoll_ErrorAndPanic(t *testing.T) {
	errBoom := errors.New("boom")

	var s Slot[int]
	out := waitReady(t, &s, "X", func() (int, error) { return 0, errBoom })
	if !errors.Is(out.Err, errBoom) {
		t.Errorf("expected errBoom, got %v", out.Err)
	}

	out = waitReady(t, &s, "Y", func() (int, error) { panic("bad payload") })
	if out.Err == nil {
		t.Error("expected panic to surface as an error")
	}
	if s.State() != Idle {
		t.Errorf("expected idle after panic delivery, got %s", s.State())
	}
}

package core

import (
	"math/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func newTestHub(mock *clock.Mock) *Hub {
	opts := Options{
		Rand: rand.New(rand.NewSource(1)),
	}
	if mock != nil {
		opts.Clock = mock
	}
	return NewHub(opts)
}

// mustEvent waits for the next event of the given kind, skipping others.
// Polling with a real-time deadline covers events produced by timer
// goroutines as well as synchronous commands.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// expectNoEvent drains everything currently buffered and fails if an event
// of the given kind is among it. Commands deliver synchronously, so a
// forbidden event would already be in the buffer by the time this runs.
func expectNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	for {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		default:
			return
		}
	}
}

// waitFor polls a condition with a real-time deadline; used where a timer
// goroutine is the one advancing state.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func drainEvents(ch <-chan *Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

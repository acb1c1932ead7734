package core

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

func TestAssignPrefersOldestRoomWithSpace(t *testing.T) {
	hub := newTestHub(nil)

	members := make([]*Client, 0, DefaultCapacity)
	for i := 0; i < DefaultCapacity; i++ {
		members = append(members, hub.Connect(fmt.Sprintf("u%d", i)))
	}
	overflow := hub.Connect("overflow")
	first := mustEvent(t, members[0].Events, EventRoomInfo).Info.RoomID
	second := mustEvent(t, overflow.Events, EventRoomInfo).Info.RoomID
	if first == second {
		t.Fatal("overflow participant joined a full room")
	}

	// A freed seat in the older room wins over the newer room.
	hub.Disconnect(members[3])
	late := hub.Connect("late")
	if got := mustEvent(t, late.Events, EventRoomInfo).Info.RoomID; got != first {
		t.Fatalf("expected assignment to %q, got %q", first, got)
	}
}

func TestRegistryCreatesUniqueRoomIDs(t *testing.T) {
	nop := zerolog.Nop()
	names := NewNameGenerator(rand.New(rand.NewSource(1)))
	// Capacity 1 forces a new room per assignment.
	reg := NewRegistry(1, DefaultBreakDuration, clock.New(), names, &nop)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		r := reg.Assign(NewClient(fmt.Sprintf("u%d", i), "user", 1))
		if seen[r.ID] {
			t.Fatalf("duplicate room id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if stats := reg.Stats(); len(stats) != 50 {
		t.Fatalf("expected 50 rooms, got %d", len(stats))
	}
}

func TestReleaseUnknownRoomIsNoOp(t *testing.T) {
	nop := zerolog.Nop()
	names := NewNameGenerator(rand.New(rand.NewSource(1)))
	reg := NewRegistry(DefaultCapacity, DefaultBreakDuration, clock.New(), names, &nop)

	c := NewClient("u1", "user", 1)
	r := reg.Assign(c)
	reg.Release(r, c)
	// Second release lost the teardown race on purpose.
	reg.Release(r, c)

	if stats := reg.Stats(); len(stats) != 0 {
		t.Fatalf("expected empty registry, got %+v", stats)
	}
}

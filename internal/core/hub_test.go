package core

import (
	"fmt"
	"testing"

	"github.com/benbjohnson/clock"
)

func TestConnectAssignsRoomAndGreets(t *testing.T) {
	hub := newTestHub(nil)

	c := hub.Connect("u1")

	info := mustEvent(t, c.Events, EventRoomInfo).Info
	if len(info.RoomID) != roomIDLength {
		t.Fatalf("unexpected room id %q", info.RoomID)
	}
	if info.UserName != c.Name || info.UserName == "" {
		t.Fatalf("unexpected user name %q", info.UserName)
	}
	if info.TotalUsers != 1 {
		t.Fatalf("expected total_users 1, got %d", info.TotalUsers)
	}
	if info.QueuePosition != 0 {
		t.Fatalf("expected no queue position, got %d", info.QueuePosition)
	}

	update := mustEvent(t, c.Events, EventRoomUpdate).Update
	if update.TotalUsers != 1 || update.CurrentSpeaker != "" || len(update.SpeakerQueue) != 0 {
		t.Fatalf("unexpected room update: %+v", update)
	}
}

func TestEighthConnectionOpensSecondRoom(t *testing.T) {
	hub := newTestHub(nil)

	var first string
	for i := 0; i < DefaultCapacity; i++ {
		c := hub.Connect(fmt.Sprintf("u%d", i))
		info := mustEvent(t, c.Events, EventRoomInfo).Info
		if i == 0 {
			first = info.RoomID
		} else if info.RoomID != first {
			t.Fatalf("participant %d landed in %q, want %q", i, info.RoomID, first)
		}
	}

	c := hub.Connect("overflow")
	info := mustEvent(t, c.Events, EventRoomInfo).Info
	if info.RoomID == first {
		t.Fatalf("overflow participant joined the full room %q", first)
	}

	stats := hub.RoomStats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(stats))
	}
	if stats[0].Members != DefaultCapacity || stats[1].Members != 1 {
		t.Fatalf("unexpected member counts: %+v", stats)
	}
}

func TestQueueOrderAndFloorGrant(t *testing.T) {
	hub := newTestHub(nil)
	a := hub.Connect("a")
	b := hub.Connect("b")
	drainEvents(a.Events)
	drainEvents(b.Events)

	hub.RequestSpeak(a)
	if pos := mustEvent(t, a.Events, EventQueueUpdate).Queue.Position; pos != 1 {
		t.Fatalf("expected position 1, got %d", pos)
	}
	hub.RequestSpeak(b)
	if pos := mustEvent(t, b.Events, EventQueueUpdate).Queue.Position; pos != 2 {
		t.Fatalf("expected position 2, got %d", pos)
	}

	update := mustEvent(t, b.Events, EventRoomUpdate).Update
	if len(update.SpeakerQueue) != 2 || update.SpeakerQueue[0] != a.Name || update.SpeakerQueue[1] != b.Name {
		t.Fatalf("queue order does not match request order: %+v", update.SpeakerQueue)
	}

	// Not the queue head: no grant, no event.
	hub.StartSpeaking(b)
	expectNoEvent(t, a.Events, EventSpeakingStatus)

	hub.StartSpeaking(a)
	status := mustEvent(t, b.Events, EventSpeakingStatus).Speaking
	if status.Speaker != a.Name {
		t.Fatalf("expected speaker %q, got %q", a.Name, status.Speaker)
	}

	stats := hub.RoomStats()[0]
	if !stats.Speaking || stats.QueueLength != 1 {
		t.Fatalf("unexpected room state after grant: %+v", stats)
	}
}

func TestRequestSpeakIdempotent(t *testing.T) {
	hub := newTestHub(nil)
	a := hub.Connect("a")
	hub.RequestSpeak(a)
	drainEvents(a.Events)

	hub.RequestSpeak(a)

	expectNoEvent(t, a.Events, EventQueueUpdate)
	expectNoEvent(t, a.Events, EventRoomUpdate)
	if stats := hub.RoomStats()[0]; stats.QueueLength != 1 {
		t.Fatalf("duplicate request changed the queue: %+v", stats)
	}
}

func TestEndSpeakingOpensBreakAndExpiryFreesFloor(t *testing.T) {
	mock := clock.NewMock()
	hub := newTestHub(mock)
	a := hub.Connect("a")
	b := hub.Connect("b")
	hub.RequestSpeak(a)
	hub.StartSpeaking(a)
	drainEvents(a.Events)
	drainEvents(b.Events)

	hub.EndSpeaking(a)

	ended := mustEvent(t, b.Events, EventSpeakingEnded).Ended
	if ended.NextSpeaker != "" {
		t.Fatalf("expected empty next speaker, got %q", ended.NextSpeaker)
	}
	if want := mock.Now().Add(DefaultBreakDuration).Unix(); ended.BreakEndTime != want {
		t.Fatalf("expected break end %d, got %d", want, ended.BreakEndTime)
	}
	if stats := hub.RoomStats()[0]; stats.Speaking || !stats.OnBreak {
		t.Fatalf("expected break state, got %+v", stats)
	}

	// Nobody gets the floor during the break.
	hub.RequestSpeak(b)
	hub.StartSpeaking(b)
	expectNoEvent(t, a.Events, EventSpeakingStatus)

	// The break clears itself; no client action required.
	mock.Add(DefaultBreakDuration)
	waitFor(t, func() bool { return !hub.RoomStats()[0].OnBreak })

	hub.StartSpeaking(b)
	status := mustEvent(t, a.Events, EventSpeakingStatus).Speaking
	if status.Speaker != b.Name {
		t.Fatalf("expected speaker %q after break, got %q", b.Name, status.Speaker)
	}
}

func TestSpeakerDisconnectTriggersBreak(t *testing.T) {
	mock := clock.NewMock()
	hub := newTestHub(mock)
	a := hub.Connect("a")
	b := hub.Connect("b")
	hub.RequestSpeak(a)
	hub.StartSpeaking(a)
	drainEvents(b.Events)

	hub.Disconnect(a)

	ended := mustEvent(t, b.Events, EventSpeakingEnded).Ended
	if want := mock.Now().Add(DefaultBreakDuration).Unix(); ended.BreakEndTime != want {
		t.Fatalf("expected break end %d, got %d", want, ended.BreakEndTime)
	}
	update := mustEvent(t, b.Events, EventRoomUpdate).Update
	if update.TotalUsers != 1 || update.CurrentSpeaker != "" {
		t.Fatalf("unexpected room update after speaker left: %+v", update)
	}
	if stats := hub.RoomStats()[0]; stats.Speaking || !stats.OnBreak {
		t.Fatalf("expected break state, got %+v", stats)
	}
}

func TestDisconnectLastMemberDeletesRoom(t *testing.T) {
	hub := newTestHub(nil)
	a := hub.Connect("a")

	hub.Disconnect(a)
	if stats := hub.RoomStats(); len(stats) != 0 {
		t.Fatalf("expected no rooms, got %+v", stats)
	}

	// Idempotent; commands after disconnect are no-ops.
	hub.Disconnect(a)
	drainEvents(a.Events)
	hub.RequestSpeak(a)
	expectNoEvent(t, a.Events, EventQueueUpdate)
}

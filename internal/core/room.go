package core

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Room is one standup session: capacity-bounded membership, a FIFO queue for
// the speaking floor, at most one current speaker, and a cooldown window
// after every turn.
//
// All turn and membership state is guarded by mu. State-changing commands
// take the write lock and broadcast while holding it, which keeps per-room
// event order consistent (TrySend never blocks). The audio relay only needs
// the read lock, so frames are not serialized behind unrelated state changes.
type Room struct {
	ID string

	clk      clock.Clock
	breakDur time.Duration
	log      *zerolog.Logger

	mu           sync.RWMutex
	members      []*Client // insertion order
	queue        []*Client // waiting for the floor; FIFO, no duplicates
	speaker      *Client
	speakingFrom time.Time
	onBreak      bool
	breakEndsAt  time.Time
	breakTimer   *clock.Timer
	closed       bool
}

func newRoom(id string, clk clock.Clock, breakDur time.Duration, log *zerolog.Logger) *Room {
	return &Room{
		ID:       id,
		clk:      clk,
		breakDur: breakDur,
		log:      log,
	}
}

// memberCount is used by the registry's capacity scan.
func (r *Room) memberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// addMember appends to the membership list. The registry holds its own lock
// around the capacity check and this call, so a room never overfills.
func (r *Room) addMember(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, c)
}

// greet sends the joining participant its room_info and announces the new
// headcount to the whole room.
func (r *Room) greet(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.TrySend(&Event{Kind: EventRoomInfo, Room: r.ID, Info: &RoomInfo{
		RoomID:        r.ID,
		UserName:      c.Name,
		QueuePosition: r.queuePositionLocked(c),
		TotalUsers:    len(r.members),
	}})
	r.broadcastLocked(&Event{Kind: EventRoomUpdate, Room: r.ID, Update: r.updateLocked()})
}

// RequestSpeak appends the participant to the speaker queue and reports the
// 1-indexed position to the requester plus the new queue to the room.
// A duplicate request keeps the original position and emits nothing.
func (r *Room) RequestSpeak(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.isMemberLocked(c) {
		return
	}
	if r.queuePositionLocked(c) != 0 {
		return
	}
	r.queue = append(r.queue, c)
	c.TrySend(&Event{Kind: EventQueueUpdate, Room: r.ID, Queue: &QueuePosition{Position: len(r.queue)}})
	r.broadcastLocked(&Event{Kind: EventRoomUpdate, Room: r.ID, Update: r.updateLocked()})
}

// StartSpeaking grants the floor if the caller heads the queue, nobody holds
// the floor, and the room is not in its break window. Anything else is a
// silent no-op: racing attempts around turn transitions are expected.
func (r *Room) StartSpeaking(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.onBreak || r.speaker != nil {
		return
	}
	if len(r.queue) == 0 || r.queue[0] != c {
		return
	}
	r.queue = r.queue[1:]
	r.speaker = c
	r.speakingFrom = r.clk.Now()
	r.log.Debug().Str("room", r.ID).Str("speaker", c.ID).Msg("floor granted")
	r.broadcastLocked(&Event{Kind: EventSpeakingStatus, Room: r.ID, Speaking: &SpeakingStatus{
		Speaker:   c.Name,
		StartTime: r.speakingFrom.Unix(),
	}})
}

// EndSpeaking releases the floor if the caller holds it and opens the break
// window.
func (r *Room) EndSpeaking(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.speaker != c {
		return
	}
	r.endTurnLocked()
}

// endTurnLocked clears the floor atomically with opening the break window,
// arms the expiry timer and announces the release. Shared by an explicit
// end_speaking and a disconnecting speaker.
func (r *Room) endTurnLocked() {
	r.removeFromQueueLocked(r.speaker)
	r.speaker = nil
	r.speakingFrom = time.Time{}
	r.onBreak = true
	r.breakEndsAt = r.clk.Now().Add(r.breakDur)
	if r.breakTimer != nil {
		r.breakTimer.Stop()
	}
	r.breakTimer = r.clk.AfterFunc(r.breakDur, r.expireBreak)

	next := ""
	if len(r.queue) > 0 {
		next = r.queue[0].Name
	}
	r.log.Debug().Str("room", r.ID).Str("next", next).Time("break_ends", r.breakEndsAt).Msg("floor released")
	r.broadcastLocked(&Event{Kind: EventSpeakingEnded, Room: r.ID, Ended: &SpeakingEnded{
		NextSpeaker:  next,
		BreakEndTime: r.breakEndsAt.Unix(),
	}})
}

// expireBreak fires from the break timer. The deadline is re-checked under
// the room lock so a room torn down in the meantime stays untouched, and the
// room becomes speakable again without any client action.
func (r *Room) expireBreak() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.onBreak || r.clk.Now().Before(r.breakEndsAt) {
		return
	}
	r.onBreak = false
	r.breakEndsAt = time.Time{}
	r.log.Debug().Str("room", r.ID).Msg("break expired")
	r.broadcastLocked(&Event{Kind: EventRoomUpdate, Room: r.ID, Update: r.updateLocked()})
}

// Relay fans one audio frame out to everyone but the sender, provided the
// sender currently holds the floor. Frames from anyone else are dropped:
// a stale sender right after a turn transition is normal, not an error.
func (r *Room) Relay(c *Client, audio []byte) {
	r.mu.RLock()
	if r.closed || r.speaker != c {
		r.mu.RUnlock()
		return
	}
	recipients := make([]*Client, 0, len(r.members)-1)
	for _, m := range r.members {
		if m != c {
			recipients = append(recipients, m)
		}
	}
	name := c.Name
	r.mu.RUnlock()

	ev := &Event{Kind: EventAudioFrame, Room: r.ID, Frame: &AudioFrame{Speaker: name, Audio: audio}}
	for _, m := range recipients {
		if !m.TrySend(ev) {
			r.log.Debug().Str("room", r.ID).Str("client", m.ID).Msg("audio frame dropped, slow consumer")
		}
	}
}

// SendReaction broadcasts a reaction to the whole room, sender included.
// No state changes.
func (r *Room) SendReaction(c *Client, reaction string) {
	r.mu.RLock()
	if r.closed || !r.isMemberLocked(c) {
		r.mu.RUnlock()
		return
	}
	recipients := append([]*Client(nil), r.members...)
	name := c.Name
	r.mu.RUnlock()

	ev := &Event{Kind: EventReaction, Room: r.ID, Reaction: &ReactionNote{User: name, Reaction: reaction}}
	for _, m := range recipients {
		m.TrySend(ev)
	}
}

// ToggleMute flips the advisory mute flag and echoes it to the owner only.
// The relay ignores it: the floor, not the flag, gates audio.
func (r *Room) ToggleMute(c *Client) {
	r.mu.Lock()
	if r.closed || !r.isMemberLocked(c) {
		r.mu.Unlock()
		return
	}
	c.muted = !c.muted
	muted := c.muted
	r.mu.Unlock()

	c.TrySend(&Event{Kind: EventMuteStatus, Room: r.ID, Mute: &MuteStatus{IsMuted: muted}})
}

// removeMember drops the participant from membership and queue; a departing
// current speaker releases the floor through the normal break transition.
// Reports whether the room is now empty.
func (r *Room) removeMember(c *Client) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isMemberLocked(c) {
		return len(r.members) == 0
	}
	for i, m := range r.members {
		if m == c {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	r.removeFromQueueLocked(c)
	if r.speaker == c {
		r.endTurnLocked()
	}
	if len(r.members) > 0 {
		r.broadcastLocked(&Event{Kind: EventRoomUpdate, Room: r.ID, Update: r.updateLocked()})
	}
	return len(r.members) == 0
}

// close marks the room dead and stops its break timer. Called by the
// registry once the last member is gone; commands racing with teardown see
// closed and give up.
func (r *Room) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.breakTimer != nil {
		r.breakTimer.Stop()
		r.breakTimer = nil
	}
}

// stat snapshots the room for read-only endpoints.
func (r *Room) stat() RoomStat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RoomStat{
		ID:          r.ID,
		Members:     len(r.members),
		QueueLength: len(r.queue),
		Speaking:    r.speaker != nil,
		OnBreak:     r.onBreak,
	}
}

func (r *Room) isMemberLocked(c *Client) bool {
	for _, m := range r.members {
		if m == c {
			return true
		}
	}
	return false
}

// queuePositionLocked returns the 1-indexed queue position, 0 when absent.
func (r *Room) queuePositionLocked(c *Client) int {
	for i, m := range r.queue {
		if m == c {
			return i + 1
		}
	}
	return 0
}

func (r *Room) removeFromQueueLocked(c *Client) {
	for i, m := range r.queue {
		if m == c {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}

func (r *Room) updateLocked() *RoomUpdate {
	queue := make([]string, 0, len(r.queue))
	for _, m := range r.queue {
		queue = append(queue, m.Name)
	}
	speaker := ""
	if r.speaker != nil {
		speaker = r.speaker.Name
	}
	return &RoomUpdate{
		TotalUsers:     len(r.members),
		CurrentSpeaker: speaker,
		SpeakerQueue:   queue,
	}
}

func (r *Room) broadcastLocked(ev *Event) {
	for _, m := range r.members {
		if !m.TrySend(ev) {
			r.log.Debug().Str("room", r.ID).Str("client", m.ID).Msg("event dropped, slow consumer")
		}
	}
}

package core

// EventKind identifies a room-scoped notification emitted to clients.
type EventKind int

const (
	// EventRoomInfo greets a participant right after room assignment.
	EventRoomInfo EventKind = iota
	// EventRoomUpdate announces membership or queue changes to a room.
	EventRoomUpdate
	// EventQueueUpdate tells a participant its position in the speaker queue.
	EventQueueUpdate
	// EventSpeakingStatus announces a floor grant.
	EventSpeakingStatus
	// EventSpeakingEnded announces a floor release and the break window.
	EventSpeakingEnded
	// EventAudioFrame carries one relayed audio frame.
	EventAudioFrame
	// EventReaction broadcasts an emoji-style reaction.
	EventReaction
	// EventMuteStatus echoes the advisory mute flag to its owner.
	EventMuteStatus
)

// Event describes something that happened in a room. Exactly one payload
// pointer is non-nil, matching Kind.
type Event struct {
	Kind     EventKind
	Room     string
	Info     *RoomInfo
	Update   *RoomUpdate
	Queue    *QueuePosition
	Speaking *SpeakingStatus
	Ended    *SpeakingEnded
	Frame    *AudioFrame
	Reaction *ReactionNote
	Mute     *MuteStatus
}

// RoomInfo is the greeting payload for a newly assigned participant.
type RoomInfo struct {
	RoomID        string
	UserName      string
	QueuePosition int // 0 when not queued
	TotalUsers    int
}

// RoomUpdate snapshots headcount, floor holder and queue by display name.
type RoomUpdate struct {
	TotalUsers     int
	CurrentSpeaker string // empty when the floor is free
	SpeakerQueue   []string
}

// QueuePosition reports a 1-indexed place in the speaker queue.
type QueuePosition struct {
	Position int
}

// SpeakingStatus names the participant granted the floor.
type SpeakingStatus struct {
	Speaker   string
	StartTime int64 // unix seconds
}

// SpeakingEnded names the next queue head, if any, and when the break ends.
type SpeakingEnded struct {
	NextSpeaker  string // empty when the queue drained
	BreakEndTime int64  // unix seconds
}

// AudioFrame is an opaque audio payload from the current speaker.
type AudioFrame struct {
	Speaker string
	Audio   []byte
}

// ReactionNote is a broadcast-only reaction, no state attached.
type ReactionNote struct {
	User     string
	Reaction string
}

// MuteStatus echoes the advisory flag back to the participant who flipped it.
type MuteStatus struct {
	IsMuted bool
}

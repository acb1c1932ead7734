package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ProtocolVersion = 1

	InboundTypeRequestSpeak  = "request_speak"
	InboundTypeStartSpeaking = "start_speaking"
	InboundTypeEndSpeaking   = "end_speaking"
	InboundTypeAudioStream   = "audio_stream"
	InboundTypeSendReaction  = "send_reaction"
	InboundTypeToggleMute    = "toggle_mute"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeRateLimited    = "rate_limited"
)

// AudioData carries one opaque audio frame, base64 on the wire.
type AudioData struct {
	Audio []byte `json:"audio"`
}

// ReactionData is a broadcast-only reaction.
type ReactionData struct {
	Reaction string `json:"reaction"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Outbound event names match what clients subscribe to.
const (
	EventNameRoomInfo       = "room_info"
	EventNameRoomUpdate     = "room_update"
	EventNameQueueUpdate    = "queue_update"
	EventNameSpeakingStatus = "speaking_status"
	EventNameSpeakingEnded  = "speaking_ended"
	EventNameAudioStream    = "audio_stream"
	EventNameReaction       = "reaction"
	EventNameMuteStatus     = "mute_status"
)

// EventRoomInfo greets a freshly assigned participant.
type EventRoomInfo struct {
	RoomID        string `json:"room_id"`
	UserName      string `json:"user_name"`
	QueuePosition *int   `json:"queue_position"`
	TotalUsers    int    `json:"total_users"`
}

// EventRoomUpdate snapshots membership and the speaker queue by display name.
type EventRoomUpdate struct {
	TotalUsers     int      `json:"total_users"`
	CurrentSpeaker *string  `json:"current_speaker"`
	SpeakerQueue   []string `json:"speaker_queue"`
}

// EventQueueUpdate reports the requester's 1-indexed queue position.
type EventQueueUpdate struct {
	Position int `json:"position"`
}

// EventSpeakingStatus announces a floor grant.
type EventSpeakingStatus struct {
	Speaker   string `json:"speaker"`
	StartTime int64  `json:"start_time"`
}

// EventSpeakingEnded announces a floor release and the break deadline.
type EventSpeakingEnded struct {
	NextSpeaker  *string `json:"next_speaker"`
	BreakEndTime int64   `json:"break_end_time"`
}

// EventAudioStream is one relayed audio frame.
type EventAudioStream struct {
	Audio   []byte `json:"audio"`
	Speaker string `json:"speaker"`
}

// EventReaction is a broadcast reaction.
type EventReaction struct {
	User     string `json:"user"`
	Reaction string `json:"reaction"`
}

// EventMuteStatus echoes the advisory mute flag to its owner.
type EventMuteStatus struct {
	IsMuted bool `json:"is_muted"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

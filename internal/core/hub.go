package core

import (
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

const (
	// DefaultCapacity is the room size cap.
	DefaultCapacity = 7
	// DefaultBreakDuration is the cooldown after every released turn.
	DefaultBreakDuration = 60 * time.Second

	defaultEventBuffer = 32
)

// Hub is the entry point for connection lifecycle and room commands. It owns
// the registry and display-name generation; per-room turn coordination lives
// on Room. All hub methods are safe for concurrent use.
type Hub struct {
	registry *Registry
	names    *NameGenerator
	buffer   int
	log      *zerolog.Logger
}

// Options configures a Hub. Zero values fall back to production defaults;
// tests inject a mock clock and a seeded random source.
type Options struct {
	Capacity      int
	BreakDuration time.Duration
	EventBuffer   int
	Clock         clock.Clock
	Rand          *rand.Rand
	Logger        *zerolog.Logger
}

// NewHub builds a hub with an empty room registry.
func NewHub(opts Options) *Hub {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.BreakDuration <= 0 {
		opts.BreakDuration = DefaultBreakDuration
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	names := NewNameGenerator(opts.Rand)
	return &Hub{
		registry: NewRegistry(opts.Capacity, opts.BreakDuration, opts.Clock, names, opts.Logger),
		names:    names,
		buffer:   opts.EventBuffer,
		log:      opts.Logger,
	}
}

// Connect admits an authenticated participant: picks a display name, assigns
// a room, greets the participant with room_info and announces the headcount
// to the room.
func (h *Hub) Connect(id string) *Client {
	c := NewClient(id, h.names.DisplayName(), h.buffer)
	r := h.registry.Assign(c)
	c.room = r
	r.greet(c)
	h.log.Info().Str("participant", id).Str("name", c.Name).Str("room", r.ID).Msg("participant joined")
	return c
}

// Disconnect tears the participant out of its room: membership, queue entry
// and, if it held the floor, the floor itself via the break transition.
// Idempotent; room commands after disconnect are no-ops.
func (h *Hub) Disconnect(c *Client) {
	if c == nil || c.room == nil {
		return
	}
	r := c.room
	c.room = nil
	h.registry.Release(r, c)
	h.log.Info().Str("participant", c.ID).Str("room", r.ID).Msg("participant left")
}

// RequestSpeak enqueues the participant for the floor.
func (h *Hub) RequestSpeak(c *Client) {
	if r := c.room; r != nil {
		r.RequestSpeak(c)
	}
}

// StartSpeaking attempts a floor grant.
func (h *Hub) StartSpeaking(c *Client) {
	if r := c.room; r != nil {
		r.StartSpeaking(c)
	}
}

// EndSpeaking releases the floor and opens the break window.
func (h *Hub) EndSpeaking(c *Client) {
	if r := c.room; r != nil {
		r.EndSpeaking(c)
	}
}

// Relay forwards an audio frame to the rest of the room if the sender holds
// the floor.
func (h *Hub) Relay(c *Client, audio []byte) {
	if r := c.room; r != nil {
		r.Relay(c, audio)
	}
}

// SendReaction broadcasts a reaction to the room.
func (h *Hub) SendReaction(c *Client, reaction string) {
	if r := c.room; r != nil {
		r.SendReaction(c, reaction)
	}
}

// ToggleMute flips the advisory mute flag and echoes it to the owner.
func (h *Hub) ToggleMute(c *Client) {
	if r := c.room; r != nil {
		r.ToggleMute(c)
	}
}

// RoomStats snapshots all rooms for read-only endpoints.
func (h *Hub) RoomStats() []RoomStat {
	return h.registry.Stats()
}

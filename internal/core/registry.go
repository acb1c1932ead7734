package core

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Registry owns the room table. Find-or-create and teardown run under the
// registry lock, keeping the capacity check atomic against concurrent joins.
// Lock order is always registry before room.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	order []*Room // creation order; assignment scans this, so the outcome is deterministic

	capacity int
	breakDur time.Duration
	clk      clock.Clock
	names    *NameGenerator
	log      *zerolog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(capacity int, breakDur time.Duration, clk clock.Clock, names *NameGenerator, log *zerolog.Logger) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		capacity: capacity,
		breakDur: breakDur,
		clk:      clk,
		names:    names,
		log:      log,
	}
}

// Assign places the participant in the oldest room with spare capacity,
// creating a fresh room when every existing one is full. Returns the room
// joined; the caller announces the join.
func (g *Registry) Assign(c *Client) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.order {
		if r.memberCount() < g.capacity {
			r.addMember(c)
			return r
		}
	}
	r := newRoom(g.newRoomIDLocked(), g.clk, g.breakDur, g.log)
	g.rooms[r.ID] = r
	g.order = append(g.order, r)
	r.addMember(c)
	g.log.Info().Str("room", r.ID).Msg("room created")
	return r
}

// newRoomIDLocked generates ids until one is free. Collisions are rare with
// a 36^6 space but cheap to retry.
func (g *Registry) newRoomIDLocked() string {
	for {
		id := g.names.RoomID()
		if _, taken := g.rooms[id]; !taken {
			return id
		}
	}
}

// Release removes the participant from the given room, cascading into queue
// and floor cleanup; an emptied room is torn down immediately.
func (g *Registry) Release(r *Room, c *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rooms[r.ID] != r {
		// Lost a teardown race; nothing left to clean.
		return
	}
	if r.removeMember(c) {
		r.close()
		delete(g.rooms, r.ID)
		for i, other := range g.order {
			if other == r {
				g.order = append(g.order[:i], g.order[i+1:]...)
				break
			}
		}
		g.log.Info().Str("room", r.ID).Msg("room deleted")
	}
}

// Stats returns a creation-ordered snapshot of all rooms.
func (g *Registry) Stats() []RoomStat {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]RoomStat, 0, len(g.order))
	for _, r := range g.order {
		out = append(out, r.stat())
	}
	return out
}

// RoomStat is a read-only snapshot of one room.
type RoomStat struct {
	ID          string
	Members     int
	QueueLength int
	Speaking    bool
	OnBreak     bool
}

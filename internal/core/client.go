package core

// Client is one live, already-authenticated connection as seen by the core.
type Client struct {
	ID     string
	Name   string
	Events chan *Event

	// room is owned by the connection's goroutine: written by Hub.Connect,
	// cleared by Hub.Disconnect, read by the commands in between.
	room *Room

	// muted is advisory only and never consulted by the relay.
	// Guarded by the room lock.
	muted bool
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id, name string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Client{
		ID:     id,
		Name:   name,
		Events: make(chan *Event, buffer),
	}
}

// TrySend delivers an event without blocking. Returns false when the client's
// buffer is full and the event was dropped; one slow consumer never stalls
// the rest of the room.
func (c *Client) TrySend(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}

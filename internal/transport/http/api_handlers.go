package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/standup-server/internal/auth"
	"github.com/vovakirdan/standup-server/internal/core"
)

// APIHandlers provides the small REST surface around the websocket core.
type APIHandlers struct {
	sessions *auth.Service
	hub      *core.Hub
	log      *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(sessions *auth.Service, hub *core.Hub, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		sessions: sessions,
		hub:      hub,
		log:      logger,
	}
}

// SessionResponse is the body returned for a freshly issued guest session.
type SessionResponse struct {
	ParticipantID string `json:"participant_id"`
	Token         string `json:"token"`
}

// RoomResponse is one room in the live snapshot.
type RoomResponse struct {
	RoomID      string `json:"room_id"`
	TotalUsers  int    `json:"total_users"`
	QueueLength int    `json:"queue_length"`
	Speaking    bool   `json:"speaking"`
	OnBreak     bool   `json:"on_break"`
}

// RoomsResponse wraps the room snapshot.
type RoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health answers liveness probes.
// GET /healthz
func (h *APIHandlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// CreateSession issues an anonymous guest session for the websocket.
// POST /api/session
func (h *APIHandlers) CreateSession(c *gin.Context) {
	sess, err := h.sessions.NewSession()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to issue session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Debug().Str("participant", sess.ParticipantID).Msg("session issued")
	c.JSON(http.StatusCreated, SessionResponse{
		ParticipantID: sess.ParticipantID,
		Token:         sess.Token,
	})
}

// Rooms reports a live, creation-ordered snapshot of all rooms. Operational
// visibility only; nothing here is stored.
// GET /api/rooms
func (h *APIHandlers) Rooms(c *gin.Context) {
	stats := h.hub.RoomStats()
	out := make([]RoomResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, RoomResponse{
			RoomID:      s.ID,
			TotalUsers:  s.Members,
			QueueLength: s.QueueLength,
			Speaking:    s.Speaking,
			OnBreak:     s.OnBreak,
		})
	}
	c.JSON(http.StatusOK, RoomsResponse{Rooms: out})
}

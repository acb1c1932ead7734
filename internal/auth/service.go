package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a session token fails validation.
var ErrInvalidToken = errors.New("invalid session token")

// Service issues and validates guest sessions. Participants are anonymous:
// a session is an opaque uuid wrapped in a signed token, and nothing is
// stored server-side. Restarting the process invalidates all sessions, which
// matches the ephemeral room model.
type Service struct {
	jwtConfig *JWTConfig
}

// NewService creates a session service around the given signing config.
func NewService(jwtConfig *JWTConfig) *Service {
	return &Service{jwtConfig: jwtConfig}
}

// Session is a freshly issued guest identity.
type Session struct {
	ParticipantID string
	Token         string
}

// NewSession mints a participant id and wraps it in a signed token.
func (s *Service) NewSession() (Session, error) {
	id := uuid.NewString()
	token, err := GenerateToken(s.jwtConfig, id)
	if err != nil {
		return Session{}, fmt.Errorf("generate session token: %w", err)
	}
	return Session{ParticipantID: id, Token: token}, nil
}

// Validate returns the participant id carried by a session token.
func (s *Service) Validate(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrInvalidToken)
	}
	claims, err := ValidateToken(s.jwtConfig, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ParticipantID == "" {
		return "", fmt.Errorf("%w: no participant id", ErrInvalidToken)
	}
	return claims.ParticipantID, nil
}

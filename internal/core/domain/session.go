package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SessionKey names the persisted session record. It is the cookie name used by
// browsers and the prefix of the record in the session store.
const SessionKey = "user"

// Session is the record written at login and read on every route evaluation
// and menu render. Identity is an opaque user reference.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Identity  string    `json:"identity"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether s carries a recognised role. A nil session is
// not authenticated.
func (s *Session) Authenticated() bool {
	return s != nil && s.Role.Known()
}

// RoleOrEmpty returns the session role, or "" for a nil session.
func (s *Session) RoleOrEmpty() Role {
	if s == nil {
		return ""
	}
	return s.Role
}

// EncodeSession serialises s for the session store.
func EncodeSession(s *Session) ([]byte, error) {
	if s == nil {
		return nil, ErrSessionNotFound
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

// DecodeSession parses a persisted session record. Empty input yields
// ErrSessionNotFound; anything that is not a JSON object of the expected shape
// yields ErrMalformedSession. It never panics.
func DecodeSession(raw []byte) (*Session, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrSessionNotFound
	}
	if trimmed[0] != '{' {
		return nil, ErrMalformedSession
	}

	var s Session
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return &s, nil
}

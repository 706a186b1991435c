package ports

import (
	"context"
	"time"
)

// SessionStore persists serialised session records keyed by session id.
// Records are stored as raw bytes so that corrupt data survives to the
// decoder, which treats it as no session.
type SessionStore interface {
	// Save writes the record. A ttl <= 0 stores it without expiry.
	Save(ctx context.Context, sessionID string, record []byte, ttl time.Duration) error
	// Load returns domain.ErrSessionNotFound when no record exists.
	Load(ctx context.Context, sessionID string) ([]byte, error)
	// Delete is idempotent.
	Delete(ctx context.Context, sessionID string) error
}

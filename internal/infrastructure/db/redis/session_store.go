package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

// SessionStore keeps serialised session records in Redis.
// Key format: session:<SessionKey>:<session_id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

var _ ports.SessionStore = (*SessionStore)(nil)

// Save writes the record. A ttl <= 0 keeps it until it is deleted.
func (s *SessionStore) Save(ctx context.Context, sessionID string, record []byte, ttl time.Duration) error {
	if sessionID == "" {
		return fmt.Errorf("session save: empty session id")
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(sessionID), record, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Load returns the raw record, or domain.ErrSessionNotFound.
func (s *SessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session load: %w", err)
	}
	return raw, nil
}

// Delete removes the record; missing records are ignored.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return fmt.Sprintf("session:%s:%s", domain.SessionKey, sessionID)
}

package redis

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianapps/account-service/internal/core/domain"
)

const (
	sessionKeyPrefix = "session:"
	sessionIDBytes   = 16
	defaultTTL       = 24 * time.Hour
)

// SessionStore keeps server-side session state in Redis.
// Key format: session:<id>, value: JSON-encoded domain.Session, expiring
// after the configured lifetime.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// A non-positive ttl falls back to defaultTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create stores sess under a freshly generated session id and returns the id.
// Ids are never supplied by callers: regeneration on every login is the
// fixation defense.
func (s *SessionStore) Create(ctx context.Context, sess *domain.Session) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sid), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

// Get loads the session for sid. Unknown and expired ids both map to
// domain.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sid string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: corrupt session payload: %v", domain.ErrInternal, err)
	}
	return &sess, nil
}

// Destroy removes the session. Destroying an absent session is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return sessionKeyPrefix + sid
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

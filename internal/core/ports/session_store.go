package ports

import (
	"context"

	"github.com/meridianapps/account-service/internal/core/domain"
)

// SessionStore holds server-side session state keyed by an opaque session id.
//
// Create always mints a brand-new id — session establishment after login must
// regenerate the identifier itself, never reuse one supplied by the client,
// or a fixated id would survive privilege escalation.
type SessionStore interface {
	Create(ctx context.Context, sess *domain.Session) (sessionID string, err error)

	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Destroy removes the session. Destroying an absent session is not an
	// error.
	Destroy(ctx context.Context, sessionID string) error
}

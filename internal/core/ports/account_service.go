package ports

import (
	"context"

	"github.com/meridianapps/account-service/internal/core/domain"
)

// LoginResult carries the outcome of a successful login: the refreshed
// account record and the id of the freshly created server-side session.
type LoginResult struct {
	Account   *domain.Account
	SessionID string
}

// AccountService is the account integrity and session authentication engine.
type AccountService interface {
	// Register creates an account with a hashed password, default ACTIVE
	// status, and an initial integrity digest.
	Register(ctx context.Context, username, password string) (*domain.Account, error)

	// Login verifies integrity (pruning on violation), then the password,
	// then issues a fresh session token and session. Every failure mode
	// surfaces as domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Authorize gates a protected operation: the session's token must match
	// the account's stored token in constant time. A non-nil error means
	// the caller must destroy the presented session.
	Authorize(ctx context.Context, sess *domain.Session) error

	// Profile returns the account backing a validated session.
	Profile(ctx context.Context, userID string) (*domain.Account, error)

	// UpdateDisplayName rewrites the caller's display name.
	UpdateDisplayName(ctx context.Context, userID, displayName string) error

	// UpdatePassword rehashes the caller's password and recomputes the
	// integrity digest in the same write.
	UpdatePassword(ctx context.Context, userID, password string) error

	// AdminUpdateStatus replaces the target account's status. The
	// requester's own account must carry admin privilege.
	AdminUpdateStatus(ctx context.Context, requesterID, targetUsername string, status domain.AccountStatus) error

	// Logout clears the account's stored session token and destroys the
	// server-side session.
	Logout(ctx context.Context, sess *domain.Session, sessionID string) error
}

package ports

import (
	"context"

	"github.com/meridianapps/account-service/internal/core/domain"
)

// AccountRepository is the durable account store.
//
// The Update* methods that touch digest-covered fields take the fresh digest
// alongside the new value and must write both in a single store operation —
// a covered field persisted without its digest is indistinguishable from
// tampering on the next integrity check.
type AccountRepository interface {
	// Insert persists a new account. Returns domain.ErrUsernameTaken when
	// the username is already present.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// FindByUsername returns domain.ErrAccountNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)

	// FindByID returns domain.ErrAccountNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Account, error)

	// UpdateDisplayName rewrites the display name only. DisplayName is not
	// digest-covered, so no digest accompanies it.
	UpdateDisplayName(ctx context.Context, id, displayName string) error

	// UpdateCredentials atomically rewrites {password_hash, data_hash}.
	UpdateCredentials(ctx context.Context, id, passwordHash, dataHash string) error

	// UpdateStatus atomically rewrites {status, data_hash}.
	UpdateStatus(ctx context.Context, id, status, dataHash string) error

	// UpdateLoginState atomically rewrites {session_token, last_login},
	// invalidating any previously issued token.
	UpdateLoginState(ctx context.Context, id, sessionToken, lastLogin string) error

	// ClearSessionToken removes the stored token, leaving the account with
	// no honored session.
	ClearSessionToken(ctx context.Context, id string) error

	// Delete removes the account record. Deleting an absent account is not
	// an error.
	Delete(ctx context.Context, id string) error
}

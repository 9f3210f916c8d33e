package domain

import "errors"

// Sentinel errors shared across the engine. Handlers never branch on error
// strings; they wrap these with %w and the API layer maps them to HTTP codes.
var (
	// ErrInvalidInput covers missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken is returned when registration collides with an
	// existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is the single answer for every authentication
	// failure: wrong password, unknown username, and pruned accounts alike.
	// Collapsing those cases denies an attacker oracle feedback about
	// whether tampering detection fired.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession is returned when a session is absent, stale, or its
	// token no longer matches the account's stored token.
	ErrInvalidSession = errors.New("invalid session")

	// ErrForbidden is returned when a non-admin account attempts a
	// privileged mutation.
	ErrForbidden = errors.New("access forbidden")

	// ErrAccountNotFound reports a missing account record.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSessionNotFound reports a session id with no server-side state.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInternal covers hashing failures, store failures, and malformed
	// stored data. Details are logged server-side; callers see an opaque
	// message.
	ErrInternal = errors.New("internal error")
)

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/meridianapps/account-service/internal/core/domain"
	"github.com/meridianapps/account-service/internal/core/ports"
	"github.com/meridianapps/account-service/internal/pkg/integrity"
	"github.com/meridianapps/account-service/internal/pkg/password"
)

// sessionTokenBytes gives 256 bits of entropy per issued token.
const sessionTokenBytes = 32

type accountService struct {
	repo     ports.AccountRepository
	sessions ports.SessionStore
	hasher   *password.Hasher
	digests  *integrity.Hasher
	clock    ports.Clock
	audit    ports.AuditRecorder
	log      zerolog.Logger
	locks    keyLock
}

// NewAccountService wires the account integrity and session authentication
// engine. A nil clock falls back to the system clock; a nil audit recorder
// disables the audit trail.
func NewAccountService(
	repo ports.AccountRepository,
	sessions ports.SessionStore,
	hasher *password.Hasher,
	digests *integrity.Hasher,
	clock ports.Clock,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) ports.AccountService {
	if clock == nil {
		clock = systemClock{}
	}
	if audit == nil {
		audit = nopRecorder{}
	}
	return &accountService{
		repo:     repo,
		sessions: sessions,
		hasher:   hasher,
		digests:  digests,
		clock:    clock,
		audit:    audit,
		log:      log,
	}
}

func (s *accountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	status, err := domain.DefaultStatus().Serialize()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now()
	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		DisplayName:  username,
		Status:       status,
		DataHash:     s.digests.Digest(username, hash, now, status),
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return nil, err
	}

	s.record(created.ID, username, ports.EventRegistered, "")
	s.log.Info().Str("username", username).Str("account_id", created.ID).Msg("account registered")
	return created, nil
}

func (s *accountService) Login(ctx context.Context, username, pass string) (*ports.LoginResult, error) {
	if username == "" || pass == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	// Token issuance is a read-modify-write against the account record;
	// hold the account's lock for the whole sequence. Username is the
	// canonical per-account lock key (immutable and unique); every
	// mutating path must lock by it, or two paths end up on different
	// mutexes and can tear a digest apart.
	unlock := s.locks.lock(username)
	defer unlock()

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.record("", username, ports.EventLoginFailed, "unknown username")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	// Integrity guard runs before password verification on every attempt.
	// A correct password can never rescue a deactivated or tampered record.
	pruned, err := s.verifyAndPrune(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if pruned {
		// Indistinguishable from a wrong password on the outside.
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(account.PasswordHash, pass)
	if err != nil {
		return nil, fmt.Errorf("%w: stored password hash unreadable: %v", domain.ErrInternal, err)
	}
	if !ok {
		s.record(account.ID, username, ports.EventLoginFailed, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	// Persisting the new token invalidates every previously issued one.
	now := s.now()
	if err := s.repo.UpdateLoginState(ctx, account.ID, token, now); err != nil {
		return nil, fmt.Errorf("login: persist session token: %w", err)
	}
	account.SessionToken = token
	account.LastLogin = now

	// The session id is minted fresh by the store; a pre-login session id
	// presented by the client is never promoted.
	sid, err := s.sessions.Create(ctx, &domain.Session{
		UserID:      account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Status:      account.Status,
		Token:       token,
	})
	if err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	s.record(account.ID, username, ports.EventLoginSucceed, "")
	s.log.Info().Str("username", username).Msg("login succeeded")
	return &ports.LoginResult{Account: account, SessionID: sid}, nil
}

// verifyAndPrune checks activity and integrity of a fetched account, deleting
// it on violation. Returns true when the account was pruned.
func (s *accountService) verifyAndPrune(ctx context.Context, account *domain.Account) (bool, error) {
	status, err := domain.ParseStatus(account.Status)
	if err != nil {
		// Malformed stored status is a server fault, not a tamper verdict.
		return false, err
	}

	if status.Activity != domain.ActivityActive {
		return true, s.prune(ctx, account, ports.PruneReasonDeactivated)
	}

	if !s.digests.Verify(account.DataHash, account.Username, account.PasswordHash, account.CreatedAt, account.Status) {
		return true, s.prune(ctx, account, ports.PruneReasonTampered)
	}

	return false, nil
}

func (s *accountService) prune(ctx context.Context, account *domain.Account, reason string) error {
	if err := s.repo.Delete(ctx, account.ID); err != nil {
		return fmt.Errorf("prune account %s: %w", account.ID, err)
	}
	s.record(account.ID, account.Username, ports.EventAccountPruned, reason)
	s.log.Warn().
		Str("username", account.Username).
		Str("account_id", account.ID).
		Str("reason", reason).
		Msg("account pruned")
	return nil
}

func (s *accountService) Authorize(ctx context.Context, sess *domain.Session) error {
	if sess == nil || (sess.UserID == "" && sess.Token == "") {
		return fmt.Errorf("%w: no session", domain.ErrInvalidSession)
	}

	account, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Account deleted (or pruned) since the session was created.
			return fmt.Errorf("%w: account no longer exists", domain.ErrInvalidSession)
		}
		return fmt.Errorf("authorize: %w", err)
	}
	if account.SessionToken == "" {
		return fmt.Errorf("%w: no active session token", domain.ErrInvalidSession)
	}

	if !tokenEqual(sess.Token, account.SessionToken) {
		// A newer login rotated the token; this session is dead.
		return fmt.Errorf("%w: invalid session token", domain.ErrInvalidSession)
	}
	return nil
}

func (s *accountService) Profile(ctx context.Context, userID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *accountService) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	if displayName == "" {
		return fmt.Errorf("%w: display name is required", domain.ErrInvalidInput)
	}
	// display_name is outside the digest; no recompute needed.
	if err := s.repo.UpdateDisplayName(ctx, userID, displayName); err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

func (s *accountService) UpdatePassword(ctx context.Context, userID, pass string) error {
	if pass == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	// Resolve the username first: the account lock is keyed by username on
	// every mutating path, and locking by id would not exclude a
	// concurrent login or admin status change on the same account.
	resolved, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	unlock := s.locks.lock(resolved.Username)
	defer unlock()

	// Re-read under the lock; another mutation may have landed between
	// the lookup and the acquire.
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// New hash, existing created_at and status: digest and hash land in the
	// same write or the next login would prune this account.
	digest := s.digests.Digest(account.Username, hash, account.CreatedAt, account.Status)
	if err := s.repo.UpdateCredentials(ctx, userID, hash, digest); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Str("username", account.Username).Msg("password changed")
	return nil
}

func (s *accountService) AdminUpdateStatus(ctx context.Context, requesterID, targetUsername string, status domain.AccountStatus) error {
	requester, err := s.repo.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("%w: requester account missing", domain.ErrForbidden)
		}
		return fmt.Errorf("admin update status: %w", err)
	}

	// The requester's own status decides privilege, nothing else.
	requesterStatus, err := domain.ParseStatus(requester.Status)
	if err != nil {
		return err
	}
	if !requesterStatus.Admin {
		return fmt.Errorf("%w: admin privilege required", domain.ErrForbidden)
	}

	raw, err := status.Serialize()
	if err != nil {
		return err
	}

	unlock := s.locks.lock(targetUsername)
	defer unlock()

	target, err := s.repo.FindByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}

	// Existing password hash and created_at, new status.
	digest := s.digests.Digest(target.Username, target.PasswordHash, target.CreatedAt, raw)
	if err := s.repo.UpdateStatus(ctx, target.ID, raw, digest); err != nil {
		return fmt.Errorf("admin update status: %w", err)
	}

	s.record(target.ID, target.Username, ports.EventStatusChanged, "by "+requester.Username)
	s.log.Info().
		Str("admin", requester.Username).
		Str("target", target.Username).
		Str("status", raw).
		Msg("account status changed")
	return nil
}

func (s *accountService) Logout(ctx context.Context, sess *domain.Session, sessionID string) error {
	if sess != nil && sess.UserID != "" {
		// Same account lock as login: a logout racing a login on another
		// device must not clear the token that login is in the middle of
		// issuing.
		unlock := s.locks.lock(sess.Username)
		err := s.repo.ClearSessionToken(ctx, sess.UserID)
		unlock()
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("logout: %w", err)
		}
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: destroy session: %w", err)
	}
	if sess != nil {
		s.record(sess.UserID, sess.Username, ports.EventLogout, "")
	}
	return nil
}

func (s *accountService) now() string {
	return s.clock.Now().UTC().Format(domain.TimeLayout)
}

func (s *accountService) record(accountID, username, kind, reason string) {
	s.audit.Record(ports.SecurityEventInput{
		AccountID: accountID,
		Username:  username,
		Kind:      kind,
		Reason:    reason,
		Timestamp: s.clock.Now().UTC(),
	})
}

// tokenEqual compares two session tokens without a data-dependent fast path.
// Unequal lengths are a mismatch; equal-length buffers are compared in
// constant time.
func tokenEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// newSessionToken returns a hex-encoded token with sessionTokenBytes of
// entropy from crypto/rand.
func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

type nopRecorder struct{}

func (nopRecorder) Record(ports.SecurityEventInput) {}

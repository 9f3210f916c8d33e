package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/core/domain"
	"github.com/meridianapps/account-service/internal/core/ports"
)

// stubAccountService is a function-field fake of the account engine. A call
// whose function is unset fails the test via panic, so each test declares
// exactly the engine behavior it expects.
type stubAccountService struct {
	registerFn          func(ctx context.Context, username, password string) (*domain.Account, error)
	loginFn             func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	authorizeFn         func(ctx context.Context, sess *domain.Session) error
	profileFn           func(ctx context.Context, userID string) (*domain.Account, error)
	updateDisplayNameFn func(ctx context.Context, userID, displayName string) error
	updatePasswordFn    func(ctx context.Context, userID, password string) error
	adminUpdateStatusFn func(ctx context.Context, requesterID, targetUsername string, status domain.AccountStatus) error
	logoutFn            func(ctx context.Context, sess *domain.Session, sessionID string) error
}

func (s *stubAccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if s.registerFn == nil {
		panic("unexpected Register call")
	}
	return s.registerFn(ctx, username, password)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if s.loginFn == nil {
		panic("unexpected Login call")
	}
	return s.loginFn(ctx, username, password)
}

func (s *stubAccountService) Authorize(ctx context.Context, sess *domain.Session) error {
	if s.authorizeFn == nil {
		panic("unexpected Authorize call")
	}
	return s.authorizeFn(ctx, sess)
}

func (s *stubAccountService) Profile(ctx context.Context, userID string) (*domain.Account, error) {
	if s.profileFn == nil {
		panic("unexpected Profile call")
	}
	return s.profileFn(ctx, userID)
}

func (s *stubAccountService) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	if s.updateDisplayNameFn == nil {
		panic("unexpected UpdateDisplayName call")
	}
	return s.updateDisplayNameFn(ctx, userID, displayName)
}

func (s *stubAccountService) UpdatePassword(ctx context.Context, userID, password string) error {
	if s.updatePasswordFn == nil {
		panic("unexpected UpdatePassword call")
	}
	return s.updatePasswordFn(ctx, userID, password)
}

func (s *stubAccountService) AdminUpdateStatus(ctx context.Context, requesterID, targetUsername string, status domain.AccountStatus) error {
	if s.adminUpdateStatusFn == nil {
		panic("unexpected AdminUpdateStatus call")
	}
	return s.adminUpdateStatusFn(ctx, requesterID, targetUsername, status)
}

func (s *stubAccountService) Logout(ctx context.Context, sess *domain.Session, sessionID string) error {
	if s.logoutFn == nil {
		panic("unexpected Logout call")
	}
	return s.logoutFn(ctx, sess, sessionID)
}

var _ ports.AccountService = (*stubAccountService)(nil)

// newJSONContext builds an echo context with the request validator wired, the
// way the router configures it.
func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("error = %v, want *echo.HTTPError", err)
	}
	return he.Code
}

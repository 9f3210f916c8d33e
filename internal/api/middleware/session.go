package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/api/metrics"
	"github.com/meridianapps/account-service/internal/core/domain"
	"github.com/meridianapps/account-service/internal/core/ports"
)

// Context keys populated by the Session middleware.
const (
	ctxSession   = "session"
	ctxSessionID = "session_id"
	ctxUserID    = "user_id"
)

// Session validates the caller's session before any protected operation:
//
//  1. the session cookie must be present and its signature valid,
//  2. server-side session state must exist for the sid,
//  3. the engine must accept the session's token against the account's
//     stored token (constant-time comparison).
//
// Any engine rejection destroys the server-side session and clears the
// cookie — a stale session is never left behind to be retried.
func Session(svc ports.AccountService, store ports.SessionStore, cookies CookiePolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookies.Name)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			sid, err := cookies.DecodeSessionID(cookie.Value)
			if err != nil {
				c.SetCookie(cookies.ClearCookie())
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			ctx := c.Request().Context()

			sess, err := store.Get(ctx, sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					c.SetCookie(cookies.ClearCookie())
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return err
			}

			if err := svc.Authorize(ctx, sess); err != nil {
				if errors.Is(err, domain.ErrInvalidSession) {
					// Token rotated or account pruned since login.
					_ = store.Destroy(ctx, sid)
					c.SetCookie(cookies.ClearCookie())
					metrics.SessionsDestroyedTotal.WithLabelValues("invalidated").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
				}
				return err
			}

			c.Set(ctxSession, sess)
			c.Set(ctxSessionID, sid)
			c.Set(ctxUserID, sess.UserID)

			return next(c)
		}
	}
}

// SessionFromContext returns the validated session injected by Session.
func SessionFromContext(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(ctxSession).(*domain.Session)
	return sess, ok
}

// SessionIDFromContext returns the session id injected by Session.
func SessionIDFromContext(c echo.Context) (string, bool) {
	sid, ok := c.Get(ctxSessionID).(string)
	return sid, ok
}

// UserIDFromContext returns the authenticated account id injected by Session.
func UserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(ctxUserID).(string)
	return id, ok
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/core/domain"
)

// AdminOnly fast-fails requests whose session lacks admin privilege, using
// the status copy cached in the session. The engine re-checks the requester's
// live account record before performing any privileged mutation; this
// middleware only spares non-admins a round trip.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			status, err := domain.ParseStatus(sess.Status)
			if err != nil {
				return err
			}
			if !status.Admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

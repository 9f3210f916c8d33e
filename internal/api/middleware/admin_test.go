package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/core/domain"
)

func invokeAdmin(t *testing.T, sess *domain.Session) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(ctxSession, sess)
	}

	nextCalled := false
	err := AdminOnly()(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, nextCalled
}

func TestAdminOnly_NoSession(t *testing.T) {
	rec, nextCalled := invokeAdmin(t, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if nextCalled {
		t.Fatal("handler ran without a session")
	}
}

func TestAdminOnly_NonAdmin(t *testing.T) {
	status, err := domain.DefaultStatus().Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	rec, nextCalled := invokeAdmin(t, &domain.Session{UserID: "acc_1", Status: status})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if nextCalled {
		t.Fatal("handler ran for a non-admin session")
	}
}

func TestAdminOnly_Admin(t *testing.T) {
	status, err := domain.AccountStatus{Activity: domain.ActivityActive, Admin: true}.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	rec, nextCalled := invokeAdmin(t, &domain.Session{UserID: "acc_1", Status: status})
	if !nextCalled {
		t.Fatalf("handler not called, status = %d", rec.Code)
	}
}

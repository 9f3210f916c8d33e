package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/api/metrics"
	"github.com/meridianapps/account-service/internal/api/middleware"
	"github.com/meridianapps/account-service/internal/core/ports"
)

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	accounts ports.AccountService
	cookies  middleware.CookiePolicy
}

func NewAuthHandler(accounts ports.AccountService, cookies middleware.CookiePolicy) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type loginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.accounts.Register(c.Request().Context(), req.Name, req.Password); err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "account created"})
}

// Login authenticates an account and establishes a cookie-backed session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.accounts.Login(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}

	signed, err := h.cookies.EncodeSessionID(res.SessionID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	c.SetCookie(h.cookies.NewCookie(signed))

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()
	return c.JSON(http.StatusOK, loginResponse{Success: true, Message: "login successful"})
}

// Logout destroys the current session and clears the stored session token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	sid, okID := middleware.SessionIDFromContext(c)
	if !ok || !okID {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	if err := h.accounts.Logout(c.Request().Context(), sess, sid); err != nil {
		return err
	}
	c.SetCookie(h.cookies.ClearCookie())

	metrics.SessionsDestroyedTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/api/middleware"
	"github.com/meridianapps/account-service/internal/core/domain"
	"github.com/meridianapps/account-service/internal/core/ports"
)

// ProfileHandler serves the authenticated account's own profile.
type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

type profileResponse struct {
	Data *domain.Account `json:"data"`
}

const (
	changeDisplayName = "displayname"
	changePassword    = "password"
)

type updateProfileRequest struct {
	ChangeType  string `json:"changetype" validate:"required,oneof=displayname password"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Me returns the caller's account record.
//
// @Summary      Current account profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	account, err := h.accounts.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Data: account})
}

// Update changes the caller's display name or password, depending on the
// changetype discriminator.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/me/update [post]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	switch req.ChangeType {
	case changeDisplayName:
		if err := h.accounts.UpdateDisplayName(ctx, userID, req.DisplayName); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "display name updated"})
	case changePassword:
		if err := h.accounts.UpdatePassword(ctx, userID, req.Password); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
	default:
		// Unreachable behind the oneof validation; kept for safety.
		return echo.NewHTTPError(http.StatusBadRequest, "unknown changetype")
	}
}

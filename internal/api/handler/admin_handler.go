package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianapps/account-service/internal/api/middleware"
	"github.com/meridianapps/account-service/internal/core/domain"
	"github.com/meridianapps/account-service/internal/core/ports"
)

// AdminHandler serves privileged account mutations.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

type statusPayload struct {
	Activity string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Admin    bool   `json:"admin"`
	VIP      bool   `json:"vip"`
	Verified bool   `json:"verified"`
}

type adminStatusRequest struct {
	Username string        `json:"username" validate:"required"`
	Status   statusPayload `json:"status"`
}

// UpdateStatus replaces the status flag set of the target account. Requires
// the requester's own account to carry admin privilege; the integrity digest
// of the target is recomputed in the same write.
//
// @Summary      Update an account's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminStatusRequest  true  "Target and new status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/status [post]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	requesterID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	var req adminStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.AccountStatus{
		Activity: domain.Activity(req.Status.Activity),
		Admin:    req.Status.Admin,
		VIP:      req.Status.VIP,
		Verified: req.Status.Verified,
	}

	if err := h.accounts.AdminUpdateStatus(c.Request().Context(), requesterID, req.Username, status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "status updated"})
}

package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthHandlers struct {
	authService *services.AuthService
}

func NewAuthHandlers(authService *services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "email", "email and password are required")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		return handleServiceError(c, err, "account")
	}
	return c.JSON(http.StatusOK, result)
}

// ChangePassword handles POST /auth/password for workshop accounts.
func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "new_password", "new password must have at least 8 characters")
	}

	if err := h.authService.ChangePassword(ctx, workshopID, req.CurrentPassword, req.NewPassword); err != nil {
		return handleServiceError(c, err, "account")
	}
	return c.NoContent(http.StatusNoContent)
}

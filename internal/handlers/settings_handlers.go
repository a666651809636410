package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type SettingsHandlers struct {
	settingsService *services.SettingsService
}

func NewSettingsHandlers(settingsService *services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsService: settingsService}
}

// GetSettings handles GET /settings (any authenticated user).
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PATCH /settings (admin).
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	var req services.SettingsUpdate
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	settings, err := h.settingsService.Update(c.Request().Context(), &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "settings")
	}
	return c.JSON(http.StatusOK, settings)
}

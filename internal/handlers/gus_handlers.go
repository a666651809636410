package handlers

import (
	"net/http"

	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type GUSHandlers struct {
	gusService *services.GUSService
}

func NewGUSHandlers(gusService *services.GUSService) *GUSHandlers {
	return &GUSHandlers{gusService: gusService}
}

// LookupNIP handles GET /gus/:nip (workshop role).
func (h *GUSHandlers) LookupNIP(c echo.Context) error {
	company, err := h.gusService.LookupNIP(c.Request().Context(), c.Param("nip"))
	if err != nil {
		return handleServiceError(c, err, "company")
	}
	return c.JSON(http.StatusOK, company)
}

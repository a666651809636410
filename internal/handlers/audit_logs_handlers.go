package handlers

import (
	"net/http"
	"strconv"

	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type AuditLogsHandlers struct {
	auditService *services.AuditService
}

func NewAuditLogsHandlers(auditService *services.AuditService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditService: auditService}
}

// ListLogs handles GET /logs?limit= (admin).
func (h *AuditLogsHandlers) ListLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	logs, err := h.auditService.List(c.Request().Context(), limit)
	if err != nil {
		return handleServiceError(c, err, "logs")
	}
	return c.JSON(http.StatusOK, logs)
}

package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ReportHandlers struct {
	reportService *services.ReportService
}

func NewReportHandlers(reportService *services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// ListReports handles GET /reports (admin, optional workshopId filter).
func (h *ReportHandlers) ListReports(c echo.Context) error {
	var workshopID *uuid.UUID
	if raw := c.QueryParam("workshopId"); raw != "" {
		id, err := common.ValidateUUID(raw, "workshopId")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		workshopID = &id
	}

	reports, err := h.reportService.List(c.Request().Context(), workshopID)
	if err != nil {
		return handleServiceError(c, err, "reports")
	}
	return c.JSON(http.StatusOK, reports)
}

// ListMyReports handles GET /reports/mine (workshop role).
func (h *ReportHandlers) ListMyReports(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	reports, err := h.reportService.ListMine(ctx, workshopID)
	if err != nil {
		return handleServiceError(c, err, "reports")
	}
	return c.JSON(http.StatusOK, reports)
}

// CreateReport handles POST /reports and POST /reports/mine (workshop role).
func (h *ReportHandlers) CreateReport(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateReportInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	report, err := h.reportService.Create(ctx, workshopID, &req)
	if err != nil {
		return handleServiceError(c, err, "report")
	}
	return c.JSON(http.StatusCreated, report)
}

// UpdateReport handles PATCH /reports/:id. Admins edit any report in place;
// a workshop edit goes through the resubmission path.
func (h *ReportHandlers) UpdateReport(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateReportInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	role, _ := common.GetUserRoleFromContext(ctx)
	if role == common.RoleAdmin {
		report, err := h.reportService.UpdateAsAdmin(ctx, id, &req)
		if err != nil {
			return handleServiceError(c, err, "report")
		}
		return c.JSON(http.StatusOK, report)
	}

	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	report, err := h.reportService.UpdateAsWorkshop(ctx, workshopID, id, &req)
	if err != nil {
		return handleServiceError(c, err, "report")
	}
	return c.JSON(http.StatusOK, report)
}

// ModerateReport handles PATCH /reports/:id/status (admin).
func (h *ReportHandlers) ModerateReport(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.ModerateReportInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(ctx)
	report, err := h.reportService.Moderate(ctx, id, &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "report")
	}
	return c.JSON(http.StatusOK, report)
}

// PublicVINLookup handles GET /reports/public/:vin (unauthenticated).
func (h *ReportHandlers) PublicVINLookup(c echo.Context) error {
	reports, err := h.reportService.LookupByVIN(c.Request().Context(), c.Param("vin"))
	if err != nil {
		return handleServiceError(c, err, "reports")
	}
	return c.JSON(http.StatusOK, reports)
}

package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type WorkshopHandlers struct {
	workshopService *services.WorkshopService
	billingService  *services.BillingService
}

func NewWorkshopHandlers(workshopService *services.WorkshopService, billingService *services.BillingService) *WorkshopHandlers {
	return &WorkshopHandlers{
		workshopService: workshopService,
		billingService:  billingService,
	}
}

// ListWorkshops handles GET /workshops (admin).
func (h *WorkshopHandlers) ListWorkshops(c echo.Context) error {
	workshops, err := h.workshopService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "workshops")
	}
	return c.JSON(http.StatusOK, workshops)
}

// ListPublicWorkshops handles GET /workshops/public (unauthenticated).
func (h *WorkshopHandlers) ListPublicWorkshops(c echo.Context) error {
	workshops, err := h.workshopService.ListPublic(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "workshops")
	}
	return c.JSON(http.StatusOK, workshops)
}

// GetMyWorkshop handles GET /workshops/me (workshop role).
func (h *WorkshopHandlers) GetMyWorkshop(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	workshop, err := h.workshopService.Get(ctx, workshopID)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// GetWorkshop handles GET /workshops/:id (admin).
func (h *WorkshopHandlers) GetWorkshop(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	workshop, err := h.workshopService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// CreateWorkshop handles POST /workshops (admin).
func (h *WorkshopHandlers) CreateWorkshop(c echo.Context) error {
	var req services.CreateWorkshopInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	workshop, err := h.workshopService.Create(c.Request().Context(), &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusCreated, workshop)
}

// UpdateWorkshop handles PATCH /workshops/:id (admin).
func (h *WorkshopHandlers) UpdateWorkshop(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateWorkshopInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	workshop, err := h.workshopService.Update(c.Request().Context(), id, &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// DeleteWorkshop handles DELETE /workshops/:id (admin).
func (h *WorkshopHandlers) DeleteWorkshop(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	if err := h.workshopService.Delete(c.Request().Context(), id, &actor); err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.NoContent(http.StatusNoContent)
}

// IssueTermination handles POST /workshops/:id/termination (admin).
func (h *WorkshopHandlers) IssueTermination(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	workshop, err := h.workshopService.IssueTermination(c.Request().Context(), id, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// CancelTermination handles DELETE /workshops/:id/termination (admin).
func (h *WorkshopHandlers) CancelTermination(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	workshop, err := h.workshopService.CancelTermination(c.Request().Context(), id, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// ExtendLicense handles POST /workshops/:id/license/extend (admin).
func (h *WorkshopHandlers) ExtendLicense(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Months int `json:"months" validate:"gte=0,lte=120"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "months", "months must be between 0 and 120")
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	workshop, err := h.workshopService.ExtendLicense(c.Request().Context(), id, req.Months, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// SetActive handles POST /workshops/:id/active (admin).
func (h *WorkshopHandlers) SetActive(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	workshop, err := h.workshopService.SetActive(c.Request().Context(), id, req.Active, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, workshop)
}

// ListBilling handles GET /workshops/:id/billing (admin).
func (h *WorkshopHandlers) ListBilling(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	entries, err := h.billingService.List(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusOK, entries)
}

// CreateBilling handles POST /workshops/:id/billing (admin).
func (h *WorkshopHandlers) CreateBilling(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.CreateBillingInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	entry, err := h.billingService.Create(c.Request().Context(), id, &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "workshop")
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateBilling handles PATCH /workshops/:id/billing/:billingId (admin).
func (h *WorkshopHandlers) UpdateBilling(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	billingID, err := common.ValidateUUID(c.Param("billingId"), "billingId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateBillingInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	entry, err := h.billingService.Update(c.Request().Context(), id, billingID, &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "billing entry")
	}
	return c.JSON(http.StatusOK, entry)
}

package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type PartsHandlers struct {
	partsService *services.PartsService
}

func NewPartsHandlers(partsService *services.PartsService) *PartsHandlers {
	return &PartsHandlers{partsService: partsService}
}

// SearchParts handles GET /parts?query= (workshop role).
func (h *PartsHandlers) SearchParts(c echo.Context) error {
	parts, err := h.partsService.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return handleServiceError(c, err, "parts")
	}
	return c.JSON(http.StatusOK, parts)
}

// CreateOrder handles POST /orders (workshop role).
func (h *PartsHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreatePartOrderInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(ctx)
	order, err := h.partsService.CreateOrder(ctx, workshopID, &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "order")
	}
	return c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /orders (workshop role).
func (h *PartsHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orders, err := h.partsService.ListOrders(ctx, workshopID)
	if err != nil {
		return handleServiceError(c, err, "orders")
	}
	return c.JSON(http.StatusOK, orders)
}

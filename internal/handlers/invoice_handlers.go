package handlers

import (
	"fmt"
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type InvoiceHandlers struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandlers(invoiceService *services.InvoiceService) *InvoiceHandlers {
	return &InvoiceHandlers{invoiceService: invoiceService}
}

// CreateInvoice handles POST /invoices (workshop role).
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateInvoiceInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	invoice, err := h.invoiceService.Create(ctx, workshopID, &req)
	if err != nil {
		return handleServiceError(c, err, "invoice")
	}
	return c.JSON(http.StatusCreated, invoice)
}

// ListInvoices handles GET /invoices (workshop role).
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	invoices, err := h.invoiceService.List(ctx, workshopID)
	if err != nil {
		return handleServiceError(c, err, "invoices")
	}
	return c.JSON(http.StatusOK, invoices)
}

// GetNextNumber handles GET /invoices/next-number (workshop role).
func (h *InvoiceHandlers) GetNextNumber(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	number, err := h.invoiceService.NextNumber(ctx, workshopID)
	if err != nil {
		return handleServiceError(c, err, "invoice")
	}
	return c.JSON(http.StatusOK, map[string]string{"number": number})
}

// GetInvoice handles GET /invoices/:id (workshop role).
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	invoice, err := h.invoiceService.Get(ctx, workshopID, id)
	if err != nil {
		return handleServiceError(c, err, "invoice")
	}
	return c.JSON(http.StatusOK, invoice)
}

// DownloadInvoicePDF handles GET /invoices/:id/pdf (workshop role).
func (h *InvoiceHandlers) DownloadInvoicePDF(c echo.Context) error {
	ctx := c.Request().Context()
	workshopID, ok := common.GetWorkshopIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	pdf, err := h.invoiceService.RenderPDF(ctx, workshopID, id)
	if err != nil {
		return handleServiceError(c, err, "invoice")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

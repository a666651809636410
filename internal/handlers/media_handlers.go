package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MediaHandlers struct {
	mediaService *services.MediaService
}

func NewMediaHandlers(mediaService *services.MediaService) *MediaHandlers {
	return &MediaHandlers{mediaService: mediaService}
}

// Upload handles POST /media (multipart form, optional report_id field).
func (h *MediaHandlers) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "Missing file field")
	}

	var reportID *uuid.UUID
	if raw := c.FormValue("report_id"); raw != "" {
		id, err := common.ValidateUUID(raw, "report_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		reportID = &id
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	media, err := h.mediaService.Upload(
		c.Request().Context(),
		reportID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return handleServiceError(c, err, "report")
	}
	return c.JSON(http.StatusCreated, media)
}

// List handles GET /media (admin).
func (h *MediaHandlers) List(c echo.Context) error {
	media, err := h.mediaService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "media")
	}
	return c.JSON(http.StatusOK, media)
}

// DownloadURL handles GET /media/:id/url.
func (h *MediaHandlers) DownloadURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.mediaService.DownloadURL(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "media")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Delete handles DELETE /media/:id (admin).
func (h *MediaHandlers) Delete(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.mediaService.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "media")
	}
	return c.NoContent(http.StatusNoContent)
}

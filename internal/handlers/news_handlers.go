package handlers

import (
	"net/http"

	"warsztatplus/internal/common"
	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
)

type NewsHandlers struct {
	newsService *services.NewsService
}

func NewNewsHandlers(newsService *services.NewsService) *NewsHandlers {
	return &NewsHandlers{newsService: newsService}
}

// ListNews handles GET /news (any authenticated user).
func (h *NewsHandlers) ListNews(c echo.Context) error {
	news, err := h.newsService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "news")
	}
	return c.JSON(http.StatusOK, news)
}

// CreateNews handles POST /news (admin).
func (h *NewsHandlers) CreateNews(c echo.Context) error {
	var req services.CreateNewsInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	news, err := h.newsService.Create(c.Request().Context(), &req, &actor)
	if err != nil {
		return handleServiceError(c, err, "news")
	}
	return c.JSON(http.StatusCreated, news)
}

// DeleteNews handles DELETE /news/:id (admin).
func (h *NewsHandlers) DeleteNews(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	actor, _ := common.GetUserEmailFromContext(c.Request().Context())
	if err := h.newsService.Delete(c.Request().Context(), id, &actor); err != nil {
		return handleServiceError(c, err, "news")
	}
	return c.NoContent(http.StatusNoContent)
}

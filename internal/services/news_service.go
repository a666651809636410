package services

import (
	"context"
	"fmt"

	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
)

// NewsService manages the short announcements shown on workshop dashboards.
type NewsService struct {
	newsRepo repositories.NewsRepository
	audit    *AuditService
}

func NewNewsService(newsRepo repositories.NewsRepository, audit *AuditService) *NewsService {
	return &NewsService{newsRepo: newsRepo, audit: audit}
}

type CreateNewsInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

func (s *NewsService) Create(ctx context.Context, input *CreateNewsInput, actorEmail *string) (*models.News, error) {
	if input.Title == "" || input.Body == "" {
		return nil, fmt.Errorf("%w: title and body are required", ErrValidation)
	}
	news := &models.News{
		ID:    uuid.New(),
		Title: input.Title,
		Body:  input.Body,
	}
	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	s.audit.Record(ctx, "news.create", fmt.Sprintf("Announcement published: %s", news.Title), actorEmail, nil)
	return news, nil
}

func (s *NewsService) List(ctx context.Context) ([]*models.News, error) {
	return s.newsRepo.List(ctx)
}

func (s *NewsService) Delete(ctx context.Context, id uuid.UUID, actorEmail *string) error {
	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	s.audit.Record(ctx, "news.delete", "Announcement deleted", actorEmail, models.JSONB{"news_id": id.String()})
	return nil
}

package services

import (
	"context"
	"fmt"

	"warsztatplus/internal/common"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
)

const partsSearchLimit = 50

// PartsService searches the wholesaler parts catalogue and records orders
// placed by workshops.
type PartsService struct {
	partsRepo repositories.PartsRepository
	audit     *AuditService
}

func NewPartsService(partsRepo repositories.PartsRepository, audit *AuditService) *PartsService {
	return &PartsService{partsRepo: partsRepo, audit: audit}
}

func (s *PartsService) Search(ctx context.Context, query string) ([]*models.Part, error) {
	query = common.SanitizeSearchQuery(query)
	if query == "" {
		return []*models.Part{}, nil
	}
	return s.partsRepo.Search(ctx, query, partsSearchLimit)
}

type CreatePartOrderInput struct {
	PartName string   `json:"part_name" validate:"required"`
	PartCode *string  `json:"part_code"`
	Quantity int      `json:"quantity" validate:"required,min=1"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (s *PartsService) CreateOrder(ctx context.Context, workshopID uuid.UUID, input *CreatePartOrderInput, actorEmail *string) (*models.PartOrder, error) {
	if input.PartName == "" {
		return nil, fmt.Errorf("%w: part_name is required", ErrValidation)
	}
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	order := &models.PartOrder{
		ID:         uuid.New(),
		WorkshopID: workshopID,
		PartName:   input.PartName,
		PartCode:   input.PartCode,
		Quantity:   input.Quantity,
		Price:      input.Price,
		Status:     "submitted",
	}
	if err := s.partsRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create part order: %w", err)
	}

	s.audit.Record(ctx, "parts.order", fmt.Sprintf("Part order placed: %s x%d", order.PartName, order.Quantity), actorEmail, models.JSONB{
		"workshop_id": workshopID.String(),
		"order_id":    order.ID.String(),
	})
	return order, nil
}

func (s *PartsService) ListOrders(ctx context.Context, workshopID uuid.UUID) ([]*models.PartOrder, error) {
	return s.partsRepo.ListOrdersByWorkshop(ctx, workshopID)
}

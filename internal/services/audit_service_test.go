package services

import (
	"context"
	"testing"

	"warsztatplus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuditListDefaultsLimitTo100(t *testing.T) {
	repo := new(MockAuditLogsRepository)
	service := NewAuditService(repo)
	repo.On("List", mock.Anything, 100).Return([]*models.AuditLog{}, nil)

	_, err := service.List(context.Background(), 0)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuditListCapsRunawayLimit(t *testing.T) {
	repo := new(MockAuditLogsRepository)
	service := NewAuditService(repo)
	repo.On("List", mock.Anything, 100).Return([]*models.AuditLog{}, nil)

	_, err := service.List(context.Background(), 5000)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

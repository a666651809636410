package services

import (
	"context"
	"testing"
	"time"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// throttleCache records rate-limit traffic so tests can assert on the keys.
type throttleCache struct {
	noopCache
	limitedKeys map[string]bool
	bumpedKeys  []string
}

func newThrottleCache() *throttleCache {
	return &throttleCache{limitedKeys: make(map[string]bool)}
}

func (c *throttleCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return c.limitedKeys[key], nil
}

func (c *throttleCache) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	c.bumpedKeys = append(c.bumpedKeys, key)
	return nil
}

type AuthServiceTestSuite struct {
	suite.Suite
	adminRepo        *MockAdminRepository
	workshopUserRepo *MockWorkshopUserRepository
	workshopRepo     *MockWorkshopRepository
	auditRepo        *MockAuditLogsRepository
	cache            *throttleCache
	service          *AuthService
	ctx              context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.adminRepo = new(MockAdminRepository)
	s.workshopUserRepo = new(MockWorkshopUserRepository)
	s.workshopRepo = new(MockWorkshopRepository)
	s.auditRepo = new(MockAuditLogsRepository)
	s.cache = newThrottleCache()
	s.ctx = context.Background()

	s.service = NewAuthService(s.adminRepo, s.workshopUserRepo, s.workshopRepo, s.cache, NewAuditService(s.auditRepo), "test-secret")
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func (s *AuthServiceTestSuite) TestFailedLoginThrottledPerEmailAndIP() {
	s.adminRepo.On("GetByEmail", s.ctx, "ghost@warsztat.pl").Return(nil, nil)
	s.workshopUserRepo.On("GetByEmail", s.ctx, "ghost@warsztat.pl").Return(nil, nil)

	_, err := s.service.Login(s.ctx, "Ghost@warsztat.pl", "wrong", "10.0.0.7")

	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
	assert.Equal(s.T(), []string{"login:ghost@warsztat.pl:10.0.0.7"}, s.cache.bumpedKeys)
}

func (s *AuthServiceTestSuite) TestThrottledPairRejectedBeforeLookup() {
	s.cache.limitedKeys["login:jan@warsztat.pl:10.0.0.7"] = true

	_, err := s.service.Login(s.ctx, "jan@warsztat.pl", "whatever", "10.0.0.7")

	assert.ErrorIs(s.T(), err, ErrForbidden)
	s.adminRepo.AssertNotCalled(s.T(), "GetByEmail", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestThrottleDoesNotSpanAddresses() {
	s.cache.limitedKeys["login:jan@warsztat.pl:10.0.0.7"] = true
	s.adminRepo.On("GetByEmail", s.ctx, "jan@warsztat.pl").Return(&models.Admin{
		ID:           uuid.New(),
		Email:        "jan@warsztat.pl",
		PasswordHash: hashPassword(s.T(), "s3kretne!"),
	}, nil)
	s.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.Login(s.ctx, "jan@warsztat.pl", "s3kretne!", "192.168.1.20")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "admin", result.Role)
}

func (s *AuthServiceTestSuite) TestWorkshopLoginRecordsAuditEntry() {
	workshopID := uuid.New()
	s.adminRepo.On("GetByEmail", s.ctx, "serwis@warsztat.pl").Return(nil, nil)
	s.workshopUserRepo.On("GetByEmail", s.ctx, "serwis@warsztat.pl").Return(&models.WorkshopUser{
		ID:           uuid.New(),
		WorkshopID:   workshopID,
		Email:        "serwis@warsztat.pl",
		PasswordHash: hashPassword(s.T(), "s3kretne!"),
	}, nil)
	s.workshopRepo.On("GetByID", s.ctx, workshopID).Return(&models.Workshop{
		ID:     workshopID,
		Name:   "Auto Serwis Kowalski",
		Status: models.WorkshopStatusActive,
	}, nil)
	s.auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Type == "auth.login" && entry.ActorEmail != nil && *entry.ActorEmail == "serwis@warsztat.pl"
	})).Return(nil)

	result, err := s.service.Login(s.ctx, "serwis@warsztat.pl", "s3kretne!", "10.0.0.7")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "workshop", result.Role)
	s.auditRepo.AssertExpectations(s.T())
}

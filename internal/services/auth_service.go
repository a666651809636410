package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"warsztatplus/internal/caching"
	"warsztatplus/internal/common"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL = 12 * time.Hour

	loginRateLimit  = 10
	loginRateWindow = 15 * time.Minute
)

type AuthService struct {
	adminRepo        repositories.AdminRepository
	workshopUserRepo repositories.WorkshopUserRepository
	workshopRepo     repositories.WorkshopRepository
	cache            caching.CacheService
	audit            *AuditService
	jwtSecret        string
}

func NewAuthService(
	adminRepo repositories.AdminRepository,
	workshopUserRepo repositories.WorkshopUserRepository,
	workshopRepo repositories.WorkshopRepository,
	cache caching.CacheService,
	audit *AuditService,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		adminRepo:        adminRepo,
		workshopUserRepo: workshopUserRepo,
		workshopRepo:     workshopRepo,
		cache:            cache,
		audit:            audit,
		jwtSecret:        jwtSecret,
	}
}

type LoginResult struct {
	Token      string     `json:"token"`
	Role       string     `json:"role"`
	Email      string     `json:"email"`
	WorkshopID *uuid.UUID `json:"workshop_id,omitempty"`
}

// Login authenticates against admins first, then workshop accounts. The
// same error covers unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	rateKey := loginRateKey(email, clientIP)
	limited, err := s.cache.IsRateLimited(ctx, rateKey, loginRateLimit, loginRateWindow)
	if err != nil {
		log.Printf("WARN: rate limit check failed for %s: %v", clientIP, err)
	} else if limited {
		return nil, fmt.Errorf("%w: too many login attempts", ErrForbidden)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin account: %w", err)
	}
	if admin != nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			return nil, s.failedAttempt(ctx, clientIP, email)
		}
		token, err := s.issueToken(admin.ID, admin.Email, common.RoleAdmin, nil)
		if err != nil {
			return nil, err
		}
		s.audit.Record(ctx, "auth.login", "Administrator logged in", &admin.Email, nil)
		return &LoginResult{Token: token, Role: common.RoleAdmin, Email: admin.Email}, nil
	}

	user, err := s.workshopUserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up workshop account: %w", err)
	}
	if user == nil {
		return nil, s.failedAttempt(ctx, clientIP, email)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failedAttempt(ctx, clientIP, email)
	}

	workshop, err := s.workshopRepo.GetByID(ctx, user.WorkshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workshop: %w", err)
	}
	if workshop == nil || !workshop.Active() {
		return nil, fmt.Errorf("%w: workshop account disabled", ErrForbidden)
	}

	token, err := s.issueToken(user.ID, user.Email, common.RoleWorkshop, &user.WorkshopID)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "auth.login", fmt.Sprintf("Workshop %s logged in", workshop.Name), &user.Email, models.JSONB{
		"workshop_id": user.WorkshopID.String(),
	})
	return &LoginResult{Token: token, Role: common.RoleWorkshop, Email: user.Email, WorkshopID: &user.WorkshopID}, nil
}

// loginRateKey scopes throttling to the (account, address) pair.
func loginRateKey(email, clientIP string) string {
	return "login:" + email + ":" + clientIP
}

func (s *AuthService) failedAttempt(ctx context.Context, clientIP, email string) error {
	if err := s.cache.IncrementRateLimit(ctx, loginRateKey(email, clientIP), loginRateWindow); err != nil {
		log.Printf("WARN: failed to bump login rate limit for %s: %v", clientIP, err)
	}
	log.Printf("login failed for %s from %s", email, clientIP)
	return ErrInvalidCredentials
}

func (s *AuthService) issueToken(userID uuid.UUID, email, role string, workshopID *uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	if workshopID != nil {
		claims["workshop_id"] = workshopID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ChangePassword lets a workshop account rotate its own password.
func (s *AuthService) ChangePassword(ctx context.Context, workshopID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must have at least 8 characters", ErrValidation)
	}

	user, err := s.workshopUserRepo.GetByWorkshopID(ctx, workshopID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.workshopUserRepo.UpdatePassword(ctx, workshopID, string(hash))
}

// EnsureDefaultAdmin seeds the back-office account when the admins table
// is empty, so a fresh deployment is reachable.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}
	admin := &models.Admin{
		ID:           uuid.New(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	log.Printf("seeded default admin account %s", admin.Email)
	return nil
}

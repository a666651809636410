package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	UserEmailKey  contextKey = "user_email"
	UserRoleKey   contextKey = "user_role"
	WorkshopIDKey contextKey = "workshop_id"
)

// Principal roles carried in the JWT.
const (
	RoleAdmin    = "admin"
	RoleWorkshop = "workshop"
)

// GetUserIDFromContext extracts the authenticated user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the authenticated user's email.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRoleFromContext extracts the authenticated role.
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

// GetWorkshopIDFromContext extracts the workshop bound to the current token.
// Absent for admin tokens.
func GetWorkshopIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(WorkshopIDKey).(uuid.UUID)
	return id, ok
}

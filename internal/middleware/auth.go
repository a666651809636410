package middleware

import (
	"context"
	"net/http"
	"strings"

	"warsztatplus/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the Bearer token and places the caller's
// identity (user id, email, role, workshop id) into the request context.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid subject format")
			}

			role, ok := claims["role"].(string)
			if !ok || (role != common.RoleAdmin && role != common.RoleWorkshop) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid role in token")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.UserRoleKey, role)

			if email, ok := claims["email"].(string); ok {
				ctx = context.WithValue(ctx, common.UserEmailKey, email)
			}

			if wid, ok := claims["workshop_id"].(string); ok && wid != "" {
				workshopID, err := uuid.Parse(wid)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid workshop id in token")
				}
				ctx = context.WithValue(ctx, common.WorkshopIDKey, workshopID)
			} else if role == common.RoleWorkshop {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing workshop id in token")
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAdmin allows only back-office administrators through.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(common.RoleAdmin)
}

// RequireWorkshop allows only workshop panel accounts through.
func RequireWorkshop() echo.MiddlewareFunc {
	return requireRole(common.RoleWorkshop)
}

func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, ok := common.GetUserRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			if got != role {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

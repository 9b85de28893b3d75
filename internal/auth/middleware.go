package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is the type of context keys set by the middleware.
type ContextKey string

const (
	// UserIDKey holds the authenticated user's ID in the echo context.
	UserIDKey ContextKey = "user_id"
	// UsernameKey holds the authenticated user's name in the echo context.
	UsernameKey ContextKey = "username"
	// RoleKey holds the authenticated user's role in the echo context.
	RoleKey ContextKey = "role"
)

// JWTMiddleware verifies the bearer token and stores the identity in the
// request context.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractTokenFromHeader(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}

			claims, err := ValidateToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(string(UserIDKey), claims.UserID)
			c.Set(string(UsernameKey), claims.Username)
			c.Set(string(RoleKey), claims.Role)

			return next(c)
		}
	}
}

// RequireRole rejects requests whose verified identity does not carry the
// given role. Must run after JWTMiddleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, ok := c.Get(string(RoleKey)).(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if current != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// extractTokenFromHeader reads the "Bearer <token>" Authorization header.
func extractTokenFromHeader(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}

	return ""
}

// GetUserIDFromContext returns the authenticated user's ID.
func GetUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(string(UserIDKey)).(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}
	return userID, nil
}

// GetRoleFromContext returns the authenticated user's role.
func GetRoleFromContext(c echo.Context) (string, error) {
	role, ok := c.Get(string(RoleKey)).(string)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}
	return role, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// RequireAdmin rejects requests whose authenticated user is not an admin.
// It must run after JWTAuthMiddleware. The forum core re-checks the role on
// every moderation call; this gate just keeps non-admins off the routes.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CallerFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admins only.")
			}
			return next(c)
		}
	}
}

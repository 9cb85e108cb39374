package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/domain"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// RequireAdmin ensures the caller's token carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller is authenticated with any role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/domain"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		sc, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		identity, ok := sc.Identity()
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireGrant ensures the session holds a granted (resource, action) pair.
// The oracle refreshes grants when stale; a failed refresh leaves whatever
// grants are already held, and the check stays fail-closed.
func RequireGrant(resource string, action domain.GrantAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		// A failed refresh is logged by the oracle; the permission check
		// below stays fail-closed either way.
		_ = sc.Oracle.Ensure(c.UserContext())
		if !sc.Store.HasPermission(resource, action) {
			return apperrors.NewForbidden("permission denied")
		}
		return c.Next()
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/session"
)

// EdgeGuard adapts the navigation guard to Fiber. It runs before the auth
// middleware and decides purely on cookie presence and the role cookie, the
// same signals a reverse proxy at the edge would see. Grant detail is never
// consulted here.
func EdgeGuard(guard *session.Guard, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Bearer clients carry no navigation cookies; they go straight to
		// the auth middleware, which enforces token and role itself.
		if c.Get("Authorization") != "" {
			return c.Next()
		}

		token := c.Cookies(cfg.TokenCookie)
		role := domain.Role(c.Cookies(cfg.RoleCookie))

		outcome := guard.Decide(c.Path(), token != "", role)
		if outcome.Proceed {
			return c.Next()
		}
		return c.Redirect(outcome.Redirect, fiber.StatusFound)
	}
}

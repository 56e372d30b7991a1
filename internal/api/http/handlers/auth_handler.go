package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/service"
)

// AuthHandler exposes login, logout and the authorization authority surface.
type AuthHandler struct {
	auth       *service.AuthService
	sessionCfg config.SessionConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{auth: authService, sessionCfg: sessionCfg}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	// The edge guard reads these on subsequent navigations.
	c.Cookie(&fiber.Cookie{
		Name:     h.sessionCfg.TokenCookie,
		Value:    result.Token,
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:    h.sessionCfg.RoleCookie,
		Value:   string(result.Identity.Role),
		Expires: result.ExpiresAt,
		Path:    "/",
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewIdentityResponse(result.Identity),
			"auth": dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		},
	})
}

// Logout handles POST /auth/logout. Clearing an absent session succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := h.requestToken(c)
	if token != "" {
		if err := h.auth.Logout(c.Context(), token); err != nil {
			return err
		}
	}

	c.ClearCookie(h.sessionCfg.TokenCookie)
	c.ClearCookie(h.sessionCfg.RoleCookie)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sc, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	identity, ok := sc.Identity()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	// Surface whatever grants are currently resolved; a failed refresh
	// leaves the last known set in place.
	_ = sc.Oracle.Ensure(c.UserContext())
	snap := sc.Store.Snapshot()

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":        dto.NewIdentityResponse(identity),
			"permissions": dto.NewGrantResponses(snap.Grants),
		},
	})
}

// Permissions handles GET /auth/permissions/:userID. Users may read their own
// grant set; admin roles may read anyone's.
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	sc, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	identity, ok := sc.Identity()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	userID := c.Params("userID")
	if userID != identity.ID && !isAdminRole(identity.Role) {
		return fiber.NewError(http.StatusForbidden, "cannot read another user's grant set")
	}

	grants, err := h.auth.ListGrants(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGrantResponses(grants)})
}

func (h *AuthHandler) requestToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(h.sessionCfg.TokenCookie)
}

func isAdminRole(role domain.Role) bool {
	for _, admin := range domain.AdminRoles() {
		if role == admin {
			return true
		}
	}
	return false
}

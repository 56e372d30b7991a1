package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/service"
)

// UsersHandler exposes portal account management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListAccounts(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /admin/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetAccount(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// Create handles POST /admin/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	user, password, err := parseUserRequest(c)
	if err != nil {
		return err
	}
	if err := h.users.CreateAccount(c.Context(), user, password); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// Update handles PUT /admin/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	user, password, err := parseUserRequest(c)
	if err != nil {
		return err
	}
	user.ID = c.Params("id")
	if err := h.users.UpdateAccount(c.Context(), user, password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// ReplaceGrants handles PUT /admin/users/:id/permissions. The whole grant set
// is swapped; active sessions see the change on their next refresh window.
func (h *UsersHandler) ReplaceGrants(c *fiber.Ctx) error {
	var req dto.GrantsReplaceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	grants := make([]domain.Grant, 0, len(req.Grants))
	for _, grant := range req.Grants {
		grants = append(grants, domain.Grant{
			Resource: grant.Resource,
			Action:   domain.GrantAction(grant.Action),
			Granted:  grant.Granted,
		})
	}
	if err := h.users.ReplaceGrants(c.Context(), c.Params("id"), grants); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseUserRequest(c *fiber.Ctx) (*domain.User, string, error) {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, "", fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	return &domain.User{
		Email:      req.Email,
		Role:       domain.Role(req.Role),
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Avatar:     req.Avatar,
		Status:     domain.UserStatus(req.Status),
	}, req.Password, nil
}

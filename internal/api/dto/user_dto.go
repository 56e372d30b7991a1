package dto

import (
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
)

// UserRequest payload for account create/update. Password is optional on
// update; when empty the stored secret is kept.
type UserRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password,omitempty"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Avatar     *string `json:"avatar,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// UserResponse mirrors a portal account without its secret.
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Role       domain.Role       `json:"role"`
	EmployeeID *string           `json:"employee_id,omitempty"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Avatar     *string           `json:"avatar,omitempty"`
	Status     domain.UserStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewUserResponse maps the domain account.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Avatar:     user.Avatar,
		Status:     user.Status,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// GrantRequest one authorization fact in a replacement payload.
type GrantRequest struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Granted  bool   `json:"granted"`
}

// GrantsReplaceRequest payload for swapping a user's grant set wholesale.
type GrantsReplaceRequest struct {
	Grants []GrantRequest `json:"grants"`
}

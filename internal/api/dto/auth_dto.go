package dto

import (
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
)

// LoginRequest payload for credential submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityResponse mirrors the session principal.
type IdentityResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	EmployeeID *string     `json:"employee_id,omitempty"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Avatar     *string     `json:"avatar,omitempty"`
}

// NewIdentityResponse maps the domain identity.
func NewIdentityResponse(identity domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:         identity.ID,
		Email:      identity.Email,
		Role:       identity.Role,
		EmployeeID: identity.EmployeeID,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Avatar:     identity.Avatar,
	}
}

// GrantResponse mirrors one authorization fact.
type GrantResponse struct {
	ID       string             `json:"id"`
	Resource string             `json:"resource"`
	Action   domain.GrantAction `json:"action"`
	Granted  bool               `json:"granted"`
}

// NewGrantResponses maps a grant set.
func NewGrantResponses(grants []domain.Grant) []GrantResponse {
	out := make([]GrantResponse, 0, len(grants))
	for _, grant := range grants {
		out = append(out, GrantResponse{
			ID:       grant.ID,
			Resource: grant.Resource,
			Action:   grant.Action,
			Granted:  grant.Granted,
		})
	}
	return out
}

package domain

import "time"

// UserStatus represents lifecycle states for a portal account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User is the directory record backing a portal login.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	FirstName    string
	LastName     string
	Avatar       *string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated principal held by a session. It carries the
// directory record's profile fields without the secret material, and is
// replaced wholesale on re-login.
type Identity struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Avatar     *string `json:"avatar,omitempty"`
}

// Identity builds the session principal from the directory record.
func (u *User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Avatar:     u.Avatar,
	}
}

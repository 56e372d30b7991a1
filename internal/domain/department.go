package domain

import "time"

// Department groups employees within the organization structure.
type Department struct {
	ID            string
	Name          string
	Code          string
	ManagerID     *string
	EmployeeCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

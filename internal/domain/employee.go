package domain

import "time"

// EmploymentType classifies the contractual arrangement.
type EmploymentType string

const (
	EmploymentPermanent EmploymentType = "permanent"
	EmploymentContract  EmploymentType = "contract"
	EmploymentProbation EmploymentType = "probation"
)

// EmployeeStatus represents lifecycle states for an employee record.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusInactive   EmployeeStatus = "inactive"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// Employee is the HR master record.
type Employee struct {
	ID             string
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	DepartmentID   string
	PositionTitle  string
	ManagerID      *string
	DateOfJoining  time.Time
	EmploymentType EmploymentType
	Status         EmployeeStatus
	BasicSalary    float64
	Currency       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

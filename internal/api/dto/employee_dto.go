package dto

import (
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
)

// EmployeeRequest payload for creating or updating an employee.
type EmployeeRequest struct {
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	DepartmentID   string  `json:"department_id"`
	PositionTitle  string  `json:"position_title"`
	ManagerID      *string `json:"manager_id,omitempty"`
	DateOfJoining  string  `json:"date_of_joining"`
	EmploymentType string  `json:"employment_type"`
	Status         string  `json:"status"`
	BasicSalary    float64 `json:"basic_salary"`
	Currency       string  `json:"currency"`
}

// SalaryInfo is only included for viewers holding payroll read access.
type SalaryInfo struct {
	BasicSalary float64 `json:"basic_salary"`
	Currency    string  `json:"currency"`
}

// EmployeeResponse mirrors an employee record.
type EmployeeResponse struct {
	ID             string      `json:"id"`
	EmployeeNumber string      `json:"employee_number"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email"`
	Phone          *string     `json:"phone,omitempty"`
	DepartmentID   string      `json:"department_id"`
	PositionTitle  string      `json:"position_title"`
	ManagerID      *string     `json:"manager_id,omitempty"`
	DateOfJoining  time.Time   `json:"date_of_joining"`
	EmploymentType string      `json:"employment_type"`
	Status         string      `json:"status"`
	SalaryInfo     *SalaryInfo `json:"salary_info,omitempty"`
}

// NewEmployeeResponse maps the domain record, optionally attaching salary
// detail.
func NewEmployeeResponse(employee domain.Employee, includeSalary bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             employee.ID,
		EmployeeNumber: employee.EmployeeNumber,
		FirstName:      employee.FirstName,
		LastName:       employee.LastName,
		Email:          employee.Email,
		Phone:          employee.Phone,
		DepartmentID:   employee.DepartmentID,
		PositionTitle:  employee.PositionTitle,
		ManagerID:      employee.ManagerID,
		DateOfJoining:  employee.DateOfJoining,
		EmploymentType: string(employee.EmploymentType),
		Status:         string(employee.Status),
	}
	if includeSalary {
		resp.SalaryInfo = &SalaryInfo{BasicSalary: employee.BasicSalary, Currency: employee.Currency}
	}
	return resp
}

// DepartmentRequest payload for organization units.
type DepartmentRequest struct {
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// DepartmentResponse mirrors a department.
type DepartmentResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	ManagerID     *string `json:"manager_id,omitempty"`
	EmployeeCount int     `json:"employee_count"`
}

// NewDepartmentResponse maps the domain record.
func NewDepartmentResponse(department domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            department.ID,
		Name:          department.Name,
		Code:          department.Code,
		ManagerID:     department.ManagerID,
		EmployeeCount: department.EmployeeCount,
	}
}

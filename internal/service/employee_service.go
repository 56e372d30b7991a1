package service

import (
	"context"

	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/repository"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// EmployeeService orchestrates employee and department records.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, departments repository.DepartmentRepository) *EmployeeService {
	return &EmployeeService{employees: employees, departments: departments}
}

// CreateEmployee validates and stores a new employee record.
func (s *EmployeeService) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	if employee.EmployeeNumber == "" || employee.Email == "" || employee.FirstName == "" || employee.LastName == "" {
		return apperrors.NewValidationError("employee number, name and email are required", nil)
	}
	if _, err := s.departments.GetByID(ctx, employee.DepartmentID); err != nil {
		return apperrors.NewValidationError("unknown department", map[string]any{"department_id": employee.DepartmentID})
	}
	if employee.Status == "" {
		employee.Status = domain.EmployeeStatusActive
	}
	if employee.EmploymentType == "" {
		employee.EmploymentType = domain.EmploymentPermanent
	}
	return s.employees.Create(ctx, employee)
}

// UpdateEmployee stores changes to an existing record.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	if _, err := s.employees.GetByID(ctx, employee.ID); err != nil {
		return err
	}
	return s.employees.Update(ctx, employee)
}

// DeleteEmployee removes an employee record.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

// GetEmployee fetches one employee.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// ListEmployees returns all employees, optionally narrowed to a department.
func (s *EmployeeService) ListEmployees(ctx context.Context, departmentID string) ([]domain.Employee, error) {
	if departmentID != "" {
		return s.employees.ListByDepartment(ctx, departmentID)
	}
	return s.employees.List(ctx)
}

// CreateDepartment stores a new organization unit.
func (s *EmployeeService) CreateDepartment(ctx context.Context, department *domain.Department) error {
	if department.Name == "" || department.Code == "" {
		return apperrors.NewValidationError("department name and code are required", nil)
	}
	return s.departments.Create(ctx, department)
}

// UpdateDepartment stores changes to an organization unit.
func (s *EmployeeService) UpdateDepartment(ctx context.Context, department *domain.Department) error {
	return s.departments.Update(ctx, department)
}

// DeleteDepartment removes an organization unit.
func (s *EmployeeService) DeleteDepartment(ctx context.Context, id string) error {
	employees, err := s.employees.ListByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if len(employees) > 0 {
		return apperrors.NewConflict("department still has employees", map[string]any{"count": len(employees)})
	}
	return s.departments.Delete(ctx, id)
}

// ListDepartments returns the organization structure.
func (s *EmployeeService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantumhr/portal-service/internal/domain"
)

// EmployeeRepository defines persistence access for employee master records.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `
        id, employee_number, first_name, last_name, email, phone, department_id,
        position_title, manager_id, date_of_joining, employment_type, status,
        basic_salary, currency, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (employee_number, first_name, last_name, email, phone,
               department_id, position_title, manager_id, date_of_joining,
               employment_type, status, basic_salary, currency)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		employee.EmployeeNumber,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.DepartmentID,
		employee.PositionTitle,
		employee.ManagerID,
		employee.DateOfJoining,
		employee.EmploymentType,
		employee.Status,
		employee.BasicSalary,
		employee.Currency,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET first_name=$1, last_name=$2, email=$3, phone=$4,
               department_id=$5, position_title=$6, manager_id=$7,
               employment_type=$8, status=$9, basic_salary=$10, currency=$11,
               updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.DepartmentID,
		employee.PositionTitle,
		employee.ManagerID,
		employee.EmploymentType,
		employee.Status,
		employee.BasicSalary,
		employee.Currency,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`

	var employee domain.Employee
	if err := scanEmployee(r.pool.QueryRow(ctx, query, id), &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_number`
	return r.queryMany(ctx, query)
}

func (r *employeeRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE department_id=$1 ORDER BY employee_number`
	return r.queryMany(ctx, query, departmentID)
}

func (r *employeeRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := scanEmployee(rows, &employee); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func scanEmployee(row pgx.Row, employee *domain.Employee) error {
	return row.Scan(
		&employee.ID,
		&employee.EmployeeNumber,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Phone,
		&employee.DepartmentID,
		&employee.PositionTitle,
		&employee.ManagerID,
		&employee.DateOfJoining,
		&employee.EmploymentType,
		&employee.Status,
		&employee.BasicSalary,
		&employee.Currency,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantumhr/portal-service/internal/domain"
)

// DepartmentRepository defines persistence access for organization units.
type DepartmentRepository interface {
	Create(ctx context.Context, department *domain.Department) error
	Update(ctx context.Context, department *domain.Department) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository returns a Postgres-backed implementation.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, department *domain.Department) error {
	const query = `
        INSERT INTO departments (name, code, manager_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		department.Name,
		department.Code,
		department.ManagerID,
	).Scan(&department.ID, &department.CreatedAt, &department.UpdatedAt)
}

func (r *departmentRepository) Update(ctx context.Context, department *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, code=$2, manager_id=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		department.Name,
		department.Code,
		department.ManagerID,
		department.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	const query = `
        SELECT d.id, d.name, d.code, d.manager_id,
               (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id),
               d.created_at, d.updated_at
        FROM departments d WHERE d.id=$1`

	var department domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.Code,
		&department.ManagerID,
		&department.EmployeeCount,
		&department.CreatedAt,
		&department.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `
        SELECT d.id, d.name, d.code, d.manager_id,
               (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id),
               d.created_at, d.updated_at
        FROM departments d ORDER BY d.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var department domain.Department
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.Code,
			&department.ManagerID,
			&department.EmployeeCount,
			&department.CreatedAt,
			&department.UpdatedAt,
		); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, rows.Err()
}

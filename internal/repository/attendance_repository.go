package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantumhr/portal-service/internal/domain"
)

// AttendanceRepository defines persistence access for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	Update(ctx context.Context, record *domain.AttendanceRecord) error
	GetForDay(ctx context.Context, employeeID string, day time.Time) (*domain.AttendanceRecord, error)
	GetOpenForDay(ctx context.Context, employeeID string, day time.Time) (*domain.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.AttendanceRecord, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository returns a Postgres-backed implementation.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        INSERT INTO attendance (employee_id, work_date, check_in)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		record.EmployeeID,
		record.WorkDate,
		record.CheckIn,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *attendanceRepository) Update(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        UPDATE attendance SET check_out=$1, hours_worked=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, record.CheckOut, record.HoursWorked, record.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attendanceRepository) GetForDay(ctx context.Context, employeeID string, day time.Time) (*domain.AttendanceRecord, error) {
	const query = `
        SELECT id, employee_id, work_date, check_in, check_out, hours_worked, created_at, updated_at
        FROM attendance
        WHERE employee_id=$1 AND work_date=$2`

	var record domain.AttendanceRecord
	if err := r.pool.QueryRow(ctx, query, employeeID, day).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.WorkDate,
		&record.CheckIn,
		&record.CheckOut,
		&record.HoursWorked,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) GetOpenForDay(ctx context.Context, employeeID string, day time.Time) (*domain.AttendanceRecord, error) {
	const query = `
        SELECT id, employee_id, work_date, check_in, check_out, hours_worked, created_at, updated_at
        FROM attendance
        WHERE employee_id=$1 AND work_date=$2 AND check_out IS NULL`

	var record domain.AttendanceRecord
	if err := r.pool.QueryRow(ctx, query, employeeID, day).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.WorkDate,
		&record.CheckIn,
		&record.CheckOut,
		&record.HoursWorked,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.AttendanceRecord, error) {
	if limit <= 0 {
		limit = 31
	}
	const query = `
        SELECT id, employee_id, work_date, check_in, check_out, hours_worked, created_at, updated_at
        FROM attendance WHERE employee_id=$1
        ORDER BY work_date DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var record domain.AttendanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.EmployeeID,
			&record.WorkDate,
			&record.CheckIn,
			&record.CheckOut,
			&record.HoursWorked,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantumhr/portal-service/internal/domain"
)

// LeaveRepository defines persistence access for leave types and requests.
type LeaveRepository interface {
	ListTypes(ctx context.Context) ([]domain.LeaveType, error)
	GetType(ctx context.Context, id string) (*domain.LeaveType, error)
	CreateRequest(ctx context.Context, request *domain.LeaveRequest) error
	GetRequest(ctx context.Context, id string) (*domain.LeaveRequest, error)
	UpdateRequest(ctx context.Context, request *domain.LeaveRequest) error
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error)
	ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]domain.LeaveRequest, error)
	SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (float64, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository returns a Postgres-backed implementation.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

func (r *leaveRepository) ListTypes(ctx context.Context) ([]domain.LeaveType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, days_per_year FROM leave_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.LeaveType
	for rows.Next() {
		var lt domain.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.DaysPerYear); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *leaveRepository) GetType(ctx context.Context, id string) (*domain.LeaveType, error) {
	var lt domain.LeaveType
	err := r.pool.QueryRow(ctx, `SELECT id, name, days_per_year FROM leave_types WHERE id=$1`, id).
		Scan(&lt.ID, &lt.Name, &lt.DaysPerYear)
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

const leaveRequestColumns = `
        id, employee_id, leave_type_id, start_date, end_date, number_of_days,
        reason, status, approver_id, approval_date, rejection_reason,
        created_at, updated_at`

func (r *leaveRepository) CreateRequest(ctx context.Context, request *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date,
               number_of_days, reason, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveTypeID,
		request.StartDate,
		request.EndDate,
		request.NumberOfDays,
		request.Reason,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *leaveRepository) GetRequest(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id=$1`

	var request domain.LeaveRequest
	if err := scanLeaveRequest(r.pool.QueryRow(ctx, query, id), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *leaveRepository) UpdateRequest(ctx context.Context, request *domain.LeaveRequest) error {
	const query = `
        UPDATE leave_requests SET status=$1, approver_id=$2, approval_date=$3,
               rejection_reason=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		request.Status,
		request.ApproverID,
		request.ApprovalDate,
		request.RejectionReason,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE employee_id=$1 ORDER BY start_date DESC`
	return r.queryMany(ctx, query, employeeID)
}

func (r *leaveRepository) ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE status=$1 ORDER BY created_at`
	return r.queryMany(ctx, query, status)
}

func (r *leaveRepository) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(number_of_days), 0)
        FROM leave_requests
        WHERE employee_id=$1 AND leave_type_id=$2 AND status='approved'
          AND EXTRACT(YEAR FROM start_date)=$3`

	var used float64
	if err := r.pool.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(&used); err != nil {
		return 0, err
	}
	return used, nil
}

func (r *leaveRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.LeaveRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.LeaveRequest
	for rows.Next() {
		var request domain.LeaveRequest
		if err := scanLeaveRequest(rows, &request); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanLeaveRequest(row pgx.Row, request *domain.LeaveRequest) error {
	return row.Scan(
		&request.ID,
		&request.EmployeeID,
		&request.LeaveTypeID,
		&request.StartDate,
		&request.EndDate,
		&request.NumberOfDays,
		&request.Reason,
		&request.Status,
		&request.ApproverID,
		&request.ApprovalDate,
		&request.RejectionReason,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
}

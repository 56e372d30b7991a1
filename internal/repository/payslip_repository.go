package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantumhr/portal-service/internal/domain"
)

// PayslipRepository defines persistence access for payslips.
type PayslipRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Payslip, error)
	ListByPeriod(ctx context.Context, year, month int) ([]domain.Payslip, error)
	SummaryByPeriod(ctx context.Context, year, month int) (*domain.PayrollSummary, error)
}

type payslipRepository struct {
	pool *pgxpool.Pool
}

// NewPayslipRepository returns a Postgres-backed implementation.
func NewPayslipRepository(pool *pgxpool.Pool) PayslipRepository {
	return &payslipRepository{pool: pool}
}

const payslipColumns = `
        id, employee_id, year, month, basic, allowances, deductions, net_pay,
        status, paid_at, created_at`

func (r *payslipRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Payslip, error) {
	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE employee_id=$1 ORDER BY year DESC, month DESC`
	return r.queryMany(ctx, query, employeeID)
}

func (r *payslipRepository) ListByPeriod(ctx context.Context, year, month int) ([]domain.Payslip, error) {
	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE year=$1 AND month=$2 ORDER BY employee_id`
	return r.queryMany(ctx, query, year, month)
}

func (r *payslipRepository) SummaryByPeriod(ctx context.Context, year, month int) (*domain.PayrollSummary, error) {
	const query = `
        SELECT COUNT(*),
               COALESCE(SUM(basic + allowances), 0),
               COALESCE(SUM(deductions), 0),
               COALESCE(SUM(net_pay), 0)
        FROM payslips WHERE year=$1 AND month=$2`

	summary := &domain.PayrollSummary{Year: year, Month: month}
	if err := r.pool.QueryRow(ctx, query, year, month).Scan(
		&summary.Headcount,
		&summary.TotalGross,
		&summary.TotalDeductions,
		&summary.TotalNet,
	); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *payslipRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Payslip, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []domain.Payslip
	for rows.Next() {
		var payslip domain.Payslip
		if err := rows.Scan(
			&payslip.ID,
			&payslip.EmployeeID,
			&payslip.Year,
			&payslip.Month,
			&payslip.Basic,
			&payslip.Allowances,
			&payslip.Deductions,
			&payslip.NetPay,
			&payslip.Status,
			&payslip.PaidAt,
			&payslip.CreatedAt,
		); err != nil {
			return nil, err
		}
		payslips = append(payslips, payslip)
	}
	return payslips, rows.Err()
}

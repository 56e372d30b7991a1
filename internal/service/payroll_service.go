package service

import (
	"context"

	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/repository"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// PayrollService exposes payslips and period summaries.
type PayrollService struct {
	payslips repository.PayslipRepository
}

// NewPayrollService builds the service.
func NewPayrollService(payslips repository.PayslipRepository) *PayrollService {
	return &PayrollService{payslips: payslips}
}

// PayslipsForEmployee returns an employee's pay history.
func (s *PayrollService) PayslipsForEmployee(ctx context.Context, employeeID string) ([]domain.Payslip, error) {
	return s.payslips.ListByEmployee(ctx, employeeID)
}

// PayslipsForPeriod returns all payslips in a pay period.
func (s *PayrollService) PayslipsForPeriod(ctx context.Context, year, month int) ([]domain.Payslip, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month out of range", map[string]any{"month": month})
	}
	return s.payslips.ListByPeriod(ctx, year, month)
}

// Summary aggregates one pay period across the organization.
func (s *PayrollService) Summary(ctx context.Context, year, month int) (*domain.PayrollSummary, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month out of range", map[string]any{"month": month})
	}
	return s.payslips.SummaryByPeriod(ctx, year, month)
}

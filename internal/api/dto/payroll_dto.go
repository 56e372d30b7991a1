package dto

import (
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
)

// PayslipResponse mirrors one pay statement.
type PayslipResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Basic      float64    `json:"basic"`
	Allowances float64    `json:"allowances"`
	Deductions float64    `json:"deductions"`
	NetPay     float64    `json:"net_pay"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

// NewPayslipResponses maps a payslip list.
func NewPayslipResponses(payslips []domain.Payslip) []PayslipResponse {
	out := make([]PayslipResponse, 0, len(payslips))
	for _, payslip := range payslips {
		out = append(out, PayslipResponse{
			ID:         payslip.ID,
			EmployeeID: payslip.EmployeeID,
			Year:       payslip.Year,
			Month:      payslip.Month,
			Basic:      payslip.Basic,
			Allowances: payslip.Allowances,
			Deductions: payslip.Deductions,
			NetPay:     payslip.NetPay,
			Status:     string(payslip.Status),
			PaidAt:     payslip.PaidAt,
		})
	}
	return out
}

// AttendanceResponse mirrors one attendance record.
type AttendanceResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	WorkDate    time.Time  `json:"work_date"`
	CheckIn     time.Time  `json:"check_in"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	HoursWorked *float64   `json:"hours_worked,omitempty"`
}

// NewAttendanceResponse maps the domain record.
func NewAttendanceResponse(record domain.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:          record.ID,
		EmployeeID:  record.EmployeeID,
		WorkDate:    record.WorkDate,
		CheckIn:     record.CheckIn,
		CheckOut:    record.CheckOut,
		HoursWorked: record.HoursWorked,
	}
}

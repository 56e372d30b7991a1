package domain

import "time"

// PayslipStatus represents payment state of a payslip.
type PayslipStatus string

const (
	PayslipStatusPending PayslipStatus = "pending"
	PayslipStatusPaid    PayslipStatus = "paid"
)

// Payslip is one employee's pay statement for a month.
type Payslip struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int
	Basic      float64
	Allowances float64
	Deductions float64
	NetPay     float64
	Status     PayslipStatus
	PaidAt     *time.Time
	CreatedAt  time.Time
}

// PayrollSummary aggregates a pay period across the organization.
type PayrollSummary struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	Headcount       int     `json:"headcount"`
	TotalGross      float64 `json:"total_gross"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNet        float64 `json:"total_net"`
}

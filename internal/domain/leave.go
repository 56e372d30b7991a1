package domain

import "time"

// LeaveStatus represents the approval state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// LeaveType describes an entitlement category, e.g. annual or sick leave.
type LeaveType struct {
	ID          string
	Name        string
	DaysPerYear float64
}

// LeaveRequest is a single request for time off.
type LeaveRequest struct {
	ID              string
	EmployeeID      string
	LeaveTypeID     string
	StartDate       time.Time
	EndDate         time.Time
	NumberOfDays    float64
	Reason          string
	Status          LeaveStatus
	ApproverID      *string
	ApprovalDate    *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeaveBalance reports remaining entitlement for one leave type.
type LeaveBalance struct {
	LeaveTypeID   string
	LeaveTypeName string
	TotalDays     float64
	UsedDays      float64
	RemainingDays float64
}

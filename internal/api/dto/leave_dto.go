package dto

import (
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
)

// LeaveApplyRequest payload for a new leave request.
type LeaveApplyRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

// LeaveRejectRequest payload for a rejection decision.
type LeaveRejectRequest struct {
	Reason string `json:"reason"`
}

// LeaveRequestResponse mirrors a leave request.
type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	LeaveTypeID     string     `json:"leave_type_id"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	NumberOfDays    float64    `json:"number_of_days"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ApproverID      *string    `json:"approver_id,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

// NewLeaveRequestResponse maps the domain record.
func NewLeaveRequestResponse(request domain.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		LeaveTypeID:     request.LeaveTypeID,
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		NumberOfDays:    request.NumberOfDays,
		Reason:          request.Reason,
		Status:          string(request.Status),
		ApproverID:      request.ApproverID,
		ApprovalDate:    request.ApprovalDate,
		RejectionReason: request.RejectionReason,
	}
}

// NewLeaveRequestResponses maps a request list.
func NewLeaveRequestResponses(requests []domain.LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, NewLeaveRequestResponse(request))
	}
	return out
}

// LeaveBalanceResponse mirrors one entitlement balance.
type LeaveBalanceResponse struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name"`
	TotalDays     float64 `json:"total_days"`
	UsedDays      float64 `json:"used_days"`
	RemainingDays float64 `json:"remaining_days"`
}

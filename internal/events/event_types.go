package events

import (
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveRequested EventType = "leave_requested"
	EventLeaveApproved  EventType = "leave_approved"
	EventLeaveRejected  EventType = "leave_rejected"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID string      `json:"employee_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// LeaveRequestedPayload payload.
type LeaveRequestedPayload struct {
	RequestID    string    `json:"request_id"`
	LeaveTypeID  string    `json:"leave_type_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	NumberOfDays float64   `json:"number_of_days"`
}

// LeaveDecisionPayload payload for approvals and rejections.
type LeaveDecisionPayload struct {
	RequestID       string             `json:"request_id"`
	NewStatus       domain.LeaveStatus `json:"new_status"`
	ApproverID      string             `json:"approver_id"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

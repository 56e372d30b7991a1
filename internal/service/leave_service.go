package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/events"
	"github.com/quantumhr/portal-service/internal/repository"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// LeaveService manages leave requests, approvals and balances.
type LeaveService struct {
	leaves     repository.LeaveRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLeaveService builds the service.
func NewLeaveService(leaves repository.LeaveRepository, dispatcher events.Dispatcher, logger *zap.Logger) *LeaveService {
	return &LeaveService{leaves: leaves, dispatcher: dispatcher, logger: logger}
}

// RequestDays computes the inclusive calendar-day span of a request.
func RequestDays(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours()/24 + 1
}

// Apply submits a new leave request in pending state.
func (s *LeaveService) Apply(ctx context.Context, actor domain.Identity, request *domain.LeaveRequest) error {
	if request.EmployeeID == "" || request.LeaveTypeID == "" {
		return apperrors.NewValidationError("employee and leave type are required", nil)
	}
	if request.EndDate.Before(request.StartDate) {
		return apperrors.NewValidationError("end date precedes start date", nil)
	}
	if _, err := s.leaves.GetType(ctx, request.LeaveTypeID); err != nil {
		return apperrors.NewValidationError("unknown leave type", map[string]any{"leave_type_id": request.LeaveTypeID})
	}

	if request.NumberOfDays <= 0 {
		request.NumberOfDays = RequestDays(request.StartDate, request.EndDate)
	}
	request.Status = domain.LeaveStatusPending
	if err := s.leaves.CreateRequest(ctx, request); err != nil {
		return err
	}

	s.publish(ctx, events.EventLeaveRequested, actor, request.EmployeeID, events.LeaveRequestedPayload{
		RequestID:    request.ID,
		LeaveTypeID:  request.LeaveTypeID,
		StartDate:    request.StartDate,
		EndDate:      request.EndDate,
		NumberOfDays: request.NumberOfDays,
	})
	return nil
}

// Approve marks a pending request approved.
func (s *LeaveService) Approve(ctx context.Context, actor domain.Identity, requestID string) (*domain.LeaveRequest, error) {
	return s.decide(ctx, actor, requestID, domain.LeaveStatusApproved, "")
}

// Reject marks a pending request rejected with a reason.
func (s *LeaveService) Reject(ctx context.Context, actor domain.Identity, requestID, reason string) (*domain.LeaveRequest, error) {
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required", nil)
	}
	return s.decide(ctx, actor, requestID, domain.LeaveStatusRejected, reason)
}

// Cancel withdraws an employee's own pending request.
func (s *LeaveService) Cancel(ctx context.Context, actor domain.Identity, requestID string) (*domain.LeaveRequest, error) {
	request, err := s.leaves.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actor.EmployeeID == nil || *actor.EmployeeID != request.EmployeeID {
		return nil, apperrors.NewForbidden("cannot cancel another employee's request")
	}
	if request.Status != domain.LeaveStatusPending {
		return nil, apperrors.NewConflict("only pending requests can be cancelled", map[string]any{"status": request.Status})
	}
	request.Status = domain.LeaveStatusCancelled
	if err := s.leaves.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListForEmployee returns an employee's leave history.
func (s *LeaveService) ListForEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	return s.leaves.ListByEmployee(ctx, employeeID)
}

// ListPending returns all requests awaiting a decision.
func (s *LeaveService) ListPending(ctx context.Context) ([]domain.LeaveRequest, error) {
	return s.leaves.ListByStatus(ctx, domain.LeaveStatusPending)
}

// Balances reports remaining entitlement per leave type for a year.
// Remaining days equal the type's annual total minus the sum of approved
// request days in that year.
func (s *LeaveService) Balances(ctx context.Context, employeeID string, year int) ([]domain.LeaveBalance, error) {
	types, err := s.leaves.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]domain.LeaveBalance, 0, len(types))
	for _, lt := range types {
		used, err := s.leaves.SumApprovedDays(ctx, employeeID, lt.ID, year)
		if err != nil {
			return nil, err
		}
		balances = append(balances, domain.LeaveBalance{
			LeaveTypeID:   lt.ID,
			LeaveTypeName: lt.Name,
			TotalDays:     lt.DaysPerYear,
			UsedDays:      used,
			RemainingDays: lt.DaysPerYear - used,
		})
	}
	return balances, nil
}

func (s *LeaveService) decide(ctx context.Context, actor domain.Identity, requestID string, status domain.LeaveStatus, reason string) (*domain.LeaveRequest, error) {
	request, err := s.leaves.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.LeaveStatusPending {
		return nil, apperrors.NewConflict("request already decided", map[string]any{"status": request.Status})
	}

	now := time.Now()
	request.Status = status
	request.ApproverID = &actor.ID
	request.ApprovalDate = &now
	if reason != "" {
		request.RejectionReason = &reason
	}
	if err := s.leaves.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	eventType := events.EventLeaveApproved
	if status == domain.LeaveStatusRejected {
		eventType = events.EventLeaveRejected
	}
	s.publish(ctx, eventType, actor, request.EmployeeID, events.LeaveDecisionPayload{
		RequestID:       request.ID,
		NewStatus:       status,
		ApproverID:      actor.ID,
		RejectionReason: reason,
	})
	return request, nil
}

func (s *LeaveService) publish(ctx context.Context, eventType events.EventType, actor domain.Identity, employeeID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Actor:      events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp:  time.Now(),
		Payload:    payload,
	})
	if err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}

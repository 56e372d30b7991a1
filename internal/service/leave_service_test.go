package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/events"
)

type fakeLeaveRepo struct {
	types    []domain.LeaveType
	requests map[string]*domain.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		types: []domain.LeaveType{
			{ID: "lt-annual", Name: "Annual Leave", DaysPerYear: 21},
			{ID: "lt-sick", Name: "Sick Leave", DaysPerYear: 10},
		},
		requests: make(map[string]*domain.LeaveRequest),
	}
}

func (f *fakeLeaveRepo) ListTypes(_ context.Context) ([]domain.LeaveType, error) {
	return f.types, nil
}

func (f *fakeLeaveRepo) GetType(_ context.Context, id string) (*domain.LeaveType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			return &f.types[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLeaveRepo) CreateRequest(_ context.Context, request *domain.LeaveRequest) error {
	f.nextID++
	request.ID = "lr-" + time.Now().Format("150405") + "-" + string(rune('a'+f.nextID))
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeLeaveRepo) GetRequest(_ context.Context, id string) (*domain.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *request
	return &out, nil
}

func (f *fakeLeaveRepo) UpdateRequest(_ context.Context, request *domain.LeaveRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByStatus(_ context.Context, status domain.LeaveStatus) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, request := range f.requests {
		if request.Status == status {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) SumApprovedDays(_ context.Context, employeeID, leaveTypeID string, year int) (float64, error) {
	var sum float64
	for _, request := range f.requests {
		if request.EmployeeID == employeeID &&
			request.LeaveTypeID == leaveTypeID &&
			request.Status == domain.LeaveStatusApproved &&
			request.StartDate.Year() == year {
			sum += request.NumberOfDays
		}
	}
	return sum, nil
}

func managerActor() domain.Identity {
	return domain.Identity{ID: "u-mgr", Role: domain.RoleManager}
}

func employeeActor(employeeID string) domain.Identity {
	return domain.Identity{ID: "u-emp", Role: domain.RoleEmployee, EmployeeID: &employeeID}
}

func TestRequestDays(t *testing.T) {
	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1.0, RequestDays(start, start))
	assert.Equal(t, 5.0, RequestDays(start, start.AddDate(0, 0, 4)))
	assert.Equal(t, 0.0, RequestDays(start, start.AddDate(0, 0, -1)))
}

func TestApplyThenApproveUpdatesBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, events.NewInMemoryDispatcher(), zap.NewNop())
	ctx := context.Background()

	request := &domain.LeaveRequest{
		EmployeeID:  "e-1",
		LeaveTypeID: "lt-annual",
		StartDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		Reason:      "family trip",
	}
	require.NoError(t, svc.Apply(ctx, employeeActor("e-1"), request))
	assert.Equal(t, domain.LeaveStatusPending, request.Status)
	assert.Equal(t, 5.0, request.NumberOfDays)

	decided, err := svc.Approve(ctx, managerActor(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, decided.Status)
	require.NotNil(t, decided.ApproverID)
	assert.Equal(t, "u-mgr", *decided.ApproverID)

	balances, err := svc.Balances(ctx, "e-1", 2026)
	require.NoError(t, err)
	byType := make(map[string]domain.LeaveBalance, len(balances))
	for _, balance := range balances {
		byType[balance.LeaveTypeID] = balance
	}
	assert.Equal(t, 16.0, byType["lt-annual"].RemainingDays)
	assert.Equal(t, 5.0, byType["lt-annual"].UsedDays)
	assert.Equal(t, 10.0, byType["lt-sick"].RemainingDays)
}

func TestApproveTwiceConflicts(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, events.NewInMemoryDispatcher(), zap.NewNop())
	ctx := context.Background()

	request := &domain.LeaveRequest{
		EmployeeID:  "e-1",
		LeaveTypeID: "lt-sick",
		StartDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Apply(ctx, employeeActor("e-1"), request))

	_, err := svc.Approve(ctx, managerActor(), request.ID)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, managerActor(), request.ID)
	assert.Error(t, err)
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	_, err := svc.Reject(context.Background(), managerActor(), "lr-any", "")
	assert.Error(t, err)
}

func TestCancelOnlyOwnPendingRequest(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, events.NewInMemoryDispatcher(), zap.NewNop())
	ctx := context.Background()

	request := &domain.LeaveRequest{
		EmployeeID:  "e-1",
		LeaveTypeID: "lt-annual",
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Apply(ctx, employeeActor("e-1"), request))

	_, err := svc.Cancel(ctx, employeeActor("e-2"), request.ID)
	assert.Error(t, err)

	cancelled, err := svc.Cancel(ctx, employeeActor("e-1"), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusCancelled, cancelled.Status)
}

func TestApplyPublishesEvent(t *testing.T) {
	repo := newFakeLeaveRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.Event
	dispatcher.Subscribe(events.EventLeaveRequested, func(_ context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})
	svc := NewLeaveService(repo, dispatcher, zap.NewNop())

	request := &domain.LeaveRequest{
		EmployeeID:  "e-1",
		LeaveTypeID: "lt-annual",
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Apply(context.Background(), employeeActor("e-1"), request))
	require.Len(t, seen, 1)
	assert.Equal(t, "e-1", seen[0].EmployeeID)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumhr/portal-service/internal/domain"
)

type fakeAttendanceRepo struct {
	records []*domain.AttendanceRecord
	nextID  int
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record *domain.AttendanceRecord) error {
	f.nextID++
	record.ID = "att-" + string(rune('a'+f.nextID))
	stored := *record
	f.records = append(f.records, &stored)
	return nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record *domain.AttendanceRecord) error {
	for i, stored := range f.records {
		if stored.ID == record.ID {
			updated := *record
			f.records[i] = &updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) GetForDay(_ context.Context, employeeID string, day time.Time) (*domain.AttendanceRecord, error) {
	for _, stored := range f.records {
		if stored.EmployeeID == employeeID && stored.WorkDate.Equal(day) {
			out := *stored
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) GetOpenForDay(_ context.Context, employeeID string, day time.Time) (*domain.AttendanceRecord, error) {
	for _, stored := range f.records {
		if stored.EmployeeID == employeeID && stored.WorkDate.Equal(day) && stored.CheckOut == nil {
			out := *stored
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, _ int) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, stored := range f.records {
		if stored.EmployeeID == employeeID {
			out = append(out, *stored)
		}
	}
	return out, nil
}

func TestHoursWorked(t *testing.T) {
	checkIn := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 8.0, HoursWorked(checkIn, checkIn.Add(8*time.Hour)))
	assert.Equal(t, 7.75, HoursWorked(checkIn, checkIn.Add(7*time.Hour+45*time.Minute)))
	assert.Equal(t, 0.0, HoursWorked(checkIn, checkIn.Add(-time.Hour)))
}

func TestCheckInThenCheckOut(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo)

	current := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }
	ctx := context.Background()

	record, err := svc.CheckIn(ctx, "e-1")
	require.NoError(t, err)
	assert.True(t, record.Open())

	current = current.Add(8*time.Hour + 30*time.Minute)
	closed, err := svc.CheckOut(ctx, "e-1")
	require.NoError(t, err)
	require.NotNil(t, closed.HoursWorked)
	assert.Equal(t, 8.5, *closed.HoursWorked)
}

func TestDoubleCheckInConflicts(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo)
	svc.now = func() time.Time { return time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "e-1")
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, "e-1")
	assert.Error(t, err)
}

func TestCheckInAfterCheckOutSameDayConflicts(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo)

	current := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "e-1")
	require.NoError(t, err)

	current = current.Add(8 * time.Hour)
	_, err = svc.CheckOut(ctx, "e-1")
	require.NoError(t, err)

	// One record per day: the closed record still blocks a re-entry.
	current = current.Add(time.Hour)
	_, err = svc.CheckIn(ctx, "e-1")
	assert.Error(t, err)

	// The next day starts fresh.
	current = current.Add(24 * time.Hour)
	_, err = svc.CheckIn(ctx, "e-1")
	assert.NoError(t, err)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo)
	svc.now = func() time.Time { return time.Date(2026, 8, 10, 17, 0, 0, 0, time.UTC) }

	_, err := svc.CheckOut(context.Background(), "e-1")
	assert.Error(t, err)
}

package service

import (
	"context"
	"math"
	"time"

	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/repository"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// AttendanceService manages daily check-in/check-out records.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	now        func() time.Time
}

// NewAttendanceService builds the service.
func NewAttendanceService(attendance repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance, now: time.Now}
}

// HoursWorked computes the span between check-in and check-out, rounded to
// two decimals.
func HoursWorked(checkIn, checkOut time.Time) float64 {
	if checkOut.Before(checkIn) {
		return 0
	}
	return math.Round(checkOut.Sub(checkIn).Hours()*100) / 100
}

// CheckIn opens today's attendance record for the employee. One record per
// employee per day: a second check-in after checking out conflicts too.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	now := s.now()
	day := truncateToDay(now)

	if existing, err := s.attendance.GetForDay(ctx, employeeID, day); err == nil && existing != nil {
		return nil, apperrors.NewConflict("already checked in today", map[string]any{"record_id": existing.ID})
	}

	record := &domain.AttendanceRecord{
		EmployeeID: employeeID,
		WorkDate:   day,
		CheckIn:    now,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CheckOut closes today's open record and computes hours worked.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	now := s.now()
	day := truncateToDay(now)

	record, err := s.attendance.GetOpenForDay(ctx, employeeID, day)
	if err != nil {
		return nil, apperrors.NewConflict("no open check-in for today", nil)
	}

	hours := HoursWorked(record.CheckIn, now)
	record.CheckOut = &now
	record.HoursWorked = &hours
	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns recent attendance records for the employee.
func (s *AttendanceService) History(ctx context.Context, employeeID string, limit int) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListByEmployee(ctx, employeeID, limit)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

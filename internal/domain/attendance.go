package domain

import "time"

// AttendanceRecord captures one work day's check-in/check-out pair.
type AttendanceRecord struct {
	ID          string
	EmployeeID  string
	WorkDate    time.Time
	CheckIn     time.Time
	CheckOut    *time.Time
	HoursWorked *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Open reports whether the record is still awaiting a check-out.
func (a *AttendanceRecord) Open() bool {
	return a.CheckOut == nil
}

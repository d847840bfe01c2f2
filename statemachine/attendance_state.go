package statemachine

import (
	"errors"

	"school-meals-api/models"
)

// AttendanceState is the per-(cooker, date) clock state, derived from the
// row shape rather than stored.
type AttendanceState string

const (
	NotClockedIn AttendanceState = "NOT_CLOCKED_IN"
	ClockedIn    AttendanceState = "CLOCKED_IN"
	ClockedOut   AttendanceState = "CLOCKED_OUT"
)

// AttendanceStateOf derives the state for a day. A nil record means the
// cooker has not clocked in yet.
func AttendanceStateOf(record *models.Attendance) AttendanceState {
	switch {
	case record == nil:
		return NotClockedIn
	case record.TimeOut == nil:
		return ClockedIn
	default:
		return ClockedOut
	}
}

// CanClockIn rejects a second clock-in for the same day. The storage-level
// unique index backs this up against concurrent callers.
func CanClockIn(record *models.Attendance) error {
	if AttendanceStateOf(record) != NotClockedIn {
		return errors.New("already clocked in for today")
	}
	return nil
}

// CanClockOut requires an open day: clocked in, not yet clocked out.
func CanClockOut(record *models.Attendance) error {
	switch AttendanceStateOf(record) {
	case NotClockedIn:
		return errors.New("cannot clock out before clocking in")
	case ClockedOut:
		return errors.New("already clocked out for today")
	}
	return nil
}

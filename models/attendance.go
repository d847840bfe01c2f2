package models

import (
	"math"
	"time"
)

// Attendance is one cooker work day. The composite unique index closes the
// duplicate clock-in race the application-level check alone cannot.
type Attendance struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CookerID  uint       `json:"cooker_id" gorm:"not null;uniqueIndex:idx_cooker_date"`
	Cooker    User       `json:"cooker,omitempty" gorm:"foreignKey:CookerID"`
	SchoolID  uint       `json:"school_id"`
	School    School     `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Date      string     `json:"date" gorm:"not null;uniqueIndex:idx_cooker_date"` // yyyy-mm-dd
	TimeIn    time.Time  `json:"time_in"`
	TimeOut   *time.Time `json:"time_out"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// WorkHours returns (time_out - time_in) in hours rounded to one decimal,
// or zero while the day is still open.
func (a *Attendance) WorkHours() float64 {
	if a.TimeOut == nil || a.TimeIn.IsZero() {
		return 0
	}
	h := a.TimeOut.Sub(a.TimeIn).Hours()
	return math.Round(h*10) / 10
}

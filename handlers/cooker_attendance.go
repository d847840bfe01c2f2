package handlers

import (
	"net/http"
	"time"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"
	"school-meals-api/statemachine"

	"github.com/gin-gonic/gin"
)

// todayAttendance loads the caller's attendance row for today, or nil.
func todayAttendance(cookerID uint) *models.Attendance {
	var record models.Attendance
	if err := config.DB.Where("cooker_id = ? AND date = ?", cookerID, today()).
		First(&record).Error; err != nil {
		return nil
	}
	return &record
}

// ClockIn opens the caller's work day. A second clock-in for the same day
// is refused with a message and changes nothing; the unique index on
// (cooker_id, date) holds even under concurrent attempts.
func ClockIn(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	record := todayAttendance(cookerID)
	if err := statemachine.CanClockIn(record); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		return
	}

	// The original system pins cooker attendance to the first school on
	// file. Kept as-is; flagged as a placeholder, not tenant logic.
	var school models.School
	if err := config.DB.Order("id asc").First(&school).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "No school on file yet; ask an admin to add one first"})
		return
	}

	attendance := models.Attendance{
		CookerID: cookerID,
		SchoolID: school.ID,
		Date:     today(),
		TimeIn:   time.Now().UTC(),
	}
	if err := config.DB.Create(&attendance).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "already clocked in for today"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Clocked in successfully",
		"attendance": attendance,
	})
}

// ClockOut closes the caller's work day. Fails without mutation when no row
// exists for today or time_out is already set.
func ClockOut(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	record := todayAttendance(cookerID)
	if err := statemachine.CanClockOut(record); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		return
	}

	now := time.Now().UTC()
	config.DB.Model(record).Update("time_out", now)
	record.TimeOut = &now

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Clocked out successfully",
		"attendance": record,
		"work_hours": record.WorkHours(),
	})
}

// ListAttendance returns the caller's attendance history with computed work
// hours per day.
func ListAttendance(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var records []models.Attendance
	query := config.DB.Preload("School").Where("cooker_id = ?", cookerID)

	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	query.Order("date desc").Find(&records)

	rows := make([]gin.H, 0, len(records))
	for _, r := range records {
		rows = append(rows, gin.H{
			"attendance": r,
			"work_hours": r.WorkHours(),
			"state":      statemachine.AttendanceStateOf(&r),
		})
	}

	c.JSON(http.StatusOK, gin.H{"count": len(rows), "records": rows})
}

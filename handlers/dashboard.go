package handlers

import (
	"net/http"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"
	"school-meals-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminDashboard returns system-wide counts scoped to today
func AdminDashboard(c *gin.Context) {
	date := today()

	var schools, cookers, deliveryGuys int64
	config.DB.Model(&models.School{}).Count(&schools)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleCooker).Count(&cookers)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleDelivery).Count(&deliveryGuys)

	var deliveriesToday, deliveredToday int64
	config.DB.Model(&models.Delivery{}).Where("delivery_date = ?", date).Count(&deliveriesToday)
	config.DB.Model(&models.Delivery{}).
		Where("delivery_date = ? AND status = ?", date, models.StatusDelivered).
		Count(&deliveredToday)

	var learnersFedToday int64
	config.DB.Model(&models.Learner{}).Where("date_served = ?", date).Count(&learnersFedToday)

	c.JSON(http.StatusOK, gin.H{
		"schools":            schools,
		"workers":            cookers + deliveryGuys,
		"cookers":            cookers,
		"delivery_personnel": deliveryGuys,
		"deliveries_today":   deliveriesToday,
		"delivered_today":    deliveredToday,
		"pending_today":      deliveriesToday - deliveredToday,
		"learners_fed_today": learnersFedToday,
	})
}

// CookerDashboard returns the caller's day at a glance
func CookerDashboard(c *gin.Context) {
	cookerID := middleware.GetUserID(c)
	date := today()

	record := todayAttendance(cookerID)

	var learnersFedToday, groceryItems int64
	config.DB.Model(&models.Learner{}).
		Where("cooker_id = ? AND date_served = ?", cookerID, date).
		Count(&learnersFedToday)
	config.DB.Model(&models.GroceryItem{}).Where("cooker_id = ?", cookerID).Count(&groceryItems)

	resp := gin.H{
		"attendance_state":   statemachine.AttendanceStateOf(record),
		"learners_fed_today": learnersFedToday,
		"grocery_items":      groceryItems,
	}
	if record != nil {
		resp["attendance"] = record
		resp["work_hours"] = record.WorkHours()
	}

	c.JSON(http.StatusOK, resp)
}

// DeliveryDashboard returns the caller's assignments for today
func DeliveryDashboard(c *gin.Context) {
	guyID := middleware.GetUserID(c)
	date := today()

	var assigned, delivered int64
	config.DB.Model(&models.Delivery{}).
		Where("delivery_guy_id = ? AND delivery_date = ?", guyID, date).
		Count(&assigned)
	config.DB.Model(&models.Delivery{}).
		Where("delivery_guy_id = ? AND delivery_date = ? AND status = ?", guyID, date, models.StatusDelivered).
		Count(&delivered)

	var next models.Delivery
	hasNext := config.DB.Preload("School").
		Where("delivery_guy_id = ? AND status = ?", guyID, models.StatusPending).
		Order("delivery_date asc, id asc").
		First(&next).Error == nil

	resp := gin.H{
		"assigned_today":  assigned,
		"delivered_today": delivered,
		"pending_today":   assigned - delivered,
	}
	if hasNext {
		resp["next_delivery"] = next
	}

	c.JSON(http.StatusOK, resp)
}

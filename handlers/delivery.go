package handlers

import (
	"math"
	"net/http"
	"time"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"
	"school-meals-api/statemachine"

	"github.com/gin-gonic/gin"
)

// MyDeliveries returns the caller's assigned deliveries, pending first and
// newest date within each group.
func MyDeliveries(c *gin.Context) {
	guyID := middleware.GetUserID(c)

	var deliveries []models.Delivery
	query := config.DB.Preload("School").Preload("Cooker").
		Where("delivery_guy_id = ?", guyID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Order("CASE WHEN status = 'Pending' THEN 0 ELSE 1 END, delivery_date desc").
		Find(&deliveries)

	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

type CompleteDeliveryRequest struct {
	DeliveryID     uint   `json:"delivery_id" binding:"required"`
	DeliveredTime  string `json:"delivered_time"` // RFC3339; blank means now
	Remarks        string `json:"remarks"`
	IssuesReported bool   `json:"issues_reported"`
}

// CompleteDelivery transitions one of the caller's deliveries from Pending
// to Delivered. Re-completing a delivered drop-off is rejected and moves
// nothing, so delivered_time is written exactly once.
func CompleteDelivery(c *gin.Context) {
	guyID := middleware.GetUserID(c)

	var req CompleteDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var delivery models.Delivery
	if err := config.DB.First(&delivery, req.DeliveryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	// Ownership re-check, independent of the role gate
	if delivery.DeliveryGuyID != guyID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned delivery person for this delivery"})
		return
	}

	if err := statemachine.CanTransition(delivery.Status, models.StatusDelivered, "delivery"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": delivery.Status,
			"reason":         err.Error(),
		})
		return
	}

	deliveredAt := time.Now().UTC()
	if req.DeliveredTime != "" {
		t, err := time.Parse(time.RFC3339, req.DeliveredTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivered_time must be RFC3339"})
			return
		}
		deliveredAt = t.UTC()
	}

	updates := map[string]interface{}{
		"status":         models.StatusDelivered,
		"delivered_time": deliveredAt,
	}
	if req.IssuesReported {
		updates["remarks"] = models.IssuesPrefix + req.Remarks
	} else if req.Remarks != "" {
		updates["remarks"] = req.Remarks
	}
	config.DB.Model(&delivery).Updates(updates)

	config.Log.WithFields(map[string]interface{}{
		"delivery_id": delivery.ID,
		"user_id":     guyID,
		"issues":      req.IssuesReported,
	}).Info("Delivery completed")

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Delivery marked as delivered",
		"delivery_id":    delivery.ID,
		"status":         models.StatusDelivered,
		"delivered_time": deliveredAt,
	})
}

// DeliveryStats returns today's figures for the caller. On-time rate is
// delivered-by-cutoff over delivered, as a percentage rounded to one
// decimal; with zero delivered records it reports 100 rather than dividing
// by zero.
func DeliveryStats(c *gin.Context) {
	guyID := middleware.GetUserID(c)
	date := today()

	var assigned, delivered int64
	config.DB.Model(&models.Delivery{}).
		Where("delivery_guy_id = ? AND delivery_date = ?", guyID, date).
		Count(&assigned)
	config.DB.Model(&models.Delivery{}).
		Where("delivery_guy_id = ? AND delivery_date = ? AND status = ?", guyID, date, models.StatusDelivered).
		Count(&delivered)

	var todays []models.Delivery
	config.DB.Where("delivery_guy_id = ? AND delivery_date = ? AND status = ?",
		guyID, date, models.StatusDelivered).Find(&todays)

	onTimeRate := 100.0
	if delivered > 0 {
		var onTime int64
		for _, d := range todays {
			if d.DeliveredTime == nil {
				continue
			}
			t := *d.DeliveredTime
			cutoff := time.Date(t.Year(), t.Month(), t.Day(), onTimeCutoffHour, 0, 0, 0, t.Location())
			if !t.After(cutoff) {
				onTime++
			}
		}
		onTimeRate = math.Round(float64(onTime)/float64(delivered)*1000) / 10
	}

	completionRate := 100.0
	if assigned > 0 {
		completionRate = math.Round(float64(delivered)/float64(assigned)*1000) / 10
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"assigned_today":  assigned,
			"delivered_today": delivered,
			"pending_today":   assigned - delivered,
			"on_time_rate":    onTimeRate,
			"completion_rate": completionRate,
		},
	})
}

// DeliveryRoutes lists today's pending stops for the caller. The distance
// and optimization figures are placeholders carried over from the original
// system; they are constant, not computed.
func DeliveryRoutes(c *gin.Context) {
	guyID := middleware.GetUserID(c)

	var deliveries []models.Delivery
	config.DB.Preload("School").
		Where("delivery_guy_id = ? AND delivery_date = ? AND status = ?",
			guyID, today(), models.StatusPending).
		Order("id asc").
		Find(&deliveries)

	stops := make([]gin.H, 0, len(deliveries))
	for i, d := range deliveries {
		stops = append(stops, gin.H{
			"sequence":    i + 1,
			"delivery_id": d.ID,
			"school":      d.School.Name,
			"location":    d.Location,
			"distance_km": 0.0, // placeholder: no telemetry source
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"stops":             stops,
		"total_distance_km": 0.0,
		"optimized":         false,
	})
}

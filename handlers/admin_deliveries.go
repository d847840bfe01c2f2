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

type DeliveryRequest struct {
	SchoolID      uint   `json:"school_id" binding:"required"`
	DeliveryGuyID uint   `json:"delivery_guy_id" binding:"required"`
	CookerID      *uint  `json:"cooker_id"`
	DeliveryDate  string `json:"delivery_date" binding:"required"`
	Location      string `json:"location"`
}

type MarkDeliveredRequest struct {
	DeliveredTime string `json:"delivered_time"` // RFC3339; blank means now
	Remarks       string `json:"remarks"`
}

// CreateDelivery schedules a drop-off for a school
func CreateDelivery(c *gin.Context) {
	var req DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDate(req.DeliveryDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be yyyy-mm-dd"})
		return
	}

	var school models.School
	if err := config.DB.First(&school, req.SchoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	var guy models.User
	if err := config.DB.Where("role = ?", models.RoleDelivery).
		First(&guy, req.DeliveryGuyID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee must be a delivery person"})
		return
	}

	if req.CookerID != nil {
		var cooker models.User
		if err := config.DB.Where("role = ?", models.RoleCooker).
			First(&cooker, *req.CookerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cooker_id must reference a cooker"})
			return
		}
	}

	location := req.Location
	if location == "" {
		location = school.Location
	}

	delivery := models.Delivery{
		SchoolID:      req.SchoolID,
		DeliveryGuyID: req.DeliveryGuyID,
		CookerID:      req.CookerID,
		DeliveryDate:  req.DeliveryDate,
		Location:      location,
		Status:        models.StatusPending,
	}
	if err := config.DB.Create(&delivery).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery"})
		return
	}

	config.DB.Preload("School").Preload("DeliveryGuy").First(&delivery, delivery.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Delivery scheduled successfully", "delivery": delivery})
}

// ListDeliveries returns all deliveries with additive filters — admin only
func ListDeliveries(c *gin.Context) {
	var deliveries []models.Delivery
	query := config.DB.Preload("School").Preload("DeliveryGuy").Preload("Cooker")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}
	if guyID := c.Query("delivery_guy_id"); guyID != "" {
		query = query.Where("delivery_guy_id = ?", guyID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("delivery_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("delivery_date <= ?", to)
	}

	query.Order("delivery_date desc").Find(&deliveries)
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

// UpdateDelivery edits a pending delivery's assignment details. Delivered
// records are immutable.
func UpdateDelivery(c *gin.Context) {
	var delivery models.Delivery
	if err := config.DB.First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	if delivery.Status == models.StatusDelivered {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Delivered records cannot be edited"})
		return
	}

	var req DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDate(req.DeliveryDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be yyyy-mm-dd"})
		return
	}

	var school models.School
	if err := config.DB.First(&school, req.SchoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}
	var guy models.User
	if err := config.DB.Where("role = ?", models.RoleDelivery).
		First(&guy, req.DeliveryGuyID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee must be a delivery person"})
		return
	}
	if req.CookerID != nil {
		var cooker models.User
		if err := config.DB.Where("role = ?", models.RoleCooker).
			First(&cooker, *req.CookerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cooker_id must reference a cooker"})
			return
		}
	}

	config.DB.Model(&delivery).Updates(map[string]interface{}{
		"school_id":       req.SchoolID,
		"delivery_guy_id": req.DeliveryGuyID,
		"cooker_id":       req.CookerID,
		"delivery_date":   req.DeliveryDate,
		"location":        req.Location,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Delivery updated successfully", "delivery": delivery})
}

// AdminMarkDelivered is the admin path of the Pending to Delivered
// transition. delivered_time is written exactly once.
func AdminMarkDelivered(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	var delivery models.Delivery
	if err := config.DB.First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	var req MarkDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(delivery.Status, models.StatusDelivered, "admin"); err != nil {
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
	if req.Remarks != "" {
		updates["remarks"] = req.Remarks
	}
	config.DB.Model(&delivery).Updates(updates)

	config.Log.WithFields(map[string]interface{}{
		"delivery_id": delivery.ID,
		"admin_id":    adminID,
	}).Info("Delivery marked delivered by admin")

	c.JSON(http.StatusOK, gin.H{
		"message":     "Delivery marked as delivered",
		"delivery_id": delivery.ID,
		"status":      models.StatusDelivered,
	})
}

// DeleteDelivery removes a delivery record — admin only
func DeleteDelivery(c *gin.Context) {
	var delivery models.Delivery
	if err := config.DB.First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	if err := config.DB.Delete(&delivery).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete delivery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery deleted successfully"})
}

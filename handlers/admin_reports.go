package handlers

import (
	"net/http"
	"time"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// reportDeliveries runs the delivery report query with additive filters
// from the request, newest date first.
func reportDeliveries(c *gin.Context) []models.Delivery {
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
	return deliveries
}

// DeliveryReport returns the filtered delivery listing with a summary block
func DeliveryReport(c *gin.Context) {
	deliveries := reportDeliveries(c)

	summary := map[string]int{}
	for _, d := range deliveries {
		summary[string(d.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"count":      len(deliveries),
		"deliveries": deliveries,
	})
}

// ExportDeliveryReport returns the same report as flat tabular rows plus a
// download descriptor. Rendering the spreadsheet bytes is a presentation
// concern handled outside this service.
func ExportDeliveryReport(c *gin.Context) {
	deliveries := reportDeliveries(c)

	rows := make([]gin.H, 0, len(deliveries))
	for _, d := range deliveries {
		row := gin.H{
			"delivery_id":     d.ID,
			"school":          d.School.Name,
			"delivery_person": d.DeliveryGuy.Name,
			"delivery_date":   d.DeliveryDate,
			"location":        d.Location,
			"status":          d.Status,
			"remarks":         d.Remarks,
		}
		if d.Cooker != nil {
			row["cooker"] = d.Cooker.Name
		}
		if d.DeliveredTime != nil {
			row["delivered_time"] = d.DeliveredTime.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"file_token":   uuid.NewString(),
		"format":       "xlsx",
		"generated_at": time.Now().UTC(),
		"row_count":    len(rows),
		"rows":         rows,
	})
}

// deliveryReportPayload builds the single-delivery report: the delivery
// joined with school and assignee, plus the cooker's grocery table and a
// download descriptor. Rendering the PDF bytes is a presentation concern
// handled outside this service.
func deliveryReportPayload(delivery models.Delivery) gin.H {
	groceryItems := []models.GroceryItem{}
	if delivery.CookerID != nil {
		config.DB.Where("cooker_id = ?", *delivery.CookerID).
			Order("item_name asc").Find(&groceryItems)
	}
	return gin.H{
		"file_token":    uuid.NewString(),
		"format":        "pdf",
		"generated_at":  time.Now().UTC(),
		"delivery":      delivery,
		"grocery_items": groceryItems,
	}
}

// SingleDeliveryReport returns one delivery's report data — admin only
func SingleDeliveryReport(c *gin.Context) {
	var delivery models.Delivery
	if err := config.DB.Preload("School").Preload("DeliveryGuy").Preload("Cooker").
		First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	c.JSON(http.StatusOK, deliveryReportPayload(delivery))
}

// MyDeliveryReport is the delivery person's variant, own deliveries only
func MyDeliveryReport(c *gin.Context) {
	guyID := middleware.GetUserID(c)

	var delivery models.Delivery
	if err := config.DB.Preload("School").Preload("DeliveryGuy").Preload("Cooker").
		First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	if delivery.DeliveryGuyID != guyID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned delivery person for this delivery"})
		return
	}
	c.JSON(http.StatusOK, deliveryReportPayload(delivery))
}

// LearnerRecords returns feeding records across all cookers — admin only
func LearnerRecords(c *gin.Context) {
	var learners []models.Learner
	query := config.DB.Preload("Cooker").Preload("School")

	if date := c.Query("date"); date != "" {
		query = query.Where("date_served = ?", date)
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}
	if cookerID := c.Query("cooker_id"); cookerID != "" {
		query = query.Where("cooker_id = ?", cookerID)
	}

	query.Order("date_served desc").Find(&learners)
	c.JSON(http.StatusOK, gin.H{"count": len(learners), "learners": learners})
}

// AdminGroceryLists returns grocery needs across all cookers — admin only
func AdminGroceryLists(c *gin.Context) {
	var items []models.GroceryItem
	query := config.DB.Preload("Cooker")

	if cookerID := c.Query("cooker_id"); cookerID != "" {
		query = query.Where("cooker_id = ?", cookerID)
	}

	query.Order("cooker_id asc, item_name asc").Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// AdminDeleteGroceryItem deletes any cooker's item — admin only
func AdminDeleteGroceryItem(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	var item models.GroceryItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery item not found"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grocery item"})
		return
	}

	config.Log.WithFields(map[string]interface{}{
		"item_id":  item.ID,
		"admin_id": adminID,
	}).Info("Grocery item deleted by admin")

	c.JSON(http.StatusOK, gin.H{"message": "Grocery item deleted successfully"})
}

// AdminAttendanceRecords returns all cookers' attendance with work hours
func AdminAttendanceRecords(c *gin.Context) {
	var records []models.Attendance
	query := config.DB.Preload("Cooker").Preload("School")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if cookerID := c.Query("cooker_id"); cookerID != "" {
		query = query.Where("cooker_id = ?", cookerID)
	}

	query.Order("date desc").Find(&records)

	rows := make([]gin.H, 0, len(records))
	for _, r := range records {
		rows = append(rows, gin.H{
			"attendance": r,
			"work_hours": r.WorkHours(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "records": rows})
}

package handlers

import (
	"net/http"
	"strings"

	"school-meals-api/config"
	"school-meals-api/models"

	"github.com/gin-gonic/gin"
)

type SchoolRequest struct {
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location"`
	ContactPerson string `json:"contact_person"`
	ContactNumber string `json:"contact_number"`
}

// ListSchools returns all schools — admin only
func ListSchools(c *gin.Context) {
	var schools []models.School
	query := config.DB

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR location LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Order("name asc").Find(&schools)
	c.JSON(http.StatusOK, gin.H{"count": len(schools), "schools": schools})
}

// CreateSchool adds a school, refusing duplicate names
func CreateSchool(c *gin.Context) {
	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	var existing models.School
	if err := config.DB.Where("LOWER(name) = ?", strings.ToLower(name)).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A school with this name already exists"})
		return
	}

	school := models.School{
		Name:          name,
		Location:      req.Location,
		ContactPerson: req.ContactPerson,
		ContactNumber: req.ContactNumber,
	}
	if err := config.DB.Create(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create school"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "School added successfully", "school": school})
}

// UpdateSchool edits a school's details
func UpdateSchool(c *gin.Context) {
	var school models.School
	if err := config.DB.First(&school, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	var existing models.School
	if err := config.DB.Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), school.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A school with this name already exists"})
		return
	}

	config.DB.Model(&school).Updates(map[string]interface{}{
		"name":           name,
		"location":       req.Location,
		"contact_person": req.ContactPerson,
		"contact_number": req.ContactNumber,
	})

	c.JSON(http.StatusOK, gin.H{"message": "School updated successfully", "school": school})
}

// DeleteSchool removes a school unless deliveries, attendance or learner
// records still reference it. Refusals leave everything unchanged.
func DeleteSchool(c *gin.Context) {
	var school models.School
	if err := config.DB.First(&school, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	var deliveries, attendance, learners int64
	config.DB.Model(&models.Delivery{}).Where("school_id = ?", school.ID).Count(&deliveries)
	config.DB.Model(&models.Attendance{}).Where("school_id = ?", school.ID).Count(&attendance)
	config.DB.Model(&models.Learner{}).Where("school_id = ?", school.ID).Count(&learners)

	if deliveries+attendance+learners > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":              "Cannot delete school: records still reference it",
			"linked_deliveries":  deliveries,
			"linked_attendance":  attendance,
			"linked_learners":    learners,
		})
		return
	}

	if err := config.DB.Delete(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete school"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "School deleted successfully"})
}

package handlers

import (
	"net/http"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"

	"github.com/gin-gonic/gin"
)

type LearnerRequest struct {
	Name       string `json:"name" binding:"required"`
	Grade      string `json:"grade"`
	SchoolID   uint   `json:"school_id"`
	DateServed string `json:"date_served"`
	MealType   string `json:"meal_type"`
}

// CreateLearner logs a fed child for the calling cooker
func CreateLearner(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var req LearnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateServed := req.DateServed
	if dateServed == "" {
		dateServed = today()
	} else if !validDate(dateServed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_served must be yyyy-mm-dd"})
		return
	}

	mealType := req.MealType
	if mealType == "" {
		mealType = models.DefaultMealType
	}

	schoolID := req.SchoolID
	if schoolID == 0 {
		// First-school placeholder carried over from the original system.
		var school models.School
		if err := config.DB.Order("id asc").First(&school).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "No school on file yet; ask an admin to add one first"})
			return
		}
		schoolID = school.ID
	} else {
		var school models.School
		if err := config.DB.First(&school, schoolID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
			return
		}
	}

	learner := models.Learner{
		Name:       req.Name,
		Grade:      req.Grade,
		CookerID:   cookerID,
		SchoolID:   schoolID,
		DateServed: dateServed,
		MealType:   mealType,
	}
	if err := config.DB.Create(&learner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record learner"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Learner recorded successfully", "learner": learner})
}

// ListMyLearners returns the caller's own feeding records
func ListMyLearners(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var learners []models.Learner
	query := config.DB.Preload("School").Where("cooker_id = ?", cookerID)

	if date := c.Query("date"); date != "" {
		query = query.Where("date_served = ?", date)
	}

	query.Order("date_served desc").Find(&learners)
	c.JSON(http.StatusOK, gin.H{"count": len(learners), "learners": learners})
}

// DeleteLearner removes a feeding record. Only the cooker who created it
// may delete it.
func DeleteLearner(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var learner models.Learner
	if err := config.DB.First(&learner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Learner record not found"})
		return
	}
	if learner.CookerID != cookerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This record does not belong to you"})
		return
	}

	if err := config.DB.Delete(&learner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete learner record"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Learner record deleted successfully"})
}

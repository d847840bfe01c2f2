package handlers

import (
	"net/http"
	"strings"

	"school-meals-api/config"
	"school-meals-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type CreateWorkerRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

type UpdateWorkerRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password"` // blank keeps the current password
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

// ListWorkers returns cookers and delivery personnel. Admin accounts are
// never included.
func ListWorkers(c *gin.Context) {
	var workers []models.User
	query := config.DB.Where("role IN ?", models.WorkerRoles)

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	query.Order("name asc").Find(&workers)
	c.JSON(http.StatusOK, gin.H{"count": len(workers), "workers": workers})
}

// CreateWorker adds a cooker or delivery person
func CreateWorker(c *gin.Context) {
	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsWorkerRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: cooker or delivery"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.User
	if err := config.DB.Where("LOWER(email) = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	worker := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
	}
	if err := config.DB.Create(&worker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worker"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Worker added successfully", "worker": worker})
}

// UpdateWorker edits a worker. Admin accounts are not reachable through
// this handler.
func UpdateWorker(c *gin.Context) {
	var worker models.User
	if err := config.DB.Where("role IN ?", models.WorkerRoles).
		First(&worker, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}

	var req UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsWorkerRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: cooker or delivery"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.User
	if err := config.DB.Where("LOWER(email) = ? AND id <> ?", email, worker.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"email": email,
		"role":  req.Role,
		"phone": req.Phone,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		updates["password_hash"] = string(hash)
	}

	config.DB.Model(&worker).Updates(updates)
	c.JSON(http.StatusOK, gin.H{"message": "Worker updated successfully", "worker": worker})
}

// DeleteWorker removes a worker unless deliveries, attendance or learner
// records still reference them. Admin accounts cannot be deleted here.
func DeleteWorker(c *gin.Context) {
	var worker models.User
	if err := config.DB.Where("role IN ?", models.WorkerRoles).
		First(&worker, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}

	var deliveries, attendance, learners int64
	config.DB.Model(&models.Delivery{}).
		Where("delivery_guy_id = ? OR cooker_id = ?", worker.ID, worker.ID).
		Count(&deliveries)
	config.DB.Model(&models.Attendance{}).Where("cooker_id = ?", worker.ID).Count(&attendance)
	config.DB.Model(&models.Learner{}).Where("cooker_id = ?", worker.ID).Count(&learners)

	if deliveries+attendance+learners > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Cannot delete worker: records still reference them",
			"linked_deliveries": deliveries,
			"linked_attendance": attendance,
			"linked_learners":   learners,
		})
		return
	}

	if err := config.DB.Delete(&worker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete worker"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Worker deleted successfully"})
}

package handlers

import (
	"net/http"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type GroceryItemRequest struct {
	ItemName       string  `json:"item_name" binding:"required" validate:"required"`
	Size           float64 `json:"size" binding:"required" validate:"gt=0"`
	Unit           string  `json:"unit" binding:"required" validate:"oneof=kg g litre"`
	QuantityNeeded int     `json:"quantity_needed" binding:"required" validate:"gt=0"`
}

// CreateGroceryItem declares an ingredient need for the calling cooker
func CreateGroceryItem(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var req GroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit must be one of kg, g, litre and amounts must be positive"})
		return
	}

	item := models.GroceryItem{
		CookerID:       cookerID,
		ItemName:       req.ItemName,
		Size:           req.Size,
		Unit:           req.Unit,
		QuantityNeeded: req.QuantityNeeded,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add grocery item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Grocery item added successfully", "item": item})
}

// ListMyGroceryItems returns the caller's grocery list
func ListMyGroceryItems(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var items []models.GroceryItem
	config.DB.Where("cooker_id = ?", cookerID).Order("item_name asc").Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// UpdateGroceryItem edits one of the caller's own items
func UpdateGroceryItem(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var item models.GroceryItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery item not found"})
		return
	}
	if item.CookerID != cookerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This item does not belong to you"})
		return
	}

	var req GroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit must be one of kg, g, litre and amounts must be positive"})
		return
	}

	config.DB.Model(&item).Updates(map[string]interface{}{
		"item_name":       req.ItemName,
		"size":            req.Size,
		"unit":            req.Unit,
		"quantity_needed": req.QuantityNeeded,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Grocery item updated successfully", "item": item})
}

// DeleteGroceryItem removes one of the caller's own items
func DeleteGroceryItem(c *gin.Context) {
	cookerID := middleware.GetUserID(c)

	var item models.GroceryItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery item not found"})
		return
	}
	if item.CookerID != cookerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This item does not belong to you"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grocery item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grocery item deleted successfully"})
}

package models

import "time"

// GroceryUnits is the whitelist of measurement units for grocery needs.
var GroceryUnits = []string{"kg", "g", "litre"}

// GroceryItem is a cooker's declared ingredient need. Mutation is owner-only;
// admins may view and delete across all cookers.
type GroceryItem struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CookerID       uint      `json:"cooker_id" gorm:"not null"`
	Cooker         User      `json:"cooker,omitempty" gorm:"foreignKey:CookerID"`
	ItemName       string    `json:"item_name" gorm:"not null"`
	Size           float64   `json:"size" gorm:"not null"`
	Unit           string    `json:"unit" gorm:"not null"`
	QuantityNeeded int       `json:"quantity_needed" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

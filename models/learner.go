package models

import "time"

// DefaultMealType is applied when a feeding record omits the meal type.
const DefaultMealType = "Lunch"

// Learner is a fed-child record, owned by the cooker who logged it.
type Learner struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Grade      string    `json:"grade"`
	CookerID   uint      `json:"cooker_id" gorm:"not null"`
	Cooker     User      `json:"cooker,omitempty" gorm:"foreignKey:CookerID"`
	SchoolID   uint      `json:"school_id"`
	School     School    `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	DateServed string    `json:"date_served" gorm:"not null"` // yyyy-mm-dd
	MealType   string    `json:"meal_type" gorm:"default:'Lunch'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

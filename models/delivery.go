package models

import "time"

// DeliveryStatus represents the lifecycle of a school drop-off
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "Pending"
	StatusDelivered DeliveryStatus = "Delivered"
)

// IssuesPrefix is prepended to remarks when a delivery person flags problems
// on completion.
const IssuesPrefix = "ISSUES REPORTED: "

type Delivery struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	SchoolID      uint           `json:"school_id" gorm:"not null"`
	School        School         `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	CookerID      *uint          `json:"cooker_id"`
	Cooker        *User          `json:"cooker,omitempty" gorm:"foreignKey:CookerID"`
	DeliveryGuyID uint           `json:"delivery_guy_id" gorm:"not null"`
	DeliveryGuy   User           `json:"delivery_guy,omitempty" gorm:"foreignKey:DeliveryGuyID"`
	DeliveryDate  string         `json:"delivery_date" gorm:"not null"` // yyyy-mm-dd
	Location      string         `json:"location"`
	Status        DeliveryStatus `json:"status" gorm:"not null;default:'Pending'"`
	DeliveredTime *time.Time     `json:"delivered_time"` // set exactly once, at completion
	Remarks       string         `json:"remarks"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

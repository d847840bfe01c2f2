package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCooker   UserRole = "cooker"
	RoleDelivery UserRole = "delivery"
)

// WorkerRoles are the roles manageable through the worker endpoints.
// Admin accounts are never listed, edited or deleted there.
var WorkerRoles = []UserRole{RoleCooker, RoleDelivery}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsWorkerRole reports whether a role may be assigned through the worker forms.
func IsWorkerRole(r UserRole) bool {
	for _, w := range WorkerRoles {
		if r == w {
			return true
		}
	}
	return false
}

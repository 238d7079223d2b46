package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "Pending"
	OrderStatusProcessed = "Processed"
	OrderStatusCancelled = "Cancelled"
)

// TotalPrice is a snapshot taken at checkout time and never recomputed.
type Order struct {
	gorm.Model
	UserID     uint `gorm:"not null"`
	User       User
	OrderItems []OrderItem
	TotalPrice float64 `gorm:"not null"`
	Status     string  `gorm:"not null"`
}

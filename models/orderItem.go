package models

import "gorm.io/gorm"

// TotalPrice freezes item price x quantity at checkout time; later catalog
// price changes never touch historical orders.
type OrderItem struct {
	gorm.Model
	OrderID    uint `gorm:"not null"`
	Order      Order
	ItemID     uint `gorm:"not null"`
	Item       Item
	Quantity   uint    `gorm:"not null"`
	TotalPrice float64 `gorm:"not null"`
}

package models

import "gorm.io/gorm"

// Payment record captured at checkout. The card fields are stored as
// received and never sent to a processor.
type CheckoutItem struct {
	gorm.Model
	OrderID  uint `gorm:"not null"`
	Order    Order
	CCNumber string `gorm:"not null"`
	Expiry   string `gorm:"not null"`
	CCV      string `gorm:"not null"`
}

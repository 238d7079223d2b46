package models

import "gorm.io/gorm"

// One cart line per (user, item). Adding the same item again accumulates
// the quantity instead of creating a second line.
type CartItem struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_cart_user_item"`
	User     User
	ItemID   uint `gorm:"not null;uniqueIndex:idx_cart_user_item"`
	Item     Item
	Quantity uint `gorm:"not null"`
}

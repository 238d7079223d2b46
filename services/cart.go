package services

import (
	"errors"

	"Backend/models"

	"gorm.io/gorm"
)

func getUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("User")
		}
		return nil, err
	}
	return &user, nil
}

// mergeCartLine upserts one (user, item) cart line: an existing line has its
// quantity increased, otherwise a new line is inserted. AddCartItem and
// BuyAgain share this policy so a cart never holds duplicate lines for the
// same item.
func mergeCartLine(tx *gorm.DB, userID, itemID, quantity uint) (*models.CartItem, error) {
	var cartItem models.CartItem
	err := tx.
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cartItem = models.CartItem{
				UserID:   userID,
				ItemID:   itemID,
				Quantity: quantity,
			}
			if err := tx.Create(&cartItem).Error; err != nil {
				return nil, err
			}
			return &cartItem, nil
		}
		return nil, err
	}

	cartItem.Quantity += quantity
	if err := tx.Save(&cartItem).Error; err != nil {
		return nil, err
	}
	return &cartItem, nil
}

// AddCartItem adds quantity of an item to the user's cart, merging with an
// existing line for the same item.
func AddCartItem(db *gorm.DB, userID, itemID, quantity uint) (*models.CartItem, error) {
	fields := map[string]string{}
	if itemID == 0 {
		fields["itemId"] = "Item ID is required"
	}
	if quantity == 0 {
		fields["quantity"] = "Quantity must be greater than zero"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := getUser(db, userID); err != nil {
		return nil, err
	}

	var item models.Item
	err := db.First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Item with id %d", itemID)
		}
		return nil, err
	}

	return mergeCartLine(db, userID, itemID, quantity)
}

// UpdateCartItem overwrites the quantity of the user's cart line for an item.
func UpdateCartItem(db *gorm.DB, userID, itemID, quantity uint) (*models.CartItem, error) {
	fields := map[string]string{}
	if itemID == 0 {
		fields["itemId"] = "Item ID is required"
	}
	if quantity == 0 {
		fields["quantity"] = "Quantity must be greater than zero"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := getUser(db, userID); err != nil {
		return nil, err
	}

	var cartItem models.CartItem
	err := db.
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Cart item")
		}
		return nil, err
	}

	cartItem.Quantity = quantity
	if err := db.Save(&cartItem).Error; err != nil {
		return nil, err
	}
	return &cartItem, nil
}

// RemoveCartItem deletes the user's cart line for an item.
func RemoveCartItem(db *gorm.DB, userID, itemID uint) error {
	if _, err := getUser(db, userID); err != nil {
		return err
	}

	// hard delete, so the (user, item) slot in the unique index frees up
	// for a later re-add
	result := db.
		Unscoped().
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NotFoundf("Cart item")
	}
	return nil
}

// GetCartItems returns every cart line of the user with item detail joined.
func GetCartItems(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	if _, err := getUser(db, userID); err != nil {
		return nil, err
	}

	var cartItems []models.CartItem
	err := db.
		Where("user_id = ?", userID).
		Preload("Item").
		Find(&cartItems).
		Error
	if err != nil {
		return nil, err
	}
	return cartItems, nil
}

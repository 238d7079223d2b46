package services

import (
	"errors"

	"Backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentInfo carries the raw card fields submitted at checkout.
type PaymentInfo struct {
	CCNumber string
	Expiry   string
	CCV      string
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ValidatePayment checks the card fields and returns a per-field error map,
// or nil when everything is well-formed.
func ValidatePayment(payment PaymentInfo) *ValidationError {
	fields := map[string]string{}
	if len(payment.CCNumber) != 16 || !isDigits(payment.CCNumber) {
		fields["ccNumber"] = "Credit Card Number must be 16 digits"
	}
	if payment.Expiry == "" {
		fields["expiry"] = "Expiry date is required"
	}
	if (len(payment.CCV) != 3 && len(payment.CCV) != 4) || !isDigits(payment.CCV) {
		fields["ccv"] = "Security Code must be 3 or 4 digits"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// lockCartLines reads the user's cart lines under a row lock, so two
// concurrent checkouts by the same user serialize on them. sqlite has no
// row locks.
func lockCartLines(tx *gorm.DB, userID uint) *gorm.DB {
	query := tx.Where("user_id = ?", userID)
	if tx.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

// Checkout converts the user's cart into a priced Pending order.
//
// The whole sequence runs in one transaction: the cart lines are read under
// a row lock (concurrent checkouts by the same user serialize on it), every
// referenced item must still exist, the order and its frozen line totals are
// created, each item's sales counter moves by the purchased quantity, the
// cart is cleared and the payment record is stored against the new order.
// Any failure rolls the whole sequence back.
func Checkout(db *gorm.DB, userID uint, payment PaymentInfo) (*models.Order, error) {
	if verr := ValidatePayment(payment); verr != nil {
		return nil, verr
	}

	user, err := getUser(db, userID)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var cartItems []models.CartItem
	err = lockCartLines(tx, user.ID).Find(&cartItems).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	totalPrice := 0.0
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		var item models.Item
		err := tx.First(&item, "id = ?", cartItem.ItemID).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundf("Item with id %d", cartItem.ItemID)
			}
			return nil, err
		}

		lineTotal := item.Price * float64(cartItem.Quantity)
		totalPrice += lineTotal
		orderItems = append(orderItems, models.OrderItem{
			ItemID:     item.ID,
			Quantity:   cartItem.Quantity,
			TotalPrice: lineTotal,
		})

		err = tx.
			Model(&models.Item{}).
			Where("id = ?", item.ID).
			UpdateColumn("sales", gorm.Expr("sales + ?", cartItem.Quantity)).
			Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	order := models.Order{
		UserID:     user.ID,
		OrderItems: orderItems,
		TotalPrice: totalPrice,
		Status:     models.OrderStatusPending,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// hard delete, so the (user, item) slots in the unique index free up
	// for later re-adds
	err = tx.
		Unscoped().
		Where("user_id = ?", user.ID).
		Delete(&models.CartItem{}).
		Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	checkoutItem := models.CheckoutItem{
		OrderID:  order.ID,
		CCNumber: payment.CCNumber,
		Expiry:   payment.Expiry,
		CCV:      payment.CCV,
	}
	if err := tx.Create(&checkoutItem).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return &order, nil
}

package services

import (
	"errors"

	"Backend/models"

	"gorm.io/gorm"
)

// casStatus moves an order out of Pending with a compare-and-swap on the
// status column, so two concurrent transitions cannot both succeed.
func casStatus(db *gorm.DB, orderID uint, toStatus string) error {
	result := db.
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Update("status", toStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func findOrder(db *gorm.DB, orderID uint, userID *uint) (*models.Order, error) {
	query := db.Where("id = ?", orderID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var order models.Order
	err := query.First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Order")
		}
		return nil, err
	}
	return &order, nil
}

// CancelOrderByCustomer cancels the user's own Pending order.
func CancelOrderByCustomer(db *gorm.DB, userID, orderID uint) error {
	if _, err := getUser(db, userID); err != nil {
		return err
	}
	if _, err := findOrder(db, orderID, &userID); err != nil {
		return err
	}
	return casStatus(db, orderID, models.OrderStatusCancelled)
}

// AcceptOrderByEmployee marks a Pending order Processed. Employees act on
// any order regardless of owner.
func AcceptOrderByEmployee(db *gorm.DB, orderID uint) error {
	if _, err := findOrder(db, orderID, nil); err != nil {
		return err
	}
	return casStatus(db, orderID, models.OrderStatusProcessed)
}

// CancelOrderByEmployee cancels any Pending order.
func CancelOrderByEmployee(db *gorm.DB, orderID uint) error {
	if _, err := findOrder(db, orderID, nil); err != nil {
		return err
	}
	return casStatus(db, orderID, models.OrderStatusCancelled)
}

// GetOrders returns the user's orders with item detail joined, optionally
// restricted to the given statuses.
func GetOrders(db *gorm.DB, userID uint, statuses ...string) ([]models.Order, error) {
	if _, err := getUser(db, userID); err != nil {
		return nil, err
	}

	query := db.Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var orders []models.Order
	err := query.
		Preload("OrderItems").
		Preload("OrderItems.Item").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAllOrders returns every order of every user, for employees.
func GetAllOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.Item").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderHistoryForEmployees returns every Processed or Cancelled order.
func GetOrderHistoryForEmployees(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.
		Where("status IN ?", []string{models.OrderStatusCancelled, models.OrderStatusProcessed}).
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.Item").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// BuyAgain replays a past order's line items into the user's live cart,
// merging quantities with any lines already there.
func BuyAgain(db *gorm.DB, userID, orderID uint) error {
	if _, err := getUser(db, userID); err != nil {
		return err
	}
	if _, err := findOrder(db, orderID, &userID); err != nil {
		return err
	}

	var orderItems []models.OrderItem
	err := db.Where("order_id = ?", orderID).Find(&orderItems).Error
	if err != nil {
		return err
	}
	if len(orderItems) == 0 {
		return NotFoundf("Order items")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	for _, orderItem := range orderItems {
		if _, err := mergeCartLine(tx, userID, orderItem.ItemID, orderItem.Quantity); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}
	return nil
}

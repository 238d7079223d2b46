package services

import (
	"testing"

	"Backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Item{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.CheckoutItem{},
		&models.Recipe{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createItem(t *testing.T, db *gorm.DB, name string, price float64) *models.Item {
	t.Helper()

	item := models.Item{
		Name:    name,
		Price:   price,
		Calorie: 100,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func createOrder(t *testing.T, db *gorm.DB, userID uint, status string, orderItems ...models.OrderItem) *models.Order {
	t.Helper()

	totalPrice := 0.0
	for _, orderItem := range orderItems {
		totalPrice += orderItem.TotalPrice
	}
	order := models.Order{
		UserID:     userID,
		OrderItems: orderItems,
		TotalPrice: totalPrice,
		Status:     status,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func validPayment() PaymentInfo {
	return PaymentInfo{
		CCNumber: "1234567812345678",
		Expiry:   "12/25",
		CCV:      "123",
	}
}

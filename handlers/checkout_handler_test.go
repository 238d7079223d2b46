package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Backend/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
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

// newTestRedis returns a client with nothing behind it; cache operations
// fail and the handlers treat that as a cache miss.
func newTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func seedUserWithCart(t *testing.T, db *gorm.DB) (*models.User, *models.Item) {
	t.Helper()

	user := models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
		Role:     models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)

	item := models.Item{Name: "Apples", Price: 5.00, Calorie: 100}
	require.NoError(t, db.Create(&item).Error)

	cartItem := models.CartItem{UserID: user.ID, ItemID: item.ID, Quantity: 2}
	require.NoError(t, db.Create(&cartItem).Error)

	return &user, &item
}

func checkoutRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	rdb := newTestRedis()
	router.POST("/checkout/payment", func(c *gin.Context) {
		c.Set("UserID", userID)
		ProcessPaymentHandler(c, db, rdb)
	})
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestProcessPaymentHandlerSuccess(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithCart(t, db)
	router := checkoutRouter(db, user.ID)

	recorder := postJSON(t, router, "/checkout/payment", gin.H{
		"ccNumber": "1234567812345678",
		"expiry":   "12/25",
		"ccv":      "123",
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Success! Payment has been received.", body["message"])

	var orderCount, cartCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&cartCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Zero(t, cartCount)
}

func TestProcessPaymentHandlerRejectsBadCard(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithCart(t, db)
	router := checkoutRouter(db, user.ID)

	recorder := postJSON(t, router, "/checkout/payment", gin.H{
		"ccNumber": "123456781234567",
		"expiry":   "12/25",
		"ccv":      "123",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "ccNumber")

	// no order was created
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestProcessPaymentHandlerUnknownUser(t *testing.T) {
	db := newTestDB(t)
	router := checkoutRouter(db, 42)

	recorder := postJSON(t, router, "/checkout/payment", gin.H{
		"ccNumber": "1234567812345678",
		"expiry":   "12/25",
		"ccv":      "123",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

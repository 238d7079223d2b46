package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"Backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cartRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/cart/add", func(c *gin.Context) {
		c.Set("UserID", userID)
		AddToCartHandler(c, db)
	})
	return router
}

func TestAddToCartHandlerMergesQuantities(t *testing.T) {
	db := newTestDB(t)
	user, item := seedUserWithCart(t, db)
	router := cartRouter(db, user.ID)

	// the seeded cart already holds 2 of the item
	recorder := postJSON(t, router, "/cart/add", gin.H{
		"itemId":   item.ID,
		"quantity": 3,
	})

	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Message  string `json:"message"`
		Quantity uint   `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Item added to cart", body.Message)
	assert.Equal(t, uint(5), body.Quantity)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount)
}

func TestAddToCartHandlerUnknownItem(t *testing.T) {
	db := newTestDB(t)
	user, item := seedUserWithCart(t, db)
	router := cartRouter(db, user.ID)

	recorder := postJSON(t, router, "/cart/add", gin.H{
		"itemId":   item.ID + 99,
		"quantity": 1,
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddToCartHandlerMissingQuantity(t *testing.T) {
	db := newTestDB(t)
	user, item := seedUserWithCart(t, db)
	router := cartRouter(db, user.ID)

	recorder := postJSON(t, router, "/cart/add", gin.H{
		"itemId": item.ID,
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "quantity")
}

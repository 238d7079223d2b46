package handlers

import (
	"log"
	"net/http"

	"Backend/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProcessPaymentHandler validates the payment fields and converts the
// user's cart into a Pending order.
func ProcessPaymentHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var paymentReq struct {
		CCNumber string `json:"ccNumber"`
		Expiry   string `json:"expiry"`
		CCV      string `json:"ccv"`
	}
	if err := c.ShouldBindJSON(&paymentReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	_, err := services.Checkout(db, userID, services.PaymentInfo{
		CCNumber: paymentReq.CCNumber,
		Expiry:   paymentReq.Expiry,
		CCV:      paymentReq.CCV,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to process payment", "")
		return
	}

	// sales counters moved, so the cached catalog is stale
	if err := rdb.Del(c, itemsCacheKey).Err(); err != nil {
		log.Printf("could not drop item cache: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Success! Payment has been received.",
	})
}

// GetCheckoutItemsHandler returns every order of the user with its line
// items.
func GetCheckoutItemsHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := services.GetOrders(db, userID)
	if err != nil {
		respondServiceError(c, err, "Could not read orders", "")
		return
	}

	ordersData := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		itemsData := make([]gin.H, 0, len(order.OrderItems))
		for _, orderItem := range order.OrderItems {
			itemsData = append(itemsData, gin.H{
				"id":          orderItem.ItemID,
				"name":        orderItem.Item.Name,
				"price":       orderItem.Item.Price,
				"quantity":    orderItem.Quantity,
				"total_price": orderItem.TotalPrice,
			})
		}
		ordersData = append(ordersData, gin.H{
			"id":          order.ID,
			"total_price": order.TotalPrice,
			"status":      order.Status,
			"items":       itemsData,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders read successfully",
		"orders":  ordersData,
	})
}

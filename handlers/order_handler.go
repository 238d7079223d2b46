package handlers

import (
	"net/http"

	"Backend/models"
	"Backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPendingOrdersHandler returns the user's Pending orders with item lines.
func GetPendingOrdersHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := services.GetOrders(db, userID, models.OrderStatusPending)
	if err != nil {
		respondServiceError(c, err, "Could not read orders", "")
		return
	}

	ordersData := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		ordersData = append(ordersData, serializeOrder(order, false))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders read successfully",
		"orders":  ordersData,
	})
}

// GetOrderHistoryHandler returns all of the user's orders in any status.
func GetOrderHistoryHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := services.GetOrders(db, userID)
	if err != nil {
		respondServiceError(c, err, "Could not read order history", "")
		return
	}

	ordersData := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		ordersData = append(ordersData, serializeOrder(order, false))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order history read successfully",
		"orders":  ordersData,
	})
}

// BuyAgainHandler replays a past order's items into the live cart.
func BuyAgainHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var buyAgainReq struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&buyAgainReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	if err := services.BuyAgain(db, userID, buyAgainReq.OrderID); err != nil {
		respondServiceError(c, err, "Failed to add items to cart", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Items added to cart successfully",
	})
}

// CancelOrderHandler cancels the user's own Pending order.
func CancelOrderHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var cancelReq struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&cancelReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	if err := services.CancelOrderByCustomer(db, userID, cancelReq.OrderID); err != nil {
		respondServiceError(c, err, "Failed to cancel order", "Order unable to be cancelled")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
	})
}

// GetEmployeeOrdersHandler returns every order of every user.
func GetEmployeeOrdersHandler(c *gin.Context, db *gorm.DB) {
	orders, err := services.GetAllOrders(db)
	if err != nil {
		respondServiceError(c, err, "Could not read orders", "")
		return
	}

	ordersData := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		ordersData = append(ordersData, serializeOrder(order, true))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders read successfully",
		"orders":  ordersData,
	})
}

// AcceptOrderHandler marks a Pending order Processed.
func AcceptOrderHandler(c *gin.Context, db *gorm.DB) {
	var acceptReq struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&acceptReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	if err := services.AcceptOrderByEmployee(db, acceptReq.OrderID); err != nil {
		respondServiceError(c, err, "Failed to process order", "Order already processed or unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order processed successfully",
	})
}

// EmployeeCancelOrderHandler cancels any Pending order.
func EmployeeCancelOrderHandler(c *gin.Context, db *gorm.DB) {
	var cancelReq struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&cancelReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	if err := services.CancelOrderByEmployee(db, cancelReq.OrderID); err != nil {
		respondServiceError(c, err, "Failed to cancel order", "Order unable to be cancelled")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
	})
}

// GetEmployeeOrderHistoryHandler returns every Processed or Cancelled order.
func GetEmployeeOrderHistoryHandler(c *gin.Context, db *gorm.DB) {
	orders, err := services.GetOrderHistoryForEmployees(db)
	if err != nil {
		respondServiceError(c, err, "Could not read order history", "")
		return
	}

	ordersData := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		ordersData = append(ordersData, serializeOrder(order, true))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order history read successfully",
		"orders":  ordersData,
	})
}

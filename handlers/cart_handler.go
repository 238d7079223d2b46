package handlers

import (
	"net/http"
	"strconv"

	"Backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCartHandler returns the user's cart lines with item detail joined.
func GetCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	cartItems, err := services.GetCartItems(db, userID)
	if err != nil {
		respondServiceError(c, err, "Could not read cart", "")
		return
	}

	cartItemsData := make([]gin.H, 0, len(cartItems))
	for _, cartItem := range cartItems {
		cartItemsData = append(cartItemsData, gin.H{
			"id":       cartItem.ID,
			"user_id":  cartItem.UserID,
			"item_id":  cartItem.ItemID,
			"quantity": cartItem.Quantity,
			"item":     serializeItem(cartItem.Item),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Cart read successfully",
		"cartItems": cartItemsData,
	})
}

// AddToCartHandler adds an item to the cart, merging with an existing line
// for the same item.
func AddToCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var cartItemReq struct {
		ItemID   uint `json:"itemId"`
		Quantity uint `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	cartItem, err := services.AddCartItem(db, userID, cartItemReq.ItemID, cartItemReq.Quantity)
	if err != nil {
		respondServiceError(c, err, "Failed to add item to cart", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Item added to cart",
		"itemId":   cartItem.ItemID,
		"quantity": cartItem.Quantity,
	})
}

// UpdateCartItemHandler overwrites the quantity of one cart line.
func UpdateCartItemHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var cartItemReq struct {
		ItemID   uint `json:"itemId"`
		Quantity uint `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	cartItem, err := services.UpdateCartItem(db, userID, cartItemReq.ItemID, cartItemReq.Quantity)
	if err != nil {
		respondServiceError(c, err, "Failed to update cart item", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cart item updated",
		"itemId":   cartItem.ItemID,
		"quantity": cartItem.Quantity,
	})
}

// RemoveFromCartHandler deletes one cart line.
func RemoveFromCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid item ID",
		})
		return
	}

	if err := services.RemoveCartItem(db, userID, uint(itemID)); err != nil {
		respondServiceError(c, err, "Failed to remove item from cart", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

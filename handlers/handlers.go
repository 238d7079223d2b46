package handlers

import (
	"errors"
	"log"
	"net/http"

	"Backend/models"
	"Backend/services"

	"github.com/gin-gonic/gin"
)

// getUserID pulls the authenticated user id the auth middleware put on the
// context.
func getUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("UserID")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not get user ID",
		})
		return 0, false
	}
	return userID.(uint), true
}

// respondServiceError maps the service error taxonomy onto the HTTP
// contract: 400 for validation (with a per-field error map) and disallowed
// transitions, 404 for missing records, 500 for everything else. Unexpected
// errors are logged and never leak internals to the client.
func respondServiceError(c *gin.Context, err error, failMsg, transitionMsg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": transitionMsg,
		})
	default:
		log.Printf("%s: %v", failMsg, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": failMsg,
		})
	}
}

func serializeItem(item models.Item) gin.H {
	var picture interface{}
	if item.Picture != "" {
		picture = "/items/image/" + item.Picture
	}
	return gin.H{
		"id":          item.ID,
		"name":        item.Name,
		"price":       item.Price,
		"calorie":     item.Calorie,
		"vegan":       item.Vegan,
		"glutenFree":  item.GlutenFree,
		"discount":    item.Discount,
		"picture":     picture,
		"sales":       item.Sales,
		"description": item.Description,
	}
}

func serializeOrder(order models.Order, withUser bool) gin.H {
	itemsData := make([]gin.H, 0, len(order.OrderItems))
	for _, orderItem := range order.OrderItems {
		itemsData = append(itemsData, gin.H{
			"item_name":   orderItem.Item.Name,
			"quantity":    orderItem.Quantity,
			"total_price": orderItem.TotalPrice,
			"picture":     orderItem.Item.Picture,
		})
	}

	orderData := gin.H{
		"order_id":    order.ID,
		"items":       itemsData,
		"total_price": order.TotalPrice,
		"status":      order.Status,
	}
	if withUser {
		orderData["user"] = gin.H{
			"username": order.User.Username,
			"user_id":  order.User.ID,
		}
	}
	return orderData
}

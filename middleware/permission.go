package middleware

import (
	"log"
	"net/http"

	"Backend/models"

	"github.com/gin-gonic/gin"
)

// CheckEmployeePermissionMiddleware aborts requests whose caller does not
// hold the employee role. Employee operations carry no ownership checks
// against individual orders.
func CheckEmployeePermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("Role")
		if !exists {
			log.Println("could not get role from context")
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Unexpected error",
			})
			c.Abort()
			return
		}
		if role != models.RoleEmployee {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Permission denied",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

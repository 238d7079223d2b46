package middleware

import (
	"Backend/jwt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware resolves the bearer token, if any, into UserID and Role on
// the request context. Requests without a valid token pass through
// unauthenticated.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" {
			c.Header("Authorization", "")
			c.Next()
			return
		}

		userID, role, err := jwt.VerifyToken(&token, db)
		if err != nil {
			log.Printf("could not verify token: %v\n", err)
			c.Header("Authorization", "")
			c.Next()
			return
		}

		c.Header("Authorization", authHeader)
		c.Set("Token", token)
		c.Set("UserID", userID)
		c.Set("Role", role)
		c.Next()
	}
}

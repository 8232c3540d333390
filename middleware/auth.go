package middleware

import (
	"net/http"
	"strings"

	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the acting user's
// id and role on the request context. Token issuance lives in the external
// auth service; here tokens are only parsed and trusted.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing or malformed"})
			return
		}

		userID, role, err := utils.ExtractActorFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// Actor returns the authenticated user's id and role from the request
// context.
func Actor(c *gin.Context) (userID, role string) {
	return c.GetString(ContextUserID), c.GetString(ContextRole)
}

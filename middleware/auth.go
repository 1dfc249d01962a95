package middleware

import (
	"net/http"
	"strings"

	"viewly/utils"

	"github.com/gin-gonic/gin"
)

// uidKey is where the authenticated actor's uid lands in the gin context.
const uidKey = "uid"

// AuthRequired resolves the acting uid from the bearer token and stores it
// in the request context. The lifecycle core never reads ambient identity;
// handlers pull the uid from here and pass it down explicitly.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		uid, err := utils.ExtractUIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(uidKey, uid)
		c.Next()
	}
}

// ActingUID returns the authenticated actor's uid for this request.
func ActingUID(c *gin.Context) string {
	return c.GetString(uidKey)
}

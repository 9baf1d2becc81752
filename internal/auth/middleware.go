package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing or invalid authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseToken(tokenStr)
		if err != nil || claims.TokenType != TokenTypeAccess {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_staff", claims.IsStaff)
		c.Next()
	}
}

// RequireStaff gates moderation endpoints. Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUserIsStaff(c) {
			c.AbortWithStatusJSON(403, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func CurrentUserIsStaff(c *gin.Context) bool {
	v, ok := c.Get("user_staff")
	if !ok {
		return false
	}
	staff, _ := v.(bool)
	return staff
}

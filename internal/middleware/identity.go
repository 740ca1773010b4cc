package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserHeader carries the externally-trusted numeric user id; there is
// no authentication behind it.
const UserHeader = "X-Sharer-User-Id"

// Identity extracts the user id header into the request context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserHeader)
		if raw == "" {
			c.JSON(400, gin.H{"error": "X-Sharer-User-Id header required"})
			c.Abort()
			return
		}

		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid X-Sharer-User-Id header"})
			c.Abort()
			return
		}

		c.Set("userId", uint(id))
		c.Next()
	}
}

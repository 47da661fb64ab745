package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the caller's user id, set by the upstream gateway.
const Header = "X-Sharer-User-Id"

const contextKey = "sharerUserID"

// Required is a gin middleware that extracts the caller's user id from the
// X-Sharer-User-Id header and stores it in the request context. Requests
// without a parsable id are rejected with 400, mirroring the gateway's
// required-header behavior.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// UserID returns the caller's user id stored by Required, or 0 when absent.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

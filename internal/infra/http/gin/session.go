package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	sessionKey    = "session_id"
	maxSessionLen = 64
)

// SessionMiddleware identifies the browsing session owning the selection.
// Requests without one get a fresh id, echoed in the response header.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if len(id) > maxSessionLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "session id too long"})
			return
		}
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

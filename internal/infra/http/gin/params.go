package ginserver

import (
	"time"

	gin "github.com/gin-gonic/gin"

	"chalet/internal/domain/shared/daterange"
)

// dateQuery reads an optional date query parameter; an absent one is zero.
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return daterange.Parse(raw)
}

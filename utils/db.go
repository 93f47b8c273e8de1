package utils

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

const dbTimeout = 5 * time.Second

// DBContext bounds database work for a request. Queries that outlive the
// deadline surface as a persistence failure instead of hanging the
// handler.
func DBContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}

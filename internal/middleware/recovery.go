package middleware

import (
	"net/http"

	"todoapi/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts any panic into the internal error envelope without
// leaking detail to the client. The panic itself is logged server-side.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("unhandled panic", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"type":    "internal_server_error",
				"message": "An unexpected error occurred",
			},
		})
	})
}

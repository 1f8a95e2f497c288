package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API answers with two historical envelope shapes and clients accept
// both: expected failures use {"detail": ...}, uncaught internal failures
// use {"error": {"type", "message"}}. Both are produced here and nowhere
// else.

func respondDetail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func respondInternal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"type":    "internal_server_error",
			"message": "An unexpected error occurred",
		},
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope used across all endpoints.
// Persistence detail never crosses the wire; callers log it server-side.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceVersion = "1.0.0"

// Health reports liveness. It is the only route besides login that skips
// the auth gate.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "Kanban API",
		"version":   serviceVersion,
	})
}

package handlers

import (
	"net/http"

	"kam-api/store"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	store *store.Store
}

func NewPublicHandler(s *store.Store) *PublicHandler {
	return &PublicHandler{store: s}
}

// Health reports whether the database answers
func (h *PublicHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "Key Account Management API",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Key Account Management API",
		"version": "1.0.0",
	})
}

// Index describes the API entry points
func (h *PublicHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Key Account Management API",
		"health":  "/health",
		"auth":    "/api/auth/login",
		"roles":   []string{"Admin", "KAM", "Viewer"},
	})
}

package handlers

import (
	"net/http"

	"kam-api/models"
	"kam-api/services"
	"kam-api/store"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	store *store.Store
	kam   *services.KAMService
}

func NewAdminHandler(s *store.Store, kam *services.KAMService) *AdminHandler {
	return &AdminHandler{store: s, kam: kam}
}

// Users returns all users, optionally filtered by ?role= (admin only)
func (h *AdminHandler) Users(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	if role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: Admin, KAM, or Viewer", "type": "validation"})
		return
	}
	users, err := h.store.ListUsers(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// Restaurants returns all restaurants with a per-status summary (admin only)
func (h *AdminHandler) Restaurants(c *gin.Context) {
	ctx := c.Request.Context()
	restaurants, err := h.store.ListRestaurants(ctx, store.RestaurantFilter{})
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.store.CountRestaurantsByStatus(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := h.kam.GetLeadsDueForCall(ctx, c.Query("timezone"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Admin dashboard: aggregate by status
	statusSummary := map[string]int64{}
	for _, s := range []models.RestaurantStatus{models.StatusActive, models.StatusInactive, models.StatusConverted} {
		statusSummary[string(s)] = summary[s]
	}

	c.JSON(http.StatusOK, gin.H{
		"status_summary": statusSummary,
		"due_for_call":   len(due),
		"count":          len(restaurants),
		"restaurants":    restaurants,
	})
}

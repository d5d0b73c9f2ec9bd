package handlers

import (
	"net/http"
	"time"

	"kam-api/models"
	"kam-api/services"
	"kam-api/store"

	"github.com/gin-gonic/gin"
)

type CreateInteractionRequest struct {
	Type         models.InteractionType `json:"type" binding:"required"`
	Details      string                 `json:"details"`
	Date         *time.Time             `json:"date"`
	RestaurantID uint                   `json:"restaurant_id" binding:"required"`
}

type UpdateInteractionRequest struct {
	Type    *models.InteractionType `json:"type"`
	Details *string                 `json:"details"`
	Date    *time.Time              `json:"date"`
}

type InteractionHandler struct {
	store *store.Store
	svc   *services.InteractionService
}

func NewInteractionHandler(s *store.Store, svc *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{store: s, svc: svc}
}

// Create records an interaction; a call also moves the restaurant's last_call_date
func (h *InteractionHandler) Create(c *gin.Context) {
	var req CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	interaction := models.Interaction{
		Type:         req.Type,
		Details:      req.Details,
		RestaurantID: req.RestaurantID,
	}
	if req.Date != nil {
		interaction.Date = *req.Date
	}
	if err := h.svc.Create(c.Request.Context(), &interaction); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

// ListByRestaurant returns a restaurant's interactions, newest first.
// ?type= narrows to one interaction type.
func (h *InteractionHandler) ListByRestaurant(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, param)
		if !ok {
			return
		}
		filter := store.InteractionFilter{RestaurantID: &id, Newest: true}
		if t := c.Query("type"); t != "" {
			parsed, err := models.ParseInteractionType(t)
			if err != nil {
				respondError(c, err)
				return
			}
			filter.Type = parsed
		}
		if _, err := h.store.GetRestaurant(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		interactions, err := h.store.ListInteractions(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, interactions)
	}
}

func (h *InteractionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	interaction, err := h.store.GetInteraction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interaction)
}

// Update edits an interaction; last_call_date is left as is
func (h *InteractionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	interaction, err := h.store.UpdateInteraction(c.Request.Context(), id, store.InteractionPatch{
		Type:    req.Type,
		Details: req.Details,
		Date:    req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interaction)
}

func (h *InteractionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteInteraction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interaction deleted successfully"})
}

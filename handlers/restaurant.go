package handlers

import (
	"net/http"
	"time"

	"kam-api/models"
	"kam-api/store"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name          string                  `json:"name" binding:"required"`
	Status        models.RestaurantStatus `json:"status"`
	CallFrequency *int                    `json:"call_frequency"`
	LastCallDate  *time.Time              `json:"last_call_date"`
	AddressID     *uint                   `json:"address_id"`
}

type UpdateRestaurantRequest struct {
	Name          *string                  `json:"name"`
	Status        *models.RestaurantStatus `json:"status"`
	CallFrequency *int                     `json:"call_frequency"`
	LastCallDate  *time.Time               `json:"last_call_date"`
	AddressID     *uint                    `json:"address_id"`
	DetachAddress bool                     `json:"detach_address"`
}

type RestaurantHandler struct {
	store *store.Store
}

func NewRestaurantHandler(s *store.Store) *RestaurantHandler {
	return &RestaurantHandler{store: s}
}

// List returns restaurants, optionally filtered by status or name search
func (h *RestaurantHandler) List(c *gin.Context) {
	filter := store.RestaurantFilter{Search: c.Query("search")}
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseRestaurantStatus(status)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Status = parsed
	}
	restaurants, err := h.store.ListRestaurants(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// Get returns a single restaurant with its address
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.store.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// Create registers a new lead; status defaults to active and call_frequency to 7 days
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	restaurant := models.Restaurant{
		Name:         req.Name,
		Status:       req.Status,
		LastCallDate: req.LastCallDate,
		AddressID:    req.AddressID,
	}
	if req.CallFrequency != nil {
		if err := models.ValidateCallFrequency(*req.CallFrequency); err != nil {
			respondError(c, err)
			return
		}
		restaurant.CallFrequency = *req.CallFrequency
	}
	if err := h.store.CreateRestaurant(c.Request.Context(), &restaurant); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// Update applies a partial update
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	restaurant, err := h.store.UpdateRestaurant(c.Request.Context(), id, store.RestaurantPatch{
		Name:          req.Name,
		Status:        req.Status,
		CallFrequency: req.CallFrequency,
		LastCallDate:  req.LastCallDate,
		AddressID:     req.AddressID,
		ClearAddress:  req.DetachAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// Delete removes a restaurant with its contacts and interactions
func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteRestaurant(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

package handlers

import (
	"net/http"

	"kam-api/models"
	"kam-api/store"

	"github.com/gin-gonic/gin"
)

type CreateContactRequest struct {
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role" binding:"required"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
}

type UpdateContactRequest struct {
	Name  *string `json:"name"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type ContactHandler struct {
	store *store.Store
}

func NewContactHandler(s *store.Store) *ContactHandler {
	return &ContactHandler{store: s}
}

// List returns every contact
func (h *ContactHandler) List(c *gin.Context) {
	h.list(c, nil)
}

// ListByRestaurant serves both /contacts/restaurant/:restaurantId and /restaurants/:id/contacts
func (h *ContactHandler) ListByRestaurant(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, param)
		if !ok {
			return
		}
		if _, err := h.store.GetRestaurant(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		h.list(c, &id)
	}
}

func (h *ContactHandler) list(c *gin.Context, restaurantID *uint) {
	contacts, err := h.store.ListContacts(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	contact := models.Contact{
		Name:         req.Name,
		Role:         req.Role,
		Phone:        req.Phone,
		Email:        req.Email,
		RestaurantID: req.RestaurantID,
	}
	if err := h.store.CreateContact(c.Request.Context(), &contact); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	contact, err := h.store.UpdateContact(c.Request.Context(), id, store.ContactPatch{
		Name:  req.Name,
		Role:  req.Role,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteContact(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

package handlers

import (
	"net/http"

	"kam-api/models"
	"kam-api/services"
	"kam-api/store"

	"github.com/gin-gonic/gin"
)

// Timezone is never accepted from clients; it comes from the geocode lookup.
type CreateAddressRequest struct {
	Street  *string `json:"street"`
	City    string  `json:"city" binding:"required"`
	State   *string `json:"state"`
	Country string  `json:"country" binding:"required"`
	PinCode string  `json:"pin_code" binding:"required"`
}

type UpdateAddressRequest struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	PinCode *string `json:"pin_code"`
}

type AddressHandler struct {
	store *store.Store
	svc   *services.AddressService
}

func NewAddressHandler(s *store.Store, svc *services.AddressService) *AddressHandler {
	return &AddressHandler{store: s, svc: svc}
}

func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.store.ListAddresses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	address, err := h.store.GetAddress(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	address := models.Address{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
		PinCode: req.PinCode,
	}
	if err := h.svc.Create(c.Request.Context(), &address); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	address, err := h.svc.Update(c.Request.Context(), id, store.AddressPatch{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
		PinCode: req.PinCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// Delete detaches the address from its restaurants before removing it
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteAddress(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

package handlers

import (
	"net/http"

	"kam-api/services"

	"github.com/gin-gonic/gin"
)

// ── Call planning & account performance ─────────────────────────────────────

type KAMHandler struct {
	kam *services.KAMService
}

func NewKAMHandler(kam *services.KAMService) *KAMHandler {
	return &KAMHandler{kam: kam}
}

// DueCalls lists restaurants due for a call today; ?timezone= picks whose "today"
func (h *KAMHandler) DueCalls(c *gin.Context) {
	due, err := h.kam.GetLeadsDueForCall(c.Request.Context(), c.Query("timezone"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

// PerformanceMetrics reports order totals, average gap and the tiered status
func (h *KAMHandler) PerformanceMetrics(c *gin.Context) {
	metrics, err := h.kam.GetPerformanceMetrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// PerformanceData reports order counts under the threshold classifier
func (h *KAMHandler) PerformanceData(c *gin.Context) {
	data, err := h.kam.GetPerformanceData(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *KAMHandler) OrderFrequency(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	freq, err := h.kam.GetOrderFrequency(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, freq)
}

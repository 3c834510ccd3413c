package handler

import (
	"net/http"

	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type RateHandler struct {
	rate *service.RateService
}

func NewRateHandler(rate *service.RateService) *RateHandler {
	return &RateHandler{rate: rate}
}

// Check handles POST /users/:id/rate-check. The gateway calls it once per
// incoming user message; an allowed call counts against the user's window.
func (h *RateHandler) Check(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d := h.rate.Allow(id)
	if !d.Allowed {
		respondRateLimited(c, d)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": true})
}

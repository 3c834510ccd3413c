package handler

import (
	"net/http"

	"uniconnect/internal/maintenance"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	checker *maintenance.Checker
}

func NewHealthHandler(checker *maintenance.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Healthz handles GET /healthz; 503 when the store is unreachable.
func (h *HealthHandler) Healthz(c *gin.Context) {
	r := h.checker.Check(c.Request.Context())
	status := http.StatusOK
	if !r.StoreUp {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, r)
}

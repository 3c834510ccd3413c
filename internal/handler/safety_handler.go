package handler

import (
	"net/http"

	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type SafetyHandler struct {
	safety *service.SafetyService
}

func NewSafetyHandler(safety *service.SafetyService) *SafetyHandler {
	return &SafetyHandler{safety: safety}
}

func (h *SafetyHandler) Block(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.safety.Block(c.Request.Context(), id, req.TargetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SafetyHandler) Unblock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	target, ok := parseID(c, "target_id")
	if !ok {
		return
	}
	if err := h.safety.Unblock(c.Request.Context(), id, target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SafetyHandler) Report(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		TargetID int64   `json:"target_id" binding:"required,gt=0"`
		Reason   *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.safety.Report(c.Request.Context(), id, req.TargetID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "submitted"})
}

package handler

import (
	"net/http"

	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	matching *service.MatchingService
}

func NewInteractionHandler(matching *service.MatchingService) *InteractionHandler {
	return &InteractionHandler{matching: matching}
}

// Like handles POST /users/:id/likes.
func (h *InteractionHandler) Like(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.matching.RecordLike(c.Request.Context(), id, req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InteractionHandler) Matches(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.matching.Matches(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": list})
}

// Likers handles GET /users/:id/likers: pending, not yet mutual.
func (h *InteractionHandler) Likers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.matching.Likers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": list})
}

func (h *InteractionHandler) Mutual(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	target, ok := parseID(c, "target_id")
	if !ok {
		return
	}
	mutual, err := h.matching.IsMutual(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mutual": mutual})
}

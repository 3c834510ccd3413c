package handler

import (
	"net/http"

	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	safety *service.SafetyService
}

func NewFavoriteHandler(safety *service.SafetyService) *FavoriteHandler {
	return &FavoriteHandler{safety: safety}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.safety.Favorites(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": list})
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.safety.AddFavorite(c.Request.Context(), id, req.TargetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": true})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	target, ok := parseID(c, "target_id")
	if !ok {
		return
	}
	if err := h.safety.RemoveFavorite(c.Request.Context(), id, target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": false})
}

func (h *FavoriteHandler) Check(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	target, ok := parseID(c, "target_id")
	if !ok {
		return
	}
	fav, err := h.safety.IsFavorited(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": fav})
}

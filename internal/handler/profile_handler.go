package handler

import (
	"net/http"

	"uniconnect/internal/models"
	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type registerRequest struct {
	ID         int64  `json:"id" binding:"required,gt=0"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	PhotoRef   string `json:"photo_ref"`
}

// Register handles PUT /profiles: create or overwrite a profile.
func (h *ProfileHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.profiles.Register(c.Request.Context(), models.ProfileInput{
		ID:         req.ID,
		Name:       req.Name,
		Age:        req.Age,
		Department: req.Department,
		Bio:        req.Bio,
		PhotoRef:   req.PhotoRef,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Exists(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	exists, err := h.profiles.Exists(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Stats handles GET /users/:id/stats.
func (h *ProfileHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	st, err := h.profiles.UserStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

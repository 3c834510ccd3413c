package handler

import (
	"net/http"

	"uniconnect/internal/registration"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	flow *registration.Flow
}

func NewRegistrationHandler(flow *registration.Flow) *RegistrationHandler {
	return &RegistrationHandler{flow: flow}
}

func sessionView(s registration.Session) gin.H {
	return gin.H{"step": s.Step, "expects": s.Step.Field(), "session": s}
}

// Start handles POST /users/:id/registration: begins or restarts.
func (h *RegistrationHandler) Start(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := h.flow.Start(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(s))
}

// Submit handles POST /users/:id/registration/input with {text, photo_ref}.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text     string `json:"text"`
		PhotoRef string `json:"photo_ref"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.flow.Submit(c.Request.Context(), id, registration.Input{Text: req.Text, PhotoRef: req.PhotoRef})
	if err != nil {
		respondError(c, err)
		return
	}
	out := sessionView(res.Session)
	if res.Profile != nil {
		out["profile"] = res.Profile
	}
	c.JSON(http.StatusOK, out)
}

func (h *RegistrationHandler) Current(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := h.flow.Current(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(*s))
}

func (h *RegistrationHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.flow.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

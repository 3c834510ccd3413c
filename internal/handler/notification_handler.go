package handler

import (
	"net/http"
	"strconv"

	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifs *service.NotificationService
}

func NewNotificationHandler(notifs *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifs: notifs}
}

// List handles GET /users/:id/notifications?unread=true&limit=N.
func (h *NotificationHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	list, err := h.notifs.List(c.Request.Context(), id, c.Query("unread") == "true", limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	nid, ok := parseUint(c, "notification_id")
	if !ok {
		return
	}
	if err := h.notifs.MarkRead(c.Request.Context(), id, nid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handler

import (
	"net/http"

	"uniconnect/internal/logger"
	"uniconnect/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxPhotoBytes bounds an uploaded profile photo.
const MaxPhotoBytes = 10 << 20

type UploadHandler struct {
	client cloudinary.Client // nil when uploads are not configured
	log    *zap.Logger
}

func NewUploadHandler(client cloudinary.Client, log *zap.Logger) *UploadHandler {
	return &UploadHandler{client: client, log: log}
}

// Photo handles POST /users/:id/photo (multipart field "photo"). The returned
// photo_ref is what registration expects.
func (h *UploadHandler) Photo(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo uploads are not configured"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo"})
		return
	}
	defer f.Close()
	res, err := h.client.UploadPhoto(c.Request.Context(), f, id)
	if err != nil {
		h.log.Error("photo upload failed", logger.UserID(id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_ref": res.URL, "thumbnail_url": res.ThumbnailURL, "public_id": res.PublicID})
}

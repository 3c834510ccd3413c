package handler

import (
	"errors"
	"net/http"
	"strconv"

	"uniconnect/internal/domain"
	"uniconnect/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrSelfAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field, "constraint": verr.Constraint})
	case domain.IsStore(err):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable", "retryable": true})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func respondRateLimited(c *gin.Context, d ratelimit.Decision) {
	retry := d.RetryAfterSeconds()
	c.Header("Retry-After", strconv.Itoa(retry))
	c.JSON(http.StatusTooManyRequests, gin.H{"allowed": false, "retry_after_seconds": retry})
}

// parseID reads a positive int64 path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

type targetRequest struct {
	TargetID int64 `json:"target_id" binding:"required,gt=0"`
}

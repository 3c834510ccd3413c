package handler

import (
	"net/http"
	"strconv"

	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	profiles *service.ProfileService
	matching *service.MatchingService
	safety   *service.SafetyService
	rate     *service.RateService
}

func NewAdminHandler(
	profiles *service.ProfileService,
	matching *service.MatchingService,
	safety *service.SafetyService,
	rate *service.RateService,
) *AdminHandler {
	return &AdminHandler{
		profiles: profiles,
		matching: matching,
		safety:   safety,
		rate:     rate,
	}
}

// Stats handles GET /admin/stats: global counts.
func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.profiles.GlobalStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ProfileInfo handles GET /admin/profiles/:id: profile, activity and limiter state.
func (h *AdminHandler) ProfileInfo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	st, err := h.profiles.UserStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":    p,
		"stats":      st,
		"rate_limit": h.rate.Stats(id),
	})
}

// ResetRateLimit handles POST /admin/ratelimit/:id/reset.
func (h *AdminHandler) ResetRateLimit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.rate.Reset(id)
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (h *AdminHandler) PendingReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	list, err := h.safety.PendingReports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": list})
}

func (h *AdminHandler) ReviewReport(c *gin.Context) {
	id, ok := parseUint(c, "report_id")
	if !ok {
		return
	}
	if err := h.safety.MarkReportReviewed(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reviewed"})
}

// RebuildMatches handles POST /admin/matches/rebuild.
func (h *AdminHandler) RebuildMatches(c *gin.Context) {
	n, err := h.matching.RebuildMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": n})
}

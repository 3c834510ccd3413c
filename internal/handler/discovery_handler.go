package handler

import (
	"errors"
	"net/http"
	"strconv"

	"uniconnect/internal/domain"
	"uniconnect/internal/repository"
	"uniconnect/internal/service"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	matching *service.MatchingService
}

func NewDiscoveryHandler(matching *service.MatchingService) *DiscoveryHandler {
	return &DiscoveryHandler{matching: matching}
}

// filtersFromQuery reads ?age=<preset>, ?min_age, ?max_age and ?department.
// Explicit bounds override the preset.
func filtersFromQuery(c *gin.Context) (repository.CandidateFilters, error) {
	var f repository.CandidateFilters
	if preset := c.Query("age"); preset != "" {
		r, ok := domain.AgePresets[preset]
		if !ok {
			return f, domain.NewValidationError("age", "unknown preset %q", preset)
		}
		f.MinAge, f.MaxAge = r.Min, r.Max
	}
	for _, b := range []struct {
		name string
		dst  **int
	}{{"min_age", &f.MinAge}, {"max_age", &f.MaxAge}} {
		v := c.Query(b.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, domain.NewValidationError(b.name, "must be a whole number")
		}
		*b.dst = &n
	}
	if d, ok := c.GetQuery("department"); ok {
		f.Department = &d
	}
	return f, nil
}

// NextCandidate handles GET /users/:id/candidate.
func (h *DiscoveryHandler) NextCandidate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	f, err := filtersFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p, err := h.matching.NextCandidate(c.Request.Context(), id, f)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no candidates match the filters"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

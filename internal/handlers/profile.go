package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

type profileRequest struct {
	Username string `json:"username"`
}

// Analyze handles POST /api/profile. It returns the merged aggregate for a
// username, or a status matching the upstream classification: 400 invalid
// input, 404 unknown user, 429 rate-limited with a retry hint, 403
// forbidden, 500 for malformed or transport failures.
func (h *ProfileHandler) Analyze(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	result, err := h.profileService.Analyze(c.Request.Context(), req.Username)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.Header("Cache-Control", "private, no-cache, no-store, must-revalidate")
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Metadata.RateLimitRemaining))
	c.JSON(http.StatusOK, result)
}

// respondUpstreamError maps the error taxonomy onto HTTP statuses. The
// classification must stay distinguishable so the caller can render a
// rate-limit countdown differently from "not found".
func respondUpstreamError(c *gin.Context, err error) {
	var rateErr *models.RateLimitedError
	switch {
	case errors.Is(err, models.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username format"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.As(err, &rateErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "GitHub API rate limit exceeded",
			"retryAfter": rateErr.ResetAt.UTC().Format(time.RFC3339),
		})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access forbidden. Check GitHub token permissions."})
	case errors.Is(err, models.ErrMalformed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid response from GitHub"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

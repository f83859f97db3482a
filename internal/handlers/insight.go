package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/internal/services"
)

type InsightHandler struct {
	insightService *services.InsightService
}

func NewInsightHandler(insightService *services.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// Analyze handles POST /api/insight. The body carries the aggregate fields
// produced by the profile endpoint; the response wraps the extracted
// structured assessment.
func (h *InsightHandler) Analyze(c *gin.Context) {
	var aggregate models.AggregateResult
	if err := c.ShouldBindJSON(&aggregate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	insight, err := h.insightService.Analyze(c.Request.Context(), &aggregate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAggregate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile AI analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": insight})
}

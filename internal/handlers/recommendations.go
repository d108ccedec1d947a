package handlers

import (
	"net/http"

	"anubhav/internal/metrics"
	"anubhav/internal/models"

	"github.com/gin-gonic/gin"
)

// Recommendations handlers

// Recommend - POST /api/recommendations
// Answers a free-text mood with a ranked subset of the catalog.
func (h *Handlers) Recommend(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalog := h.services.Catalog.List(c.Request.Context())

	recommendation, err := h.services.Recommendations.Recommend(c.Request.Context(), req.Mood, catalog)
	if err != nil {
		h.handleServiceError(c, err, "Failed to recommend")
		return
	}

	source := metrics.SourceFallback
	if recommendation.FromModel {
		source = metrics.SourceModel
	}
	metrics.RecommendationsServed.WithLabelValues(source).Inc()

	c.JSON(http.StatusOK, recommendation)
}

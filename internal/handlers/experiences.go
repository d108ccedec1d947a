package handlers

import (
	"log/slog"
	"net/http"

	"anubhav/internal/models"

	"github.com/gin-gonic/gin"
)

// Experiences handlers

// ListExperiences - GET /api/experiences
// Returns the merged catalog, optionally filtered by query and category.
func (h *Handlers) ListExperiences(c *gin.Context) {
	query := c.Query("query")
	category := c.Query("category")

	// Only the unfiltered listing is worth caching; filtered views are
	// cheap enough to compute per request.
	shouldCache := query == "" && category == ""

	if shouldCache && h.redisClient != nil {
		rawJSON, err := h.redisClient.GetCatalogRaw(c.Request.Context(), "all")
		if err == nil {
			slog.Info("Cache hit for catalog")
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	var experiences []models.Experience
	if query != "" || category != "" {
		experiences = h.services.Catalog.Search(c.Request.Context(), query, category)
	} else {
		experiences = h.services.Catalog.List(c.Request.Context())
	}

	response := models.ListExperiencesResponse{Experiences: experiences}

	if shouldCache && h.redisClient != nil {
		h.redisClient.SetCatalog(c.Request.Context(), "all", response)
	}

	c.JSON(http.StatusOK, response)
}

// GetExperience - GET /api/experiences/:id
func (h *Handlers) GetExperience(c *gin.Context) {
	id := c.Param("id")

	for _, exp := range h.services.Catalog.List(c.Request.Context()) {
		if exp.ID == id {
			c.JSON(http.StatusOK, exp)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Experience not found"})
}

// SaveExperience - POST /api/experiences
// Creates a new listing or updates one owned by the caller.
func (h *Handlers) SaveExperience(c *gin.Context) {
	var req models.SaveExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	experience, err := h.services.Catalog.Save(c.Request.Context(), &req, h.userID(c))
	if err != nil {
		h.handleServiceError(c, err, "Failed to save experience")
		return
	}

	if h.redisClient != nil {
		h.redisClient.InvalidateCatalog(c.Request.Context())
	}

	c.JSON(http.StatusCreated, models.SaveExperienceResponse{ID: experience.ID})
}

// DeleteExperience - DELETE /api/experiences/:id
// Removing someone else's listing is a silent no-op.
func (h *Handlers) DeleteExperience(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Catalog.Delete(c.Request.Context(), id, h.userID(c)); err != nil {
		h.handleServiceError(c, err, "Failed to delete experience")
		return
	}

	if h.redisClient != nil {
		h.redisClient.InvalidateCatalog(c.Request.Context())
	}

	c.Status(http.StatusOK)
}

// AdminDeleteExperience - DELETE /api/admin/experiences/:id
// Admin console can remove any listing regardless of owner.
func (h *Handlers) AdminDeleteExperience(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Catalog.AdminDelete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to delete experience")
		return
	}

	if h.redisClient != nil {
		h.redisClient.InvalidateCatalog(c.Request.Context())
	}

	c.Status(http.StatusOK)
}

package handlers

import (
	"log/slog"
	"net/http"

	"anubhav/internal/models"

	"github.com/gin-gonic/gin"
)

// Profile handlers. Favorites and prefill live in Redis only; losing the
// cache loses them, matching the device-storage semantics of the client.

// ListFavorites - GET /api/favorites
func (h *Handlers) ListFavorites(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusOK, models.FavoritesResponse{ExperienceIDs: []string{}})
		return
	}

	ids, err := h.redisClient.GetFavorites(c.Request.Context(), h.userID(c))
	if err != nil {
		slog.Error("Failed to read favorites", "error", err)
		c.JSON(http.StatusOK, models.FavoritesResponse{ExperienceIDs: []string{}})
		return
	}

	c.JSON(http.StatusOK, models.FavoritesResponse{ExperienceIDs: ids})
}

// AddFavorite - PUT /api/favorites/:id
func (h *Handlers) AddFavorite(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Favorites unavailable"})
		return
	}

	if err := h.redisClient.AddFavorite(c.Request.Context(), h.userID(c), c.Param("id")); err != nil {
		slog.Error("Failed to add favorite", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Favorites unavailable"})
		return
	}

	c.Status(http.StatusOK)
}

// RemoveFavorite - DELETE /api/favorites/:id
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Favorites unavailable"})
		return
	}

	if err := h.redisClient.RemoveFavorite(c.Request.Context(), h.userID(c), c.Param("id")); err != nil {
		slog.Error("Failed to remove favorite", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Favorites unavailable"})
		return
	}

	c.Status(http.StatusOK)
}

// GetPrefill - GET /api/profile/prefill
// Returns the guest contact details captured on the last booking. Empty
// strings mean nothing is remembered; the client shows a blank form.
func (h *Handlers) GetPrefill(c *gin.Context) {
	var name, phone string
	if h.redisClient != nil {
		name, phone = h.redisClient.GetPrefill(c.Request.Context(), h.userID(c))
	}

	c.JSON(http.StatusOK, models.PrefillResponse{GuestName: name, GuestPhone: phone})
}

// GetUIFlags - GET /api/profile/flags
// Boolean UI preferences (tour seen, widget collapsed). Cache only: a cold
// Redis means the client replays its first-run behavior, nothing worse.
func (h *Handlers) GetUIFlags(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusOK, gin.H{"flags": map[string]string{}})
		return
	}

	flags, err := h.redisClient.GetPreferenceFlags(c.Request.Context(), h.userID(c))
	if err != nil {
		slog.Error("Failed to read UI flags", "error", err)
		c.JSON(http.StatusOK, gin.H{"flags": map[string]string{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

// SetUIFlag - PUT /api/profile/flags/:flag
func (h *Handlers) SetUIFlag(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Preferences unavailable"})
		return
	}

	var req struct {
		Value bool `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.redisClient.SetPreferenceFlag(c.Request.Context(), h.userID(c), c.Param("flag"), req.Value)
	if err != nil {
		slog.Error("Failed to set UI flag", "error", err, "flag", c.Param("flag"))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Preferences unavailable"})
		return
	}

	c.Status(http.StatusOK)
}

// GetNotificationPrefs - GET /api/profile/notifications
func (h *Handlers) GetNotificationPrefs(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), h.userID(c))
	if err != nil {
		h.handleServiceError(c, err, "Failed to load notification preferences")
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, models.NotificationPrefsResponse{
		EmailOptIn: user.EmailOptIn,
		SMSOptIn:   user.SMSOptIn,
	})
}

// UpdateNotificationPrefs - PUT /api/profile/notifications
func (h *Handlers) UpdateNotificationPrefs(c *gin.Context) {
	var req models.NotificationPrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.users.UpdateNotificationPrefs(c.Request.Context(), h.userID(c), req.EmailOptIn, req.SMSOptIn)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update notification preferences")
		return
	}

	c.Status(http.StatusOK)
}

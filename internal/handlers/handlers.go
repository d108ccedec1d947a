package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"anubhav/internal/apperrors"
	"anubhav/internal/cache"
	"anubhav/internal/repository"
	"anubhav/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services    *service.Services
	redisClient *cache.RedisClient
	users       *repository.UserRepository
	adminEmail  string
}

func NewHandlers(services *service.Services, redisClient *cache.RedisClient, users *repository.UserRepository, adminEmail string) *Handlers {
	return &Handlers{
		services:    services,
		redisClient: redisClient,
		users:       users,
		adminEmail:  adminEmail,
	}
}

// userID pulls the authenticated user id set by the BasicAuth middleware.
func (h *Handlers) userID(c *gin.Context) string {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// handleServiceError translates sentinel errors into HTTP statuses.
func (h *Handlers) handleServiceError(c *gin.Context, err error, msg string) {
	slog.Error(msg, "error", err)

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrEmptyMood):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSoldOut):
		c.JSON(http.StatusConflict, gin.H{"error": "Slot is sold out"})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"anubhav/internal/logger"
	"anubhav/internal/models"
	"anubhav/internal/repository"

	"github.com/gin-gonic/gin"
)

// Ctx key and helpers for the authenticated user
// Using unexported type to avoid collisions

type ctxKey string

const userIDKey ctxKey = "user_id"

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// RequestID tags every request with a generated id for log correlation
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = logger.NewRequestID()
		}

		c.Header("X-Request-ID", reqID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "request_id", reqID))

		c.Next()
	}
}

// CORS middleware for cross-origin requests from the web client
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger middleware for structured request logging
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		userID, exists := c.Get("user_id")

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if exists {
			logFields = append(logFields, "user_id", userID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Debug("Request completed", logFields...)
		}
	}
}

// Recovery middleware recovers from panics with detailed logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// BasicAuth authenticates the user against the users collection. The role is
// whatever was derived at registration: admin iff the email matches the
// configured admin address.
func BasicAuth(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", "Basic realm=\"Restricted\"")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := c.Request.Context()

		user, err := userRepo.GetByEmail(ctx, username)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		hash := sha256.Sum256([]byte(password))
		if fmt.Sprintf("%x", hash) != user.PasswordHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Request = c.Request.WithContext(ContextWithUserID(c.Request.Context(), user.ID))

		c.Next()
	}
}

// RequireAdmin gates the admin console routes
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

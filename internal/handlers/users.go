package handlers

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	"anubhav/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Users handlers

// RegisterUser - POST /api/users
// Creates an account. The configured admin email gets the admin role.
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err, "Failed to register user")
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	role := models.RoleUser
	if email == h.adminEmail {
		role = models.RoleAdmin
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: fmt.Sprintf("%x", sha256.Sum256([]byte(req.Password))),
		Role:         role,
		EmailOptIn:   true,
		SMSOptIn:     true,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.handleServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, models.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

package handlers

import (
	"net/http"

	"anubhav/internal/metrics"
	"anubhav/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
// Books a slot and returns the booking plus the WhatsApp hand-off link.
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.Create(c.Request.Context(), &req, h.userID(c))
	if err != nil {
		h.handleServiceError(c, err, "Failed to create booking")
		return
	}

	metrics.BookingsCreated.Inc()

	c.JSON(http.StatusCreated, response)
}

// ListBookings - GET /api/bookings
// Returns the caller's bookings, newest first.
func (h *Handlers) ListBookings(c *gin.Context) {
	bookings, err := h.services.Bookings.List(c.Request.Context(), h.userID(c))
	if err != nil {
		h.handleServiceError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, models.ListBookingsResponse{Bookings: bookings})
}

// RateBooking - PATCH /api/bookings/rate
// Attaches a rating to a booking and folds it into the experience average.
func (h *Handlers) RateBooking(c *gin.Context) {
	var req models.RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.services.Ratings.Rate(c.Request.Context(), req.BookingID, req.ExperienceID, req.Rating)
	if err != nil {
		h.handleServiceError(c, err, "Failed to rate booking")
		return
	}

	c.Status(http.StatusOK)
}

package service

import (
	"context"
	"fmt"
	"time"

	"anubhav/internal/apperrors"
	"anubhav/internal/logger"
	"anubhav/internal/models"
)

// RatingService folds guest ratings into an experience's running average.
// This is the one read-modify-write in the system that must survive
// concurrent writers, so the store contract requires it to happen in a
// single conflict-safe transaction.
type RatingService struct {
	experiences ExperienceStore
	seedCatalog []models.Experience
	nats        Publisher
}

func NewRatingService(experiences ExperienceStore, seedCatalog []models.Experience, nats Publisher) *RatingService {
	return &RatingService{
		experiences: experiences,
		seedCatalog: seedCatalog,
		nats:        nats,
	}
}

// Rate attaches a rating to a booking and recomputes the experience's
// running mean as (oldAvg*oldCount + rating) / (oldCount + 1). An experience
// with no remote row yet is seeded from the static catalog inside the same
// transaction so its history starts from the seed fields, not from nothing.
func (s *RatingService) Rate(ctx context.Context, bookingID, experienceID string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", apperrors.ErrValidation)
	}

	seedCopy := findSeed(s.seedCatalog, experienceID)
	if err := s.experiences.ApplyRating(ctx, bookingID, experienceID, rating, seedCopy); err != nil {
		return fmt.Errorf("failed to apply rating: %w", err)
	}

	event := models.BookingRatedEvent{
		BookingID:    bookingID,
		ExperienceID: experienceID,
		Rating:       rating,
		Timestamp:    time.Now(),
	}
	if err := s.nats.Publish(models.EventBookingRated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking rated event",
			"error", err,
			"booking_id", bookingID,
			"event_type", models.EventBookingRated)
	}

	return nil
}

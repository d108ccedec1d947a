package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anubhav/internal/apperrors"
	"anubhav/internal/external"
	"anubhav/internal/logger"
	"anubhav/internal/models"

	"github.com/google/uuid"
)

type BookingService struct {
	bookings    BookingStore
	experiences ExperienceStore
	seedCatalog []models.Experience
	nats        Publisher
	contacts    ContactCache
	whatsapp    *external.WhatsAppLink
}

func NewBookingService(bookings BookingStore, experiences ExperienceStore, seedCatalog []models.Experience, nats Publisher, contacts ContactCache, whatsapp *external.WhatsAppLink) *BookingService {
	return &BookingService{
		bookings:    bookings,
		experiences: experiences,
		seedCatalog: seedCatalog,
		nats:        nats,
		contacts:    contacts,
		whatsapp:    whatsapp,
	}
}

// Create books a slot for a guest. The booking snapshots price and host
// contact at this moment; later catalog edits never touch it. Persistence
// and the messaging hand-off are sequential: a failed persist means no link,
// a returned link that is never opened means the booking still stands.
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest, userID string) (*models.CreateBookingResponse, error) {
	if strings.TrimSpace(req.GuestName) == "" || strings.TrimSpace(req.GuestPhone) == "" {
		return nil, fmt.Errorf("guest name and phone are required: %w", apperrors.ErrValidation)
	}

	exp, err := s.resolveExperience(ctx, req.ExperienceID)
	if err != nil {
		return nil, err
	}

	if !containsSlot(exp.Slots, req.Time) {
		return nil, fmt.Errorf("slot %q is not offered: %w", req.Time, apperrors.ErrValidation)
	}
	if !containsString(exp.Dates, req.Date) {
		return nil, fmt.Errorf("date %q is not offered: %w", req.Date, apperrors.ErrValidation)
	}

	booking := &models.Booking{
		ID:           uuid.New().String(),
		ExperienceID: exp.ID,
		Title:        exp.Title,
		Category:     exp.Category,
		Time:         req.Time,
		Date:         req.Date,
		Price:        exp.Price,
		GuestName:    req.GuestName,
		GuestPhone:   req.GuestPhone,
		HostPhone:    exp.HostPhone,
		UserID:       userID,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	chatURL := s.whatsapp.ConfirmationURL(exp.HostPhone, req.GuestName, exp.Title, req.Date, req.Time)

	event := models.BookingCreatedEvent{
		BookingID:    booking.ID,
		ExperienceID: booking.ExperienceID,
		UserID:       userID,
		Date:         booking.Date,
		Time:         booking.Time,
		Timestamp:    time.Now(),
	}
	if err := s.nats.Publish(models.EventBookingCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", models.EventBookingCreated)
	}

	if s.contacts != nil {
		if err := s.contacts.SetPrefill(ctx, userID, req.GuestName, req.GuestPhone); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache contact prefill",
				"error", err,
				"user_id", userID)
		}
	}

	return &models.CreateBookingResponse{
		Booking: *booking,
		ChatURL: chatURL,
	}, nil
}

// resolveExperience finds the experience to book against, materializing a
// seed-only entry as a remote row first so slot accounting has a row to
// lock.
func (s *BookingService) resolveExperience(ctx context.Context, id string) (*models.Experience, error) {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}
	if exp != nil {
		return exp, nil
	}

	seedCopy := findSeed(s.seedCatalog, id)
	if seedCopy == nil {
		return nil, fmt.Errorf("experience %s: %w", id, apperrors.ErrNotFound)
	}

	if err := s.experiences.EnsureExists(ctx, seedCopy); err != nil {
		return nil, fmt.Errorf("failed to materialize seed experience: %w", err)
	}
	return seedCopy, nil
}

func (s *BookingService) List(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.bookings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

func containsSlot(slots []models.Slot, timeLabel string) bool {
	for _, slot := range slots {
		if slot.Time == timeLabel {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

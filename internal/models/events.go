package models

import "time"

// NATS Event Types
const (
	EventExperienceCreated = "experience.created"
	EventExperienceDeleted = "experience.deleted"
	EventBookingCreated    = "booking.created"
	EventBookingRated      = "booking.rated"
	EventReminderSent      = "reminder.sent"
)

// ExperienceCreatedEvent represents a catalog write
type ExperienceCreatedEvent struct {
	ExperienceID string    `json:"experience_id"`
	OwnerUID     string    `json:"owner_uid"`
	Timestamp    time.Time `json:"timestamp"`
}

// ExperienceDeletedEvent represents a catalog deletion by its owner
type ExperienceDeletedEvent struct {
	ExperienceID string    `json:"experience_id"`
	OwnerUID     string    `json:"owner_uid"`
	Timestamp    time.Time `json:"timestamp"`
}

// BookingCreatedEvent represents a booking creation event
type BookingCreatedEvent struct {
	BookingID    string    `json:"booking_id"`
	ExperienceID string    `json:"experience_id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Timestamp    time.Time `json:"timestamp"`
}

// BookingRatedEvent represents a committed rating transaction
type BookingRatedEvent struct {
	BookingID    string    `json:"booking_id"`
	ExperienceID string    `json:"experience_id"`
	Rating       int       `json:"rating"`
	Timestamp    time.Time `json:"timestamp"`
}

// ReminderSentEvent represents a confirmed reminder delivery
type ReminderSentEvent struct {
	BookingID string    `json:"booking_id"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

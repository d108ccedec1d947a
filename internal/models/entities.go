package models

import (
	"time"
)

// Experience categories served by the catalog.
const (
	CategoryAdventure = "adventure"
	CategoryComedy    = "comedy"
	CategoryWorkshop  = "workshop"
	CategoryWellness  = "wellness"
	CategoryMusic     = "music"
	CategoryFood      = "food"
)

// Slot is a bookable time-of-day option within an experience.
// Booked is maintained transactionally; a slot is sold out when Booked >= Capacity.
type Slot struct {
	Time     string `json:"time" db:"time_label"`
	Capacity int    `json:"capacity" db:"capacity"`
	Booked   int    `json:"booked" db:"booked"`
}

// Experience represents a bookable experience listing.
// AverageRating is only meaningful when TotalRatings > 0.
// CreatedAt is nil for seed-catalog entries that were never written remotely.
type Experience struct {
	ID            string     `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Category      string     `json:"category" db:"category"`
	ImageURL      string     `json:"image_url" db:"image_url"`
	Description   string     `json:"description" db:"description"`
	Price         int64      `json:"price" db:"price"`
	Slots         []Slot     `json:"slots"`
	Dates         []string   `json:"dates"`
	HostPhone     string     `json:"host_phone" db:"host_phone"`
	OwnerUID      *string    `json:"owner_uid,omitempty" db:"owner_uid"`
	AverageRating float64    `json:"average_rating" db:"average_rating"`
	TotalRatings  int        `json:"total_ratings" db:"total_ratings"`
	CreatedAt     *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Booking represents a confirmed reservation. Experience fields are a
// denormalized snapshot taken at booking time, not a join: later edits to the
// experience never change an existing booking.
type Booking struct {
	ID           string    `json:"id" db:"id"`
	ExperienceID string    `json:"experience_id" db:"experience_id"`
	Title        string    `json:"title" db:"title"`
	Category     string    `json:"category" db:"category"`
	Time         string    `json:"time" db:"time_label"`
	Date         string    `json:"date" db:"date_label"`
	Price        int64     `json:"price" db:"price"`
	GuestName    string    `json:"guest_name" db:"guest_name"`
	GuestPhone   string    `json:"guest_phone" db:"guest_phone"`
	HostPhone    string    `json:"host_phone" db:"host_phone"`
	UserID       string    `json:"user_id" db:"user_id"`
	Rating       *int      `json:"rating,omitempty" db:"rating"`
	ReminderSent bool      `json:"reminder_sent" db:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// User roles. Admin is derived solely from the configured admin email.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the system
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	EmailOptIn   bool      `json:"email_opt_in" db:"email_opt_in"`
	SMSOptIn     bool      `json:"sms_opt_in" db:"sms_opt_in"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// AIRecommendation is the model's answer to a mood query. SuggestedEventIDs is
// model-determined ranking: consumers must preserve its order and treat ids
// that are not in the current catalog as matching nothing.
type AIRecommendation struct {
	Reasoning         string   `json:"reasoning"`
	SuggestedEventIDs []string `json:"suggestedEventIds"`

	// FromModel reports whether a live model produced the answer, as opposed
	// to the canned fallback. Not part of the wire format.
	FromModel bool `json:"-"`
}

package models

// SaveExperienceRequest - request body for creating or updating a listing
type SaveExperienceRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"min=0"`
	Slots       []Slot   `json:"slots" binding:"required,min=1"`
	Dates       []string `json:"dates" binding:"required,min=1"`
	HostPhone   string   `json:"host_phone" binding:"required"`
}

// SaveExperienceResponse - response body after an upsert
type SaveExperienceResponse struct {
	ID string `json:"id"`
}

// ListExperiencesResponse - merged catalog, remote records first
type ListExperiencesResponse struct {
	Experiences []Experience `json:"experiences"`
}

// RecommendRequest - mood query for the recommendation engine
type RecommendRequest struct {
	Mood string `json:"mood" binding:"required"`
}

// CreateBookingRequest - request body for booking a slot
type CreateBookingRequest struct {
	ExperienceID string `json:"experience_id" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Date         string `json:"date" binding:"required"`
	GuestName    string `json:"guest_name" binding:"required"`
	GuestPhone   string `json:"guest_phone" binding:"required"`
}

// CreateBookingResponse returns the persisted booking and the messaging
// hand-off link the client is expected to open. The two are sequential, not
// transactional: the booking exists even if the client never follows the link.
type CreateBookingResponse struct {
	Booking Booking `json:"booking"`
	ChatURL string  `json:"chat_url"`
}

// ListBookingsResponse - bookings owned by the authenticated user
type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

// RateBookingRequest - attach a rating to a booking
type RateBookingRequest struct {
	BookingID    string `json:"booking_id" binding:"required"`
	ExperienceID string `json:"experience_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
}

// FavoritesResponse - favorited experience ids for the authenticated user
type FavoritesResponse struct {
	ExperienceIDs []string `json:"experience_ids"`
}

// PrefillResponse - last-used guest contact details, cache only
type PrefillResponse struct {
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
}

// NotificationPrefsRequest - notification preference flags
type NotificationPrefsRequest struct {
	EmailOptIn bool `json:"email_opt_in"`
	SMSOptIn   bool `json:"sms_opt_in"`
}

// NotificationPrefsResponse mirrors the stored flags
type NotificationPrefsResponse struct {
	EmailOptIn bool `json:"email_opt_in"`
	SMSOptIn   bool `json:"sms_opt_in"`
}

// RegisterUserRequest - request body for account creation
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse - public view of an account
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

package repository

import (
	"anubhav/internal/database"
)

type Repositories struct {
	Experiences *ExperienceRepository
	Bookings    *BookingRepository
	Users       *UserRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Experiences: NewExperienceRepository(db),
		Bookings:    NewBookingRepository(db),
		Users:       NewUserRepository(db),
	}
}

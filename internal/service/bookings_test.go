package service

import (
	"context"
	"testing"

	"anubhav/internal/apperrors"
	"anubhav/internal/external"
	"anubhav/internal/models"

	"github.com/stretchr/testify/assert"
)

func testWhatsApp() *external.WhatsAppLink {
	return external.NewWhatsAppLink(external.WhatsAppConfig{Host: "wa.me", CountryCode: "91"})
}

func bookable() models.Experience {
	return models.Experience{
		ID:        "exp-1",
		Title:     "Pottery Basics",
		Category:  models.CategoryWorkshop,
		Price:     900,
		Slots:     []models.Slot{{Time: "11 AM", Capacity: 6}, {Time: "4 PM", Capacity: 6}},
		Dates:     []string{"2026-09-05", "2026-09-06"},
		HostPhone: "9876543210",
	}
}

func TestCreateBookingRequiresGuestContact(t *testing.T) {
	svc := NewBookingService(&fakeBookingStore{}, newFakeExperienceStore(bookable()), nil, &fakePublisher{}, nil, testWhatsApp())

	cases := []models.CreateBookingRequest{
		{ExperienceID: "exp-1", Time: "11 AM", Date: "2026-09-05", GuestName: "", GuestPhone: "9876543210"},
		{ExperienceID: "exp-1", Time: "11 AM", Date: "2026-09-05", GuestName: "Asha", GuestPhone: "  "},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), &req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestCreateBookingRejectsUnofferedSlotOrDate(t *testing.T) {
	svc := NewBookingService(&fakeBookingStore{}, newFakeExperienceStore(bookable()), nil, &fakePublisher{}, nil, testWhatsApp())

	_, err := svc.Create(context.Background(), &models.CreateBookingRequest{
		ExperienceID: "exp-1", Time: "9 PM", Date: "2026-09-05",
		GuestName: "Asha", GuestPhone: "9876543210",
	}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(context.Background(), &models.CreateBookingRequest{
		ExperienceID: "exp-1", Time: "11 AM", Date: "2026-12-31",
		GuestName: "Asha", GuestPhone: "9876543210",
	}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateBookingUnknownExperience(t *testing.T) {
	svc := NewBookingService(&fakeBookingStore{}, newFakeExperienceStore(), nil, &fakePublisher{}, nil, testWhatsApp())

	_, err := svc.Create(context.Background(), &models.CreateBookingRequest{
		ExperienceID: "nope", Time: "11 AM", Date: "2026-09-05",
		GuestName: "Asha", GuestPhone: "9876543210",
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateBookingSnapshotsExperience(t *testing.T) {
	store := newFakeExperienceStore(bookable())
	bookings := &fakeBookingStore{}
	publisher := &fakePublisher{}
	contacts := &fakeContactCache{}
	svc := NewBookingService(bookings, store, nil, publisher, contacts, testWhatsApp())

	resp, err := svc.Create(context.Background(), &models.CreateBookingRequest{
		ExperienceID: "exp-1", Time: "11 AM", Date: "2026-09-05",
		GuestName: "Asha", GuestPhone: "9876543210",
	}, "user-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Booking.ID)
	assert.Equal(t, "Pottery Basics", resp.Booking.Title)
	assert.Equal(t, int64(900), resp.Booking.Price)
	assert.Equal(t, "9876543210", resp.Booking.HostPhone)
	assert.Contains(t, resp.ChatURL, "https://wa.me/919876543210")
	assert.Contains(t, publisher.subjects, models.EventBookingCreated)
	assert.Equal(t, "Asha", contacts.name)

	// A later catalog edit must not leak into the stored booking
	edited := bookable()
	edited.Title = "Pottery Masterclass"
	edited.Price = 4000
	assert.NoError(t, store.Upsert(context.Background(), &edited))

	stored, _ := bookings.GetByID(context.Background(), resp.Booking.ID)
	assert.Equal(t, "Pottery Basics", stored.Title)
	assert.Equal(t, int64(900), stored.Price)
}

func TestCreateBookingMaterializesSeedExperience(t *testing.T) {
	seedCatalog := []models.Experience{bookable()}
	store := newFakeExperienceStore()
	svc := NewBookingService(&fakeBookingStore{}, store, seedCatalog, &fakePublisher{}, nil, testWhatsApp())

	resp, err := svc.Create(context.Background(), &models.CreateBookingRequest{
		ExperienceID: "exp-1", Time: "4 PM", Date: "2026-09-06",
		GuestName: "Ravi", GuestPhone: "9812345678",
	}, "user-2")

	assert.NoError(t, err)
	assert.Equal(t, "exp-1", resp.Booking.ExperienceID)
	assert.Equal(t, []string{"exp-1"}, store.ensured, "seed entry must be materialized before booking")
}

func TestCreateBookingStoreFailureMeansNoChatURL(t *testing.T) {
	bookings := &fakeBookingStore{err: apperrors.ErrSoldOut}
	svc := NewBookingService(bookings, newFakeExperienceStore(bookable()), nil, &fakePublisher{}, nil, testWhatsApp())

	resp, err := svc.Create(context.Background(), &models.CreateBookingRequest{
		ExperienceID: "exp-1", Time: "11 AM", Date: "2026-09-05",
		GuestName: "Asha", GuestPhone: "9876543210",
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrSoldOut)
	assert.Nil(t, resp)
}

func TestListBookingsScopedToUser(t *testing.T) {
	bookings := &fakeBookingStore{bookings: []models.Booking{
		{ID: "b1", UserID: "user-1"},
		{ID: "b2", UserID: "user-2"},
		{ID: "b3", UserID: "user-1"},
	}}
	svc := NewBookingService(bookings, newFakeExperienceStore(), nil, &fakePublisher{}, nil, testWhatsApp())

	result, err := svc.List(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"anubhav/internal/apperrors"
	"anubhav/internal/external"
	"anubhav/internal/models"
	"anubhav/internal/seed"
	"anubhav/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// unavailableStore simulates a catalog store that cannot be reached, which
// forces the seed fallback everywhere.
type unavailableStore struct{}

func (unavailableStore) List(ctx context.Context) ([]models.Experience, error) {
	return nil, fmt.Errorf("read catalog: %w", apperrors.ErrUnavailable)
}

func (unavailableStore) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	return nil, nil
}

func (unavailableStore) Upsert(ctx context.Context, exp *models.Experience) error { return nil }

func (unavailableStore) EnsureExists(ctx context.Context, exp *models.Experience) error {
	return nil
}

func (unavailableStore) Delete(ctx context.Context, id, ownerID string) error { return nil }

func (unavailableStore) DeleteAny(ctx context.Context, id string) error { return nil }

func (unavailableStore) ApplyRating(ctx context.Context, bookingID, experienceID string, rating int, seedCopy *models.Experience) error {
	return nil
}

type memoryBookingStore struct {
	bookings []models.Booking
}

func (m *memoryBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *memoryBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, nil
}

func (m *memoryBookingStore) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(subject string, data interface{}) error { return nil }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	seedCatalog := seed.Experiences()
	whatsapp := external.NewWhatsAppLink(external.WhatsAppConfig{Host: "wa.me", CountryCode: "91"})

	services := &service.Services{
		Catalog:         service.NewCatalogService(unavailableStore{}, seedCatalog, nil, noopPublisher{}),
		Recommendations: service.NewRecommendationService(nil),
		Bookings:        service.NewBookingService(&memoryBookingStore{}, unavailableStore{}, seedCatalog, noopPublisher{}, nil, whatsapp),
		Ratings:         service.NewRatingService(unavailableStore{}, seedCatalog, noopPublisher{}),
	}

	h := NewHandlers(services, nil, nil, "admin@anubhav.app")

	r := gin.New()

	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})
	{
		api.GET("/experiences", h.ListExperiences)
		api.GET("/experiences/:id", h.GetExperience)
		api.POST("/recommendations", h.Recommend)
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings", h.ListBookings)
		api.GET("/favorites", h.ListFavorites)
		api.GET("/profile/prefill", h.GetPrefill)
	}

	return r
}

func TestListExperiencesServesSeedFallback(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/experiences", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.ListExperiencesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Experiences, len(seed.Experiences()))
}

func TestGetExperienceNotFound(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/experiences/ghost-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendEmptyMoodIsBadRequest(t *testing.T) {
	r := setupRouter()

	jsonBody, _ := json.Marshal(models.RecommendRequest{Mood: "   "})
	req, _ := http.NewRequest("POST", "/api/recommendations", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendReturnsFallbackSuggestions(t *testing.T) {
	r := setupRouter()

	jsonBody, _ := json.Marshal(models.RecommendRequest{Mood: "want to smash something"})
	req, _ := http.NewRequest("POST", "/api/recommendations", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.AIRecommendation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.SuggestedEventIDs, 3)
	assert.NotEmpty(t, response.Reasoning)
}

func TestCreateBookingReturnsChatURL(t *testing.T) {
	r := setupRouter()

	exp := seed.Experiences()[0]
	reqBody := models.CreateBookingRequest{
		ExperienceID: exp.ID,
		Time:         exp.Slots[0].Time,
		Date:         exp.Dates[0],
		GuestName:    "Asha",
		GuestPhone:   "9876543210",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.CreateBookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Booking.ID)
	assert.Equal(t, exp.Title, response.Booking.Title)
	assert.Contains(t, response.ChatURL, "https://wa.me/")
}

func TestCreateBookingMissingFieldsIsBadRequest(t *testing.T) {
	r := setupRouter()

	jsonBody, _ := json.Marshal(models.CreateBookingRequest{ExperienceID: "x"})
	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFavoritesWithoutCacheIsEmpty(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/favorites", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.FavoritesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.ExperienceIDs)
}

func TestGetPrefillWithoutCacheIsBlank(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/profile/prefill", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.PrefillResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.GuestName)
	assert.Empty(t, response.GuestPhone)
}

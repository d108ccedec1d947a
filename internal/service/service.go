package service

import (
	"context"

	"anubhav/internal/cache"
	"anubhav/internal/external"
	"anubhav/internal/messaging"
	"anubhav/internal/models"
	"anubhav/internal/repository"
	"anubhav/internal/search"
)

// The stores and collaborators are consumed through small interfaces so each
// service can be wired with fakes; the constructed clients are passed in at
// startup instead of living in package-level singletons.

type ExperienceStore interface {
	List(ctx context.Context) ([]models.Experience, error)
	GetByID(ctx context.Context, id string) (*models.Experience, error)
	Upsert(ctx context.Context, exp *models.Experience) error
	EnsureExists(ctx context.Context, exp *models.Experience) error
	Delete(ctx context.Context, id, ownerID string) error
	DeleteAny(ctx context.Context, id string) error
	ApplyRating(ctx context.Context, bookingID, experienceID string, rating int, seedCopy *models.Experience) error
}

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
}

// Generator is the single round trip to the generative model. A nil
// Generator is the degraded mode: the engine answers from the catalog alone.
type Generator interface {
	Recommend(ctx context.Context, mood string, events []models.Experience) (*models.AIRecommendation, error)
}

type Publisher interface {
	Publish(subject string, data interface{}) error
}

// ContactCache remembers last-used guest contact details for prefill.
// It is never a source of truth.
type ContactCache interface {
	SetPrefill(ctx context.Context, userID, guestName, guestPhone string) error
}

type Searcher interface {
	Index(ctx context.Context, exp *models.Experience) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query, category string) ([]string, error)
}

type Services struct {
	Catalog         *CatalogService
	Recommendations *RecommendationService
	Bookings        *BookingService
	Ratings         *RatingService
}

func NewServices(
	repos *repository.Repositories,
	natsClient *messaging.NATSClient,
	redisClient *cache.RedisClient,
	esClient *search.ElasticsearchClient,
	generator Generator,
	whatsapp *external.WhatsAppLink,
	seedCatalog []models.Experience,
) *Services {
	// Optional collaborators are checked on the concrete type before they
	// become interface values, so a nil client stays a nil interface.
	var searcher Searcher
	if esClient != nil {
		searcher = esClient
	}
	var contacts ContactCache
	if redisClient != nil {
		contacts = redisClient
	}

	catalog := NewCatalogService(repos.Experiences, seedCatalog, searcher, natsClient)
	recommendations := NewRecommendationService(generator)
	bookings := NewBookingService(repos.Bookings, repos.Experiences, seedCatalog, natsClient, contacts, whatsapp)
	ratings := NewRatingService(repos.Experiences, seedCatalog, natsClient)

	return &Services{
		Catalog:         catalog,
		Recommendations: recommendations,
		Bookings:        bookings,
		Ratings:         ratings,
	}
}

// findSeed returns the seed-catalog entry for id, or nil.
func findSeed(seedCatalog []models.Experience, id string) *models.Experience {
	for i := range seedCatalog {
		if seedCatalog[i].ID == id {
			copy := seedCatalog[i]
			return &copy
		}
	}
	return nil
}

package service

import (
	"context"
	"sync"

	"anubhav/internal/apperrors"
	"anubhav/internal/models"
)

// Fakes shared across the service tests.

type fakeExperienceStore struct {
	mu          sync.Mutex
	experiences map[string]*models.Experience
	listErr     error
	getErr      error
	ensured     []string
	ratings     []int
}

func newFakeExperienceStore(experiences ...models.Experience) *fakeExperienceStore {
	store := &fakeExperienceStore{experiences: make(map[string]*models.Experience)}
	for i := range experiences {
		exp := experiences[i]
		store.experiences[exp.ID] = &exp
	}
	return store
}

func (f *fakeExperienceStore) List(ctx context.Context) ([]models.Experience, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Experience
	for _, exp := range f.experiences {
		out = append(out, *exp)
	}
	return out, nil
}

func (f *fakeExperienceStore) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	exp, ok := f.experiences[id]
	if !ok {
		return nil, nil
	}
	copied := *exp
	return &copied, nil
}

func (f *fakeExperienceStore) Upsert(ctx context.Context, exp *models.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *exp
	f.experiences[exp.ID] = &copied
	return nil
}

func (f *fakeExperienceStore) EnsureExists(ctx context.Context, exp *models.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensured = append(f.ensured, exp.ID)
	if _, ok := f.experiences[exp.ID]; !ok {
		copied := *exp
		f.experiences[exp.ID] = &copied
	}
	return nil
}

func (f *fakeExperienceStore) Delete(ctx context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	exp, ok := f.experiences[id]
	if !ok || exp.OwnerUID == nil || *exp.OwnerUID != ownerID {
		return nil
	}
	delete(f.experiences, id)
	return nil
}

func (f *fakeExperienceStore) DeleteAny(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.experiences, id)
	return nil
}

// ApplyRating mirrors the transactional store contract: seed the row when
// missing, then fold the rating into the running mean.
func (f *fakeExperienceStore) ApplyRating(ctx context.Context, bookingID, experienceID string, rating int, seedCopy *models.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	exp, ok := f.experiences[experienceID]
	if !ok {
		if seedCopy == nil {
			return apperrors.ErrNotFound
		}
		copied := *seedCopy
		f.experiences[experienceID] = &copied
		exp = f.experiences[experienceID]
	}

	newCount := exp.TotalRatings + 1
	exp.AverageRating = (exp.AverageRating*float64(exp.TotalRatings) + float64(rating)) / float64(newCount)
	exp.TotalRatings = newCount
	f.ratings = append(f.ratings, rating)
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []models.Booking
	err      error
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			copied := f.bookings[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return nil
}

type fakeContactCache struct {
	userID string
	name   string
	phone  string
}

func (f *fakeContactCache) SetPrefill(ctx context.Context, userID, guestName, guestPhone string) error {
	f.userID = userID
	f.name = guestName
	f.phone = guestPhone
	return nil
}

type fakeGenerator struct {
	rec *models.AIRecommendation
	err error
}

func (f *fakeGenerator) Recommend(ctx context.Context, mood string, events []models.Experience) (*models.AIRecommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.rec
	return &copied, nil
}

type fakeSearcher struct {
	ids []string
	err error
}

func (f *fakeSearcher) Index(ctx context.Context, exp *models.Experience) error { return nil }

func (f *fakeSearcher) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeSearcher) Search(ctx context.Context, query, category string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

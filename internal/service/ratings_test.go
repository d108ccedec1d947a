package service

import (
	"context"
	"testing"

	"anubhav/internal/apperrors"
	"anubhav/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRateRejectsOutOfRange(t *testing.T) {
	svc := NewRatingService(newFakeExperienceStore(bookable()), nil, &fakePublisher{})

	for _, rating := range []int{0, -1, 6, 100} {
		err := svc.Rate(context.Background(), "b1", "exp-1", rating)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "rating %d", rating)
	}
}

func TestRateUpdatesRunningAverage(t *testing.T) {
	store := newFakeExperienceStore(bookable())
	svc := NewRatingService(store, nil, &fakePublisher{})

	for _, rating := range []int{4, 5, 3} {
		assert.NoError(t, svc.Rate(context.Background(), "b1", "exp-1", rating))
	}

	exp, _ := store.GetByID(context.Background(), "exp-1")
	assert.Equal(t, 3, exp.TotalRatings)
	assert.InDelta(t, 4.0, exp.AverageRating, 1e-9)
}

func TestRateOrderIndependentAverage(t *testing.T) {
	first := newFakeExperienceStore(bookable())
	second := newFakeExperienceStore(bookable())
	svcA := NewRatingService(first, nil, &fakePublisher{})
	svcB := NewRatingService(second, nil, &fakePublisher{})

	for _, rating := range []int{4, 5, 3} {
		assert.NoError(t, svcA.Rate(context.Background(), "b1", "exp-1", rating))
	}
	for _, rating := range []int{5, 3, 4} {
		assert.NoError(t, svcB.Rate(context.Background(), "b1", "exp-1", rating))
	}

	expA, _ := first.GetByID(context.Background(), "exp-1")
	expB, _ := second.GetByID(context.Background(), "exp-1")
	assert.InDelta(t, expA.AverageRating, expB.AverageRating, 1e-9)
	assert.Equal(t, expA.TotalRatings, expB.TotalRatings)
}

func TestRateSeedsMissingExperience(t *testing.T) {
	seedCatalog := []models.Experience{bookable()}
	store := newFakeExperienceStore()
	svc := NewRatingService(store, seedCatalog, &fakePublisher{})

	assert.NoError(t, svc.Rate(context.Background(), "b1", "exp-1", 5))

	exp, _ := store.GetByID(context.Background(), "exp-1")
	assert.NotNil(t, exp)
	assert.Equal(t, 1, exp.TotalRatings)
	assert.InDelta(t, 5.0, exp.AverageRating, 1e-9)
}

func TestRateUnknownExperienceAndNoSeed(t *testing.T) {
	svc := NewRatingService(newFakeExperienceStore(), nil, &fakePublisher{})

	err := svc.Rate(context.Background(), "b1", "ghost", 4)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRatePublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewRatingService(newFakeExperienceStore(bookable()), nil, publisher)

	assert.NoError(t, svc.Rate(context.Background(), "b1", "exp-1", 4))

	assert.Contains(t, publisher.subjects, models.EventBookingRated)
}

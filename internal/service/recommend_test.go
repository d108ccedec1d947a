package service

import (
	"context"
	"fmt"
	"testing"

	"anubhav/internal/apperrors"
	"anubhav/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRecommendRejectsEmptyMood(t *testing.T) {
	svc := NewRecommendationService(nil)

	for _, mood := range []string{"", "   ", "\n\t"} {
		_, err := svc.Recommend(context.Background(), mood, testSeed())
		assert.ErrorIs(t, err, apperrors.ErrEmptyMood, "mood %q", mood)
	}
}

func TestRecommendWithoutGeneratorUsesCannedFallback(t *testing.T) {
	svc := NewRecommendationService(nil)

	rec, err := svc.Recommend(context.Background(), "something chill", testSeed())

	assert.NoError(t, err)
	assert.False(t, rec.FromModel)
	assert.Equal(t, []string{"seed-a", "seed-b", "seed-c"}, rec.SuggestedEventIDs)
	assert.Equal(t, cannedRationale, rec.Reasoning)
}

func TestRecommendFallbackWithShortCatalog(t *testing.T) {
	svc := NewRecommendationService(nil)
	catalog := testSeed()[:1]

	rec, err := svc.Recommend(context.Background(), "anything", catalog)

	assert.NoError(t, err)
	assert.Equal(t, []string{"seed-a"}, rec.SuggestedEventIDs)
}

func TestRecommendDegradesOnGeneratorError(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("model timeout")}
	svc := NewRecommendationService(generator)

	rec, err := svc.Recommend(context.Background(), "need an adrenaline hit", testSeed())

	assert.NoError(t, err, "model trouble must never surface as an error")
	assert.False(t, rec.FromModel)
	assert.Equal(t, degradedRationale, rec.Reasoning)
	assert.Equal(t, []string{"seed-a", "seed-b", "seed-c"}, rec.SuggestedEventIDs)
}

func TestRecommendPassesThroughModelAnswer(t *testing.T) {
	generator := &fakeGenerator{rec: &models.AIRecommendation{
		Reasoning:         "Loud and live fits the mood.",
		SuggestedEventIDs: []string{"seed-b", "unknown-id"},
	}}
	svc := NewRecommendationService(generator)

	rec, err := svc.Recommend(context.Background(), "want live music", testSeed())

	assert.NoError(t, err)
	assert.True(t, rec.FromModel)
	// Unknown ids survive; resolving them is the caller's concern
	assert.Equal(t, []string{"seed-b", "unknown-id"}, rec.SuggestedEventIDs)
}

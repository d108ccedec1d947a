package service

import (
	"context"
	"strings"

	"anubhav/internal/apperrors"
	"anubhav/internal/logger"
	"anubhav/internal/models"
)

const fallbackSuggestionCount = 3

// Rationales for the two ways the engine answers without a model round trip.
// The wording differs so logs can tell a configured-but-failing model from a
// deliberately credential-less deployment.
const (
	cannedRationale   = "Here are a few crowd favourites to get you started."
	degradedRationale = "Our mood engine is taking a breather, so here are some picks that rarely miss."
)

// RecommendationService turns a free-text mood into a ranked subset of the
// catalog. From the caller's perspective the operation is total for every
// non-empty mood: model trouble of any kind degrades to a deterministic
// catalog-order fallback instead of an error.
type RecommendationService struct {
	generator Generator
}

func NewRecommendationService(generator Generator) *RecommendationService {
	return &RecommendationService{generator: generator}
}

// Recommend answers a mood query against the given catalog. An empty mood is
// the one input that short-circuits to "no recommendation"; it is never
// silently folded into the fallback path.
func (s *RecommendationService) Recommend(ctx context.Context, mood string, events []models.Experience) (*models.AIRecommendation, error) {
	if strings.TrimSpace(mood) == "" {
		return nil, apperrors.ErrEmptyMood
	}

	if s.generator == nil {
		return s.fallback(events, cannedRationale), nil
	}

	rec, err := s.generator.Recommend(ctx, mood, events)
	if err != nil {
		logger.WithContext(ctx).Warn("Model recommendation failed, using fallback",
			"error", err,
			"mood_length", len(mood))
		return s.fallback(events, degradedRationale), nil
	}

	// Suggested ids that are not in the catalog are passed through: the
	// presentation layer treats unknown ids as matching nothing.
	rec.FromModel = true
	return rec, nil
}

// fallback returns the leading catalog entries in catalog order.
func (s *RecommendationService) fallback(events []models.Experience, rationale string) *models.AIRecommendation {
	count := fallbackSuggestionCount
	if len(events) < count {
		count = len(events)
	}

	ids := make([]string, 0, count)
	for _, exp := range events[:count] {
		ids = append(ids, exp.ID)
	}

	return &models.AIRecommendation{
		Reasoning:         rationale,
		SuggestedEventIDs: ids,
	}
}

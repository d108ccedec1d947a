package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anubhav/internal/apperrors"
	"anubhav/internal/logger"
	"anubhav/internal/models"

	"github.com/google/uuid"
)

type CatalogService struct {
	store       ExperienceStore
	seedCatalog []models.Experience
	searcher    Searcher
	nats        Publisher
}

func NewCatalogService(store ExperienceStore, seedCatalog []models.Experience, searcher Searcher, nats Publisher) *CatalogService {
	return &CatalogService{
		store:       store,
		seedCatalog: seedCatalog,
		searcher:    searcher,
		nats:        nats,
	}
}

// MergeCatalog unions remote records with the seed catalog. Remote records
// come first and win on overlapping ids; seed entries without a remote
// counterpart are appended in their original seed order. The seed slice is
// never mutated.
func MergeCatalog(remote, seed []models.Experience) []models.Experience {
	if len(remote) == 0 {
		return seed
	}

	seen := make(map[string]struct{}, len(remote))
	merged := make([]models.Experience, 0, len(remote)+len(seed))
	for _, exp := range remote {
		seen[exp.ID] = struct{}{}
		merged = append(merged, exp)
	}
	for _, exp := range seed {
		if _, ok := seen[exp.ID]; !ok {
			merged = append(merged, exp)
		}
	}
	return merged
}

// List returns the merged catalog. The store signals faults explicitly and
// this is the mandated fallback point: an unavailable or empty remote store
// degrades to the seed catalog verbatim, never to an error.
func (s *CatalogService) List(ctx context.Context) []models.Experience {
	remote, err := s.store.List(ctx)
	if err != nil {
		logger.WithContext(ctx).Warn("Catalog store unavailable, serving seed catalog", "error", err)
		return s.seedCatalog
	}
	if len(remote) == 0 {
		return s.seedCatalog
	}
	return MergeCatalog(remote, s.seedCatalog)
}

// Search filters the merged catalog by a free-text query. Elasticsearch
// ranks when it is configured and reachable; otherwise a substring scan over
// the merged catalog keeps the endpoint total.
func (s *CatalogService) Search(ctx context.Context, query, category string) []models.Experience {
	merged := s.List(ctx)

	if category != "" && query == "" {
		return filterByCategory(merged, category)
	}
	if query == "" {
		return merged
	}

	if s.searcher != nil {
		ids, err := s.searcher.Search(ctx, query, category)
		if err == nil {
			byID := make(map[string]models.Experience, len(merged))
			for _, exp := range merged {
				byID[exp.ID] = exp
			}
			var ranked []models.Experience
			for _, id := range ids {
				if exp, ok := byID[id]; ok {
					ranked = append(ranked, exp)
				}
			}
			return ranked
		}
		logger.WithContext(ctx).Warn("Search index unavailable, falling back to substring filter", "error", err)
	}

	needle := strings.ToLower(query)
	var filtered []models.Experience
	for _, exp := range merged {
		if category != "" && exp.Category != category {
			continue
		}
		haystack := strings.ToLower(exp.Title + " " + exp.Description + " " + exp.Category)
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, exp)
		}
	}
	return filtered
}

func filterByCategory(experiences []models.Experience, category string) []models.Experience {
	var filtered []models.Experience
	for _, exp := range experiences {
		if exp.Category == category {
			filtered = append(filtered, exp)
		}
	}
	return filtered
}

// Save upserts a listing on behalf of ownerID. Owner and creation time are
// stamped only when absent; the search index and the created event are best
// effort.
func (s *CatalogService) Save(ctx context.Context, req *models.SaveExperienceRequest, ownerID string) (*models.Experience, error) {
	if !validCategory(req.Category) {
		return nil, fmt.Errorf("category %q: %w", req.Category, apperrors.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative: %w", apperrors.ErrValidation)
	}
	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("at least one slot is required: %w", apperrors.ErrValidation)
	}

	exp := &models.Experience{
		ID:          req.ID,
		Title:       req.Title,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Price:       req.Price,
		Slots:       req.Slots,
		Dates:       req.Dates,
		HostPhone:   req.HostPhone,
		OwnerUID:    &ownerID,
	}
	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}

	if err := s.store.Upsert(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to save experience: %w", err)
	}

	if s.searcher != nil {
		if err := s.searcher.Index(ctx, exp); err != nil {
			logger.WithContext(ctx).Error("Failed to index experience",
				"error", err,
				"experience_id", exp.ID)
		}
	}

	event := models.ExperienceCreatedEvent{
		ExperienceID: exp.ID,
		OwnerUID:     ownerID,
		Timestamp:    time.Now(),
	}
	if err := s.nats.Publish(models.EventExperienceCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish experience created event",
			"error", err,
			"experience_id", exp.ID,
			"event_type", models.EventExperienceCreated)
	}

	return exp, nil
}

// Delete removes a listing when callerID owns it. A mismatched owner or a
// missing record is a silent no-op, indistinguishable from success.
func (s *CatalogService) Delete(ctx context.Context, id, callerID string) error {
	if err := s.store.Delete(ctx, id, callerID); err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}

	if s.searcher != nil {
		if err := s.searcher.Delete(ctx, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove experience from index",
				"error", err,
				"experience_id", id)
		}
	}

	event := models.ExperienceDeletedEvent{
		ExperienceID: id,
		OwnerUID:     callerID,
		Timestamp:    time.Now(),
	}
	if err := s.nats.Publish(models.EventExperienceDeleted, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish experience deleted event",
			"error", err,
			"experience_id", id,
			"event_type", models.EventExperienceDeleted)
	}

	return nil
}

// AdminDelete removes a listing without an ownership check.
func (s *CatalogService) AdminDelete(ctx context.Context, id string) error {
	if err := s.store.DeleteAny(ctx, id); err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}

	if s.searcher != nil {
		if err := s.searcher.Delete(ctx, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove experience from index",
				"error", err,
				"experience_id", id)
		}
	}

	event := models.ExperienceDeletedEvent{
		ExperienceID: id,
		Timestamp:    time.Now(),
	}
	if err := s.nats.Publish(models.EventExperienceDeleted, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish experience deleted event",
			"error", err,
			"experience_id", id,
			"event_type", models.EventExperienceDeleted)
	}

	return nil
}

func validCategory(category string) bool {
	switch category {
	case models.CategoryAdventure, models.CategoryComedy, models.CategoryWorkshop,
		models.CategoryWellness, models.CategoryMusic, models.CategoryFood:
		return true
	}
	return false
}

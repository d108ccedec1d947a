package service

import (
	"context"
	"fmt"
	"testing"

	"anubhav/internal/apperrors"
	"anubhav/internal/models"
	"anubhav/internal/seed"

	"github.com/stretchr/testify/assert"
)

func testSeed() []models.Experience {
	return []models.Experience{
		{ID: "seed-a", Title: "Pottery Basics", Category: models.CategoryWorkshop, Price: 900},
		{ID: "seed-b", Title: "Rooftop Gig", Category: models.CategoryMusic, Price: 500},
		{ID: "seed-c", Title: "Food Crawl", Category: models.CategoryFood, Price: 700},
	}
}

func TestMergeCatalogEmptyRemote(t *testing.T) {
	seedCatalog := testSeed()

	merged := MergeCatalog(nil, seedCatalog)

	assert.Equal(t, seedCatalog, merged)
}

func TestMergeCatalogRemoteWinsOnOverlap(t *testing.T) {
	seedCatalog := testSeed()
	remote := []models.Experience{
		{ID: "seed-b", Title: "Rooftop Gig (updated)", Category: models.CategoryMusic, Price: 650},
		{ID: "remote-1", Title: "Kayak Sunrise", Category: models.CategoryAdventure},
	}

	merged := MergeCatalog(remote, seedCatalog)

	assert.Len(t, merged, 4)
	// Remote records first, in remote order
	assert.Equal(t, "seed-b", merged[0].ID)
	assert.Equal(t, "Rooftop Gig (updated)", merged[0].Title)
	assert.Equal(t, int64(650), merged[0].Price)
	assert.Equal(t, "remote-1", merged[1].ID)
	// Unmatched seed entries appended in seed order
	assert.Equal(t, "seed-a", merged[2].ID)
	assert.Equal(t, "seed-c", merged[3].ID)
}

func TestMergeCatalogDoesNotMutateSeed(t *testing.T) {
	seedCatalog := testSeed()
	remote := []models.Experience{{ID: "seed-a", Title: "Changed"}}

	MergeCatalog(remote, seedCatalog)

	assert.Equal(t, "Pottery Basics", seedCatalog[0].Title)
}

func TestListFallsBackToSeedOnStoreError(t *testing.T) {
	store := newFakeExperienceStore()
	store.listErr = fmt.Errorf("read catalog: %w", apperrors.ErrUnavailable)
	svc := NewCatalogService(store, testSeed(), nil, &fakePublisher{})

	result := svc.List(context.Background())

	assert.Equal(t, testSeed(), result)
}

func TestListFallsBackToSeedOnEmptyStore(t *testing.T) {
	svc := NewCatalogService(newFakeExperienceStore(), testSeed(), nil, &fakePublisher{})

	result := svc.List(context.Background())

	assert.Equal(t, testSeed(), result)
}

func TestSearchCategoryOnly(t *testing.T) {
	svc := NewCatalogService(newFakeExperienceStore(), testSeed(), nil, &fakePublisher{})

	result := svc.Search(context.Background(), "", models.CategoryMusic)

	assert.Len(t, result, 1)
	assert.Equal(t, "seed-b", result[0].ID)
}

func TestSearchUsesIndexRanking(t *testing.T) {
	searcher := &fakeSearcher{ids: []string{"seed-c", "seed-a", "ghost-id"}}
	svc := NewCatalogService(newFakeExperienceStore(), testSeed(), searcher, &fakePublisher{})

	result := svc.Search(context.Background(), "hands on", "")

	// Index order preserved, unknown ids dropped
	assert.Len(t, result, 2)
	assert.Equal(t, "seed-c", result[0].ID)
	assert.Equal(t, "seed-a", result[1].ID)
}

func TestSearchSubstringFallbackWhenIndexDown(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("cluster unreachable")}
	svc := NewCatalogService(newFakeExperienceStore(), testSeed(), searcher, &fakePublisher{})

	result := svc.Search(context.Background(), "pottery", "")

	assert.Len(t, result, 1)
	assert.Equal(t, "seed-a", result[0].ID)
}

func TestSaveRejectsUnknownCategory(t *testing.T) {
	svc := NewCatalogService(newFakeExperienceStore(), testSeed(), nil, &fakePublisher{})

	_, err := svc.Save(context.Background(), &models.SaveExperienceRequest{
		Title:    "Mystery Night",
		Category: "mystery",
	}, "owner-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSaveAssignsIDAndOwner(t *testing.T) {
	store := newFakeExperienceStore()
	publisher := &fakePublisher{}
	svc := NewCatalogService(store, testSeed(), nil, publisher)

	exp, err := svc.Save(context.Background(), &models.SaveExperienceRequest{
		Title:     "Kayak Sunrise",
		Category:  models.CategoryAdventure,
		Price:     1200,
		Slots:     []models.Slot{{Time: "6 AM", Capacity: 8}},
		Dates:     []string{"2026-09-05"},
		HostPhone: "9876543210",
	}, "owner-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, exp.ID)
	assert.NotNil(t, exp.OwnerUID)
	assert.Equal(t, "owner-1", *exp.OwnerUID)

	stored, _ := store.GetByID(context.Background(), exp.ID)
	assert.NotNil(t, stored)
	assert.Contains(t, publisher.subjects, models.EventExperienceCreated)
}

func TestDeleteIsSilentForNonOwner(t *testing.T) {
	owner := "owner-1"
	store := newFakeExperienceStore(models.Experience{ID: "exp-1", OwnerUID: &owner})
	svc := NewCatalogService(store, nil, nil, &fakePublisher{})

	err := svc.Delete(context.Background(), "exp-1", "someone-else")

	assert.NoError(t, err)
	stored, _ := store.GetByID(context.Background(), "exp-1")
	assert.NotNil(t, stored, "listing must survive a non-owner delete")
}

func TestDeleteRemovesOwnListing(t *testing.T) {
	owner := "owner-1"
	store := newFakeExperienceStore(models.Experience{ID: "exp-1", OwnerUID: &owner})
	publisher := &fakePublisher{}
	svc := NewCatalogService(store, nil, nil, publisher)

	err := svc.Delete(context.Background(), "exp-1", owner)

	assert.NoError(t, err)
	stored, _ := store.GetByID(context.Background(), "exp-1")
	assert.Nil(t, stored)
	assert.Contains(t, publisher.subjects, models.EventExperienceDeleted)
}

func TestSeedCatalogHasValidCategories(t *testing.T) {
	for _, exp := range seed.Experiences() {
		assert.True(t, validCategory(exp.Category), "seed %s has category %q", exp.ID, exp.Category)
		assert.NotEmpty(t, exp.Slots, "seed %s has no slots", exp.ID)
		assert.NotEmpty(t, exp.Dates, "seed %s has no dates", exp.ID)
		assert.NotEmpty(t, exp.HostPhone, "seed %s has no host phone", exp.ID)
	}
}

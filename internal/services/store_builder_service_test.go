package services_test

import (
	"testing"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBuilderService(db *gorm.DB) *services.StoreBuilderService {
	return services.NewStoreBuilderService(
		repositories.NewGORMStoreRepository(db),
		repositories.NewGORMCreatorProfileRepository(db),
		repositories.NewGORMSectionRepository(db),
		repositories.NewGORMPageRepository(db),
		repositories.NewGORMBlockRepository(db),
	)
}

func seedStore(t *testing.T, db *gorm.DB, id, creatorID, slug string) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:        id,
		CreatorID: creatorID,
		Slug:      slug,
		Name:      "Test Store",
		Type:      models.StoreLinksite,
		Status:    models.StoreActive,
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}
	return store
}

func TestStoreBuilderService_CreateSectionAppends(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "append-store")

	for i, kind := range []string{"links", "about", "gallery"} {
		section, err := service.CreateSection(store.ID, services.SectionInput{Type: kind})
		assert.NoError(t, err)
		assert.Equal(t, i, section.Position)
	}

	sections, err := service.GetSections(store.ID)
	assert.NoError(t, err)
	assert.Len(t, sections, 3)
	for i, section := range sections {
		assert.Equal(t, i, section.Position)
	}
}

func TestStoreBuilderService_CreateSection_UnknownStore(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)

	_, err := service.CreateSection("missing-store", services.SectionInput{Type: "links"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestStoreBuilderService_ReorderSections(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "reorder-store")

	var ids []string
	for _, kind := range []string{"links", "about", "gallery"} {
		section, err := service.CreateSection(store.ID, services.SectionInput{Type: kind})
		assert.NoError(t, err)
		ids = append(ids, section.ID)
	}

	// Reverse the order in one batch.
	sections, err := service.ReorderSections(store.ID, []repositories.PositionUpdate{
		{ID: ids[0], Position: 2},
		{ID: ids[1], Position: 1},
		{ID: ids[2], Position: 0},
	})
	assert.NoError(t, err)
	assert.Len(t, sections, 3)

	sections, err = service.GetSections(store.ID)
	assert.NoError(t, err)
	assert.Equal(t, ids[2], sections[0].ID)
	assert.Equal(t, ids[1], sections[1].ID)
	assert.Equal(t, ids[0], sections[2].ID)
}

func TestStoreBuilderService_ReorderSections_ForeignSectionAborts(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	storeA := seedStore(t, db, "store-a", "creator-a", "store-a")
	storeB := seedStore(t, db, "store-b", "creator-b", "store-b")

	mine, err := service.CreateSection(storeA.ID, services.SectionInput{Type: "links"})
	assert.NoError(t, err)
	theirs, err := service.CreateSection(storeB.ID, services.SectionInput{Type: "links"})
	assert.NoError(t, err)

	// One bad id fails the whole batch with no position changes.
	_, err = service.ReorderSections(storeA.ID, []repositories.PositionUpdate{
		{ID: mine.ID, Position: 5},
		{ID: theirs.ID, Position: 6},
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	sections, err := service.GetSections(storeA.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, sections[0].Position)
}

func TestStoreBuilderService_ReorderSections_UnknownIDAborts(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "unknown-id")

	section, err := service.CreateSection(store.ID, services.SectionInput{Type: "links"})
	assert.NoError(t, err)

	_, err = service.ReorderSections(store.ID, []repositories.PositionUpdate{
		{ID: section.ID, Position: 1},
		{ID: "no-such-section", Position: 0},
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	sections, err := service.GetSections(store.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, sections[0].Position)
}

func TestStoreBuilderService_Pages(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "page-store")

	page, err := service.CreatePage(store.ID, services.PageInput{Slug: "checkout", Type: "checkout"})
	assert.NoError(t, err)
	assert.Equal(t, 0, page.Position)
	assert.Equal(t, models.PageDraft, page.Status)

	// Page slugs are globally unique, even across stores.
	other := seedStore(t, db, "store-2", "creator-2", "other-store")
	_, err = service.CreatePage(other.ID, services.PageInput{Slug: "checkout", Type: "checkout"})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	updated, err := service.UpdatePage(page.ID, services.PageInput{Type: "upsell"})
	assert.NoError(t, err)
	assert.Equal(t, "upsell", updated.Type)
	assert.Equal(t, "checkout", updated.Slug)
}

func TestStoreBuilderService_Blocks(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "block-store")

	page, err := service.CreatePage(store.ID, services.PageInput{Slug: "landing", Type: "landing"})
	assert.NoError(t, err)

	first, err := service.CreateBlock(page.ID, services.BlockInput{Type: "hero"})
	assert.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	second, err := service.CreateBlock(page.ID, services.BlockInput{Type: "text"})
	assert.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	// Deleting the page takes its blocks with it.
	assert.NoError(t, service.DeletePage(page.ID))
	blocks, err := service.GetBlocks(page.ID)
	assert.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestStoreBuilderService_DeleteLeavesGaps(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "gap-store")

	var ids []string
	for _, kind := range []string{"links", "about", "gallery"} {
		section, err := service.CreateSection(store.ID, services.SectionInput{Type: kind})
		assert.NoError(t, err)
		ids = append(ids, section.ID)
	}

	// Removing the middle section does not renumber the survivors.
	assert.NoError(t, service.DeleteSection(ids[1]))
	sections, err := service.GetSections(store.ID)
	assert.NoError(t, err)
	assert.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].Position)
	assert.Equal(t, 2, sections[1].Position)

	// The next append still lands after the highest survivor.
	section, err := service.CreateSection(store.ID, services.SectionInput{Type: "faq"})
	assert.NoError(t, err)
	assert.Equal(t, 3, section.Position)
}

func TestStoreBuilderService_Theme(t *testing.T) {
	db := setupTestDB(t)
	service := newBuilderService(db)
	store := seedStore(t, db, "store-1", "creator-1", "theme-store")

	theme, err := service.UpdateTheme(store.ID, map[string]interface{}{"primary": "#ff0000"})
	assert.NoError(t, err)
	assert.Equal(t, "#ff0000", theme.Config["primary"])

	theme, err = service.UpdateTheme(store.ID, map[string]interface{}{"primary": "#00ff00"})
	assert.NoError(t, err)
	assert.Equal(t, "#00ff00", theme.Config["primary"])

	fetched, err := service.GetTheme(store.ID)
	assert.NoError(t, err)
	assert.Equal(t, "#00ff00", fetched.Config["primary"])
}

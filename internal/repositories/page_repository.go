package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageRepository defines the interface for store page access.
type PageRepository interface {
	Create(page *models.StorePage) error
	GetByID(id string) (*models.StorePage, error)
	GetBySlug(slug string) (*models.StorePage, error)
	ListByStore(storeID string) ([]models.StorePage, error)
	ListPublishedByStore(storeID string) ([]models.StorePage, error)
	NextPosition(storeID string) (int, error)
	Reorder(storeID string, moves []PositionUpdate) ([]models.StorePage, error)
	Update(page *models.StorePage) error
	Delete(id string) error
}

// GORMPageRepository is a GORM implementation of PageRepository.
type GORMPageRepository struct {
	db  *gorm.DB
	set orderedSet[models.StorePage, *models.StorePage]
}

// NewGORMPageRepository creates a new instance of GORMPageRepository.
func NewGORMPageRepository(db *gorm.DB) *GORMPageRepository {
	return &GORMPageRepository{
		db:  db,
		set: orderedSet[models.StorePage, *models.StorePage]{parentColumn: "store_id"},
	}
}

// Create inserts a new page. Page slugs are globally unique.
func (r *GORMPageRepository) Create(page *models.StorePage) error {
	if page.ID == "" {
		page.ID = uuid.New().String()
	}
	if err := r.db.Create(page).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: page slug '%s' already exists", ErrConflict, page.Slug)
		}
		return fmt.Errorf("failed to create page: %w", err)
	}
	return nil
}

// GetByID retrieves a page by its ID.
func (r *GORMPageRepository) GetByID(id string) (*models.StorePage, error) {
	var page models.StorePage
	if err := r.db.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: page %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get page %s: %w", id, err)
	}
	return &page, nil
}

// GetBySlug retrieves a page by its slug.
func (r *GORMPageRepository) GetBySlug(slug string) (*models.StorePage, error) {
	var page models.StorePage
	if err := r.db.First(&page, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: page with slug %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get page by slug %s: %w", slug, err)
	}
	return &page, nil
}

// ListByStore returns all pages of a store ordered by position.
func (r *GORMPageRepository) ListByStore(storeID string) ([]models.StorePage, error) {
	return r.set.listByParent(r.db, storeID)
}

// ListPublishedByStore returns the published pages of a store ordered by position.
func (r *GORMPageRepository) ListPublishedByStore(storeID string) ([]models.StorePage, error) {
	return r.set.listByParent(r.db.Where("status = ?", models.PagePublished), storeID)
}

// NextPosition computes the append position for a store's pages.
func (r *GORMPageRepository) NextPosition(storeID string) (int, error) {
	return r.set.nextPosition(r.db, storeID)
}

// Reorder atomically applies a batch of page position updates.
func (r *GORMPageRepository) Reorder(storeID string, moves []PositionUpdate) ([]models.StorePage, error) {
	return r.set.reorder(r.db, storeID, moves, ErrNotFound)
}

// Update persists changes to a page.
func (r *GORMPageRepository) Update(page *models.StorePage) error {
	if err := r.db.Save(page).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: page slug '%s' already exists", ErrConflict, page.Slug)
		}
		return fmt.Errorf("failed to update page %s: %w", page.ID, err)
	}
	return nil
}

// Delete removes a page together with its blocks. Remaining sibling pages
// are not renumbered.
func (r *GORMPageRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PageBlock{}, "page_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete blocks of page %s: %w", id, err)
		}
		res := tx.Delete(&models.StorePage{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete page %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: page %s", ErrNotFound, id)
		}
		return nil
	})
}

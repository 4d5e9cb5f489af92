package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository defines the interface for storefront and theme access.
type StoreRepository interface {
	WithTx(tx *gorm.DB) StoreRepository
	Create(store *models.Store) error
	GetByID(id string) (*models.Store, error)
	GetByCreator(creatorID string) (*models.Store, error)
	GetActiveBySlug(slug string) (*models.Store, error)
	Update(store *models.Store) error
	GetTheme(storeID string) (*models.StoreTheme, error)
	SaveTheme(theme *models.StoreTheme) error
}

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository that runs against tx.
func (r *GORMStoreRepository) WithTx(tx *gorm.DB) StoreRepository {
	return &GORMStoreRepository{db: tx}
}

// Create inserts a new storefront.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: store for slug '%s' already exists", ErrConflict, store.Slug)
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// GetByID retrieves a storefront by its ID.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get store %s: %w", id, err)
	}
	return &store, nil
}

// GetByCreator retrieves the storefront owned by a creator profile.
func (r *GORMStoreRepository) GetByCreator(creatorID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "creator_id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store for creator %s", ErrNotFound, creatorID)
		}
		return nil, fmt.Errorf("failed to get store for creator %s: %w", creatorID, err)
	}
	return &store, nil
}

// GetActiveBySlug retrieves an ACTIVE storefront by its public slug.
func (r *GORMStoreRepository) GetActiveBySlug(slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.First(&store, "slug = ? AND status = ?", slug, models.StoreActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store '%s'", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get store by slug %s: %w", slug, err)
	}
	return &store, nil
}

// Update persists changes to a storefront.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store %s: %w", store.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: store %s", ErrNotFound, store.ID)
	}
	return nil
}

// GetTheme retrieves the theme configuration of a store.
func (r *GORMStoreRepository) GetTheme(storeID string) (*models.StoreTheme, error) {
	var theme models.StoreTheme
	if err := r.db.First(&theme, "store_id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: theme for store %s", ErrNotFound, storeID)
		}
		return nil, fmt.Errorf("failed to get theme for store %s: %w", storeID, err)
	}
	return &theme, nil
}

// SaveTheme inserts or updates a store theme.
func (r *GORMStoreRepository) SaveTheme(theme *models.StoreTheme) error {
	if theme.ID == "" {
		theme.ID = uuid.New().String()
	}
	if err := r.db.Save(theme).Error; err != nil {
		return fmt.Errorf("failed to save theme for store %s: %w", theme.StoreID, err)
	}
	return nil
}

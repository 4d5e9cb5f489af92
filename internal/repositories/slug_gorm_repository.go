package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoreSlugRepository is a GORM implementation of StoreSlugRepository.
type GORMStoreSlugRepository struct {
	db *gorm.DB
}

// NewGORMStoreSlugRepository creates a new instance of GORMStoreSlugRepository.
func NewGORMStoreSlugRepository(db *gorm.DB) *GORMStoreSlugRepository {
	return &GORMStoreSlugRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository that runs against tx.
func (r *GORMStoreSlugRepository) WithTx(tx *gorm.DB) StoreSlugRepository {
	return &GORMStoreSlugRepository{db: tx}
}

// GetBySlug retrieves the ledger row for an exact slug value.
func (r *GORMStoreSlugRepository) GetBySlug(slug string) (*models.StoreSlug, error) {
	var row models.StoreSlug
	if err := r.db.First(&row, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: slug %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get slug %s: %w", slug, err)
	}
	return &row, nil
}

// Reserve inserts a new RESERVED row for slug. An existing row, whatever its
// state, makes the slug unavailable for reservation; under a race the unique
// index on slug is the sole arbiter and the losing insert comes back as
// ErrConflict.
func (r *GORMStoreSlugRepository) Reserve(slug string) (*models.StoreSlug, error) {
	if _, err := r.GetBySlug(slug); err == nil {
		return nil, fmt.Errorf("%w: slug '%s' already taken", ErrConflict, slug)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	row := &models.StoreSlug{
		ID:         uuid.New().String(),
		Slug:       slug,
		Status:     models.SlugReserved,
		ReservedAt: time.Now(),
	}
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug '%s' already taken", ErrConflict, slug)
		}
		return nil, fmt.Errorf("failed to reserve slug %s: %w", slug, err)
	}
	return row, nil
}

// Activate binds ownerID to the reservation and marks it ACTIVE. The owner
// is immutable for the life of the row from here on.
func (r *GORMStoreSlugRepository) Activate(reservation *models.StoreSlug, ownerID string) error {
	now := time.Now()
	reservation.CreatorID = &ownerID
	reservation.Status = models.SlugActive
	reservation.ActivatedAt = &now
	if err := r.db.Save(reservation).Error; err != nil {
		return fmt.Errorf("failed to activate slug %s: %w", reservation.Slug, err)
	}
	return nil
}

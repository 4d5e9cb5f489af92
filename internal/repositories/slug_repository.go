package repositories

import (
	"github.com/jhasonu12/creator-store-backend/internal/models"

	"gorm.io/gorm"
)

// StoreSlugRepository is the persistence side of the slug reservation
// ledger. Reserve and Activate are meant to run inside the signup
// transaction via WithTx; GetBySlug backs the read-only availability check.
type StoreSlugRepository interface {
	WithTx(tx *gorm.DB) StoreSlugRepository
	GetBySlug(slug string) (*models.StoreSlug, error)
	// Reserve inserts a RESERVED row with no owner. It fails with
	// ErrConflict if any row for that exact slug already exists,
	// regardless of that row's state or age.
	Reserve(slug string) (*models.StoreSlug, error)
	// Activate binds the reservation to its owner and marks it ACTIVE.
	Activate(reservation *models.StoreSlug, ownerID string) error
}

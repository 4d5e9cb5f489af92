package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatorProfileRepository defines the interface for creator profile access.
type CreatorProfileRepository interface {
	WithTx(tx *gorm.DB) CreatorProfileRepository
	Create(profile *models.CreatorProfile) error
	GetByUserID(userID string) (*models.CreatorProfile, error)
	GetByID(id string) (*models.CreatorProfile, error)
}

// GORMCreatorProfileRepository is a GORM implementation of CreatorProfileRepository.
type GORMCreatorProfileRepository struct {
	db *gorm.DB
}

// NewGORMCreatorProfileRepository creates a new instance of GORMCreatorProfileRepository.
func NewGORMCreatorProfileRepository(db *gorm.DB) *GORMCreatorProfileRepository {
	return &GORMCreatorProfileRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository that runs against tx.
func (r *GORMCreatorProfileRepository) WithTx(tx *gorm.DB) CreatorProfileRepository {
	return &GORMCreatorProfileRepository{db: tx}
}

// Create inserts a new creator profile.
func (r *GORMCreatorProfileRepository) Create(profile *models.CreatorProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: creator profile for user %s already exists", ErrConflict, profile.UserID)
		}
		return fmt.Errorf("failed to create creator profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves the profile belonging to an account.
func (r *GORMCreatorProfileRepository) GetByUserID(userID string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: creator profile for user %s", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get creator profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// GetByID retrieves a profile by its ID.
func (r *GORMCreatorProfileRepository) GetByID(id string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: creator profile %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get creator profile %s: %w", id, err)
	}
	return &profile, nil
}

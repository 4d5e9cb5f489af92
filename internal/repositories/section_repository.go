package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SectionRepository defines the interface for store section access.
type SectionRepository interface {
	Create(section *models.StoreSection) error
	GetByID(id string) (*models.StoreSection, error)
	ListByStore(storeID string) ([]models.StoreSection, error)
	ListPublishedByStore(storeID string) ([]models.StoreSection, error)
	NextPosition(storeID string) (int, error)
	Reorder(storeID string, moves []PositionUpdate) ([]models.StoreSection, error)
	Update(section *models.StoreSection) error
	Delete(id string) error
}

// GORMSectionRepository is a GORM implementation of SectionRepository.
type GORMSectionRepository struct {
	db  *gorm.DB
	set orderedSet[models.StoreSection, *models.StoreSection]
}

// NewGORMSectionRepository creates a new instance of GORMSectionRepository.
func NewGORMSectionRepository(db *gorm.DB) *GORMSectionRepository {
	return &GORMSectionRepository{
		db:  db,
		set: orderedSet[models.StoreSection, *models.StoreSection]{parentColumn: "store_id"},
	}
}

// Create inserts a new section.
func (r *GORMSectionRepository) Create(section *models.StoreSection) error {
	if section.ID == "" {
		section.ID = uuid.New().String()
	}
	if err := r.db.Create(section).Error; err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by its ID.
func (r *GORMSectionRepository) GetByID(id string) (*models.StoreSection, error) {
	var section models.StoreSection
	if err := r.db.First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: section %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get section %s: %w", id, err)
	}
	return &section, nil
}

// ListByStore returns all sections of a store ordered by position.
func (r *GORMSectionRepository) ListByStore(storeID string) ([]models.StoreSection, error) {
	return r.set.listByParent(r.db, storeID)
}

// ListPublishedByStore returns the published sections of a store ordered by position.
func (r *GORMSectionRepository) ListPublishedByStore(storeID string) ([]models.StoreSection, error) {
	return r.set.listByParent(r.db.Where("status = ?", models.SectionPublished), storeID)
}

// NextPosition computes the append position for a store's sections.
func (r *GORMSectionRepository) NextPosition(storeID string) (int, error) {
	return r.set.nextPosition(r.db, storeID)
}

// Reorder atomically applies a batch of section position updates.
func (r *GORMSectionRepository) Reorder(storeID string, moves []PositionUpdate) ([]models.StoreSection, error) {
	return r.set.reorder(r.db, storeID, moves, ErrNotFound)
}

// Update persists changes to a section.
func (r *GORMSectionRepository) Update(section *models.StoreSection) error {
	if err := r.db.Save(section).Error; err != nil {
		return fmt.Errorf("failed to update section %s: %w", section.ID, err)
	}
	return nil
}

// Delete removes a section. Remaining siblings are not renumbered.
func (r *GORMSectionRepository) Delete(id string) error {
	res := r.db.Delete(&models.StoreSection{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete section %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: section %s", ErrNotFound, id)
	}
	return nil
}

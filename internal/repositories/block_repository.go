package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for page block access.
type BlockRepository interface {
	Create(block *models.PageBlock) error
	GetByID(id string) (*models.PageBlock, error)
	ListByPage(pageID string) ([]models.PageBlock, error)
	NextPosition(pageID string) (int, error)
	Reorder(pageID string, moves []PositionUpdate) ([]models.PageBlock, error)
	Update(block *models.PageBlock) error
	Delete(id string) error
}

// GORMBlockRepository is a GORM implementation of BlockRepository.
type GORMBlockRepository struct {
	db  *gorm.DB
	set orderedSet[models.PageBlock, *models.PageBlock]
}

// NewGORMBlockRepository creates a new instance of GORMBlockRepository.
func NewGORMBlockRepository(db *gorm.DB) *GORMBlockRepository {
	return &GORMBlockRepository{
		db:  db,
		set: orderedSet[models.PageBlock, *models.PageBlock]{parentColumn: "page_id"},
	}
}

// Create inserts a new block.
func (r *GORMBlockRepository) Create(block *models.PageBlock) error {
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	if err := r.db.Create(block).Error; err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

// GetByID retrieves a block by its ID.
func (r *GORMBlockRepository) GetByID(id string) (*models.PageBlock, error) {
	var block models.PageBlock
	if err := r.db.First(&block, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: block %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get block %s: %w", id, err)
	}
	return &block, nil
}

// ListByPage returns all blocks of a page ordered by position.
func (r *GORMBlockRepository) ListByPage(pageID string) ([]models.PageBlock, error) {
	return r.set.listByParent(r.db, pageID)
}

// NextPosition computes the append position for a page's blocks.
func (r *GORMBlockRepository) NextPosition(pageID string) (int, error) {
	return r.set.nextPosition(r.db, pageID)
}

// Reorder atomically applies a batch of block position updates.
func (r *GORMBlockRepository) Reorder(pageID string, moves []PositionUpdate) ([]models.PageBlock, error) {
	return r.set.reorder(r.db, pageID, moves, ErrNotFound)
}

// Update persists changes to a block.
func (r *GORMBlockRepository) Update(block *models.PageBlock) error {
	if err := r.db.Save(block).Error; err != nil {
		return fmt.Errorf("failed to update block %s: %w", block.ID, err)
	}
	return nil
}

// Delete removes a block. Remaining siblings are not renumbered.
func (r *GORMBlockRepository) Delete(id string) error {
	res := r.db.Delete(&models.PageBlock{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete block %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: block %s", ErrNotFound, id)
	}
	return nil
}

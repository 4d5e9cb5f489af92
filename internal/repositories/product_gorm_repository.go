package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db  *gorm.DB
	set orderedSet[models.Product, *models.Product]
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db:  db,
		set: orderedSet[models.Product, *models.Product]{parentColumn: "creator_id"},
	}
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// ListByCreator returns a creator's products, newest first. This backs the
// builder view; the public storefront uses ListPublishedByCreator instead.
func (r *GORMProductRepository) ListByCreator(creatorID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for creator %s: %w", creatorID, err)
	}
	return products, nil
}

// ListPublishedByCreator returns the published products of a creator ordered
// by position.
func (r *GORMProductRepository) ListPublishedByCreator(creatorID string) ([]models.Product, error) {
	return r.set.listByParent(r.db.Where("status = ?", models.ProductPublished), creatorID)
}

// NextPosition computes the append position for a creator's products.
func (r *GORMProductRepository) NextPosition(creatorID string) (int, error) {
	return r.set.nextPosition(r.db, creatorID)
}

// Reorder atomically applies a batch of product position updates. A product
// owned by another creator aborts the batch with ErrForbidden.
func (r *GORMProductRepository) Reorder(creatorID string, moves []PositionUpdate) ([]models.Product, error) {
	return r.set.reorder(r.db, creatorID, moves, ErrForbidden)
}

// Update persists changes to a product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, product.ID)
	}
	return nil
}

// Delete removes a product. Remaining siblings are not renumbered.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return nil
}

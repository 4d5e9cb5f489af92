package repositories

import "github.com/jhasonu12/creator-store-backend/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	ListByCreator(creatorID string) ([]models.Product, error)
	ListPublishedByCreator(creatorID string) ([]models.Product, error)
	NextPosition(creatorID string) (int, error)
	Reorder(creatorID string, moves []PositionUpdate) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
}

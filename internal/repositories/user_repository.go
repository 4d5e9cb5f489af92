package repositories

import (
	"github.com/jhasonu12/creator-store-backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) UserRepository
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

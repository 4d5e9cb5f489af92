package repositories

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository defines the interface for refresh-credential records.
type RefreshTokenRepository interface {
	WithTx(tx *gorm.DB) RefreshTokenRepository
	Create(token *models.RefreshToken) error
	// FindActive looks up a non-revoked record by owner and token hash.
	FindActive(userID, tokenHash string) (*models.RefreshToken, error)
	Revoke(token *models.RefreshToken) error
	RevokeAllForUser(userID string) error
}

// GORMRefreshTokenRepository is a GORM implementation of RefreshTokenRepository.
type GORMRefreshTokenRepository struct {
	db *gorm.DB
}

// NewGORMRefreshTokenRepository creates a new instance of GORMRefreshTokenRepository.
func NewGORMRefreshTokenRepository(db *gorm.DB) *GORMRefreshTokenRepository {
	return &GORMRefreshTokenRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository that runs against tx.
func (r *GORMRefreshTokenRepository) WithTx(tx *gorm.DB) RefreshTokenRepository {
	return &GORMRefreshTokenRepository{db: tx}
}

// Create inserts a new refresh-credential record.
func (r *GORMRefreshTokenRepository) Create(token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create refresh token record: %w", err)
	}
	return nil
}

// FindActive looks up a non-revoked record by owner and token hash.
func (r *GORMRefreshTokenRepository) FindActive(userID, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.First(&token, "user_id = ? AND token_hash = ? AND revoked = ?", userID, tokenHash, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token not found or revoked", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return &token, nil
}

// Revoke marks a single record as revoked.
func (r *GORMRefreshTokenRepository) Revoke(token *models.RefreshToken) error {
	token.Revoked = true
	if err := r.db.Model(token).Update("revoked", true).Error; err != nil {
		return fmt.Errorf("failed to revoke refresh token %s: %w", token.ID, err)
	}
	return nil
}

// RevokeAllForUser marks every active record of a user as revoked (logout).
func (r *GORMRefreshTokenRepository) RevokeAllForUser(userID string) error {
	err := r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user %s: %w", userID, err)
	}
	return nil
}

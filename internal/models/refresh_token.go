package models

import "time"

// RefreshToken is the persisted record of an issued refresh credential.
// Only the sha256 hash of the token is stored.
type RefreshToken struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;type:varchar(64);not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

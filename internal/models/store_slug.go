package models

import "time"

// StoreSlugStatus is the lifecycle state of a storefront slug reservation.
type StoreSlugStatus string

const (
	// SlugReserved marks a slug claimed by an in-flight signup. A reservation
	// older than the expiry window is treated as available again by readers.
	SlugReserved StoreSlugStatus = "RESERVED"
	// SlugActive marks a slug bound to a creator account.
	SlugActive StoreSlugStatus = "ACTIVE"
	// SlugReleased marks a slug whose storefront was abandoned.
	SlugReleased StoreSlugStatus = "RELEASED"
)

// StoreSlug is the reservation ledger row for one storefront identifier.
// At most one row exists per slug value; the unique index is what serializes
// concurrent signups racing for the same slug.
type StoreSlug struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;type:varchar(30);not null"`
	CreatorID   *string         `json:"creator_id,omitempty" gorm:"type:varchar(36)"` // nil only while RESERVED
	Status      StoreSlugStatus `json:"status" gorm:"type:varchar(20);default:RESERVED"`
	ReservedAt  time.Time       `json:"reserved_at"`
	ActivatedAt *time.Time      `json:"activated_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

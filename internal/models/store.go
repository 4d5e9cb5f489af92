package models

import (
	"time"

	"gorm.io/datatypes"
)

// StoreType selects which storefront layout a creator runs.
type StoreType string

const (
	StoreLinksite StoreType = "linksite"
	StoreFunnel   StoreType = "funnel"
	StoreHybrid   StoreType = "hybrid"
)

// Store publication states.
const (
	StoreDraft    = 0
	StoreActive   = 1
	StoreArchived = 2
)

// Store is a creator's storefront. One per creator, created during creator
// signup together with the slug activation.
type Store struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatorID   string    `json:"creator_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(30);not null"`
	Name        string    `json:"name" gorm:"type:varchar(150);not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Type        StoreType `json:"type" gorm:"type:varchar(20);default:linksite"`
	Status      int       `json:"status" gorm:"type:smallint;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section/page publication states. Sections default to published, pages to
// draft, matching how the builder exposes them.
const (
	SectionDraft     = 0
	SectionPublished = 1
	SectionHidden    = 2

	PageDraft     = 0
	PagePublished = 1
	PageArchived  = 2
)

// StoreSection is one link-in-bio row on a storefront. Siblings of the same
// store are ordered by position.
type StoreSection struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StoreID   string            `json:"store_id" gorm:"index:idx_sections_store_position;type:varchar(36);not null"`
	Type      string            `json:"type" gorm:"type:varchar(30);not null"`
	Status    int               `json:"status" gorm:"type:smallint;default:1"`
	Position  int               `json:"position" gorm:"index:idx_sections_store_position;not null"`
	Data      datatypes.JSONMap `json:"data" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (s *StoreSection) EntityID() string  { return s.ID }
func (s *StoreSection) ParentID() string  { return s.StoreID }
func (s *StoreSection) GetPosition() int  { return s.Position }
func (s *StoreSection) SetPosition(n int) { s.Position = n }

// StorePage is a landing page within a store (checkout, upsell, thank-you...).
// Page slugs are globally unique.
type StorePage struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StoreID   string            `json:"store_id" gorm:"index:idx_pages_store_position;type:varchar(36);not null"`
	Slug      string            `json:"slug" gorm:"uniqueIndex;type:varchar(100);not null"`
	Type      string            `json:"type" gorm:"type:varchar(30);not null"`
	ProductID *string           `json:"product_id,omitempty" gorm:"type:varchar(36)"`
	Status    int               `json:"status" gorm:"type:smallint;default:0"`
	Position  int               `json:"position" gorm:"index:idx_pages_store_position;not null"`
	Data      datatypes.JSONMap `json:"data" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (p *StorePage) EntityID() string  { return p.ID }
func (p *StorePage) ParentID() string  { return p.StoreID }
func (p *StorePage) GetPosition() int  { return p.Position }
func (p *StorePage) SetPosition(n int) { p.Position = n }

// PageBlock is one content block on a store page, ordered within its page.
type PageBlock struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PageID    string            `json:"page_id" gorm:"index:idx_blocks_page_position;type:varchar(36);not null"`
	Type      string            `json:"type" gorm:"type:varchar(30);not null"`
	Position  int               `json:"position" gorm:"index:idx_blocks_page_position;not null"`
	Data      datatypes.JSONMap `json:"data" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (b *PageBlock) EntityID() string  { return b.ID }
func (b *PageBlock) ParentID() string  { return b.PageID }
func (b *PageBlock) GetPosition() int  { return b.Position }
func (b *PageBlock) SetPosition(n int) { b.Position = n }

// StoreTheme holds the free-form theme configuration of a store (1:1).
type StoreTheme struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StoreID   string            `json:"store_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Config    datatypes.JSONMap `json:"config" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

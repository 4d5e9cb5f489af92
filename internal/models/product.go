package models

import "time"

// ProductType is what kind of good a creator sells.
type ProductType string

const (
	ProductDigital      ProductType = "digital"
	ProductCourse       ProductType = "course"
	ProductSubscription ProductType = "subscription"
)

// ProductStatus is the publication state of a product.
type ProductStatus string

const (
	ProductDraft     ProductStatus = "DRAFT"
	ProductPublished ProductStatus = "PUBLISHED"
	ProductArchived  ProductStatus = "ARCHIVED"
)

// Product is a sellable item owned by a creator profile. Products of the same
// creator are position-ordered like sections and pages.
type Product struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CreatorID    string        `json:"creator_id" gorm:"index:idx_products_creator_position;type:varchar(36);not null"`
	Type         ProductType   `json:"type" gorm:"type:varchar(20);not null" validate:"required,oneof=digital course subscription"`
	Title        string        `json:"title" gorm:"type:varchar(150);not null" validate:"required,min=1,max=150"`
	Description  string        `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Price        float64       `json:"price" validate:"omitempty,gte=0"`
	Currency     string        `json:"currency" gorm:"type:varchar(3);default:USD"`
	ThumbnailURL *string       `json:"thumbnail_url,omitempty" gorm:"type:varchar(512)"`
	Status       ProductStatus `json:"status" gorm:"type:varchar(20);default:DRAFT"`
	Position     int           `json:"position" gorm:"index:idx_products_creator_position;not null"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (p *Product) EntityID() string  { return p.ID }
func (p *Product) ParentID() string  { return p.CreatorID }
func (p *Product) GetPosition() int  { return p.Position }
func (p *Product) SetPosition(n int) { p.Position = n }

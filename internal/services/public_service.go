package services

import (
	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
)

// CreatorCard is the public subset of a creator profile.
type CreatorCard struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Bio      *string `json:"bio,omitempty"`
}

// PageView is a published page with its blocks in position order.
type PageView struct {
	models.StorePage
	Blocks []models.PageBlock `json:"blocks"`
}

// StorefrontView is the public projection of an active store: only
// published entities, every collection sorted ascending by position.
type StorefrontView struct {
	Store    *models.Store         `json:"store"`
	Creator  CreatorCard           `json:"creator"`
	Products []models.Product      `json:"products"`
	Sections []models.StoreSection `json:"sections"`
	Pages    []PageView            `json:"pages"`
	Theme    *models.StoreTheme    `json:"theme,omitempty"`
}

// PublicService assembles storefront views for unauthenticated visitors.
// It performs no writes; the ordering it exposes is whatever the ordered
// collections guarantee.
type PublicService struct {
	storeRepo   repositories.StoreRepository
	creatorRepo repositories.CreatorProfileRepository
	productRepo repositories.ProductRepository
	sectionRepo repositories.SectionRepository
	pageRepo    repositories.PageRepository
	blockRepo   repositories.BlockRepository
}

// NewPublicService creates a new PublicService.
func NewPublicService(
	storeRepo repositories.StoreRepository,
	creatorRepo repositories.CreatorProfileRepository,
	productRepo repositories.ProductRepository,
	sectionRepo repositories.SectionRepository,
	pageRepo repositories.PageRepository,
	blockRepo repositories.BlockRepository,
) *PublicService {
	return &PublicService{
		storeRepo:   storeRepo,
		creatorRepo: creatorRepo,
		productRepo: productRepo,
		sectionRepo: sectionRepo,
		pageRepo:    pageRepo,
		blockRepo:   blockRepo,
	}
}

// GetStoreBySlug returns the public view of an ACTIVE store: creator card,
// published products/sections/pages with nested blocks, and the theme.
func (s *PublicService) GetStoreBySlug(slug string) (*StorefrontView, error) {
	store, err := s.storeRepo.GetActiveBySlug(slug)
	if err != nil {
		return nil, err
	}

	creator, err := s.creatorRepo.GetByID(store.CreatorID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListPublishedByCreator(creator.ID)
	if err != nil {
		return nil, err
	}
	sections, err := s.sectionRepo.ListPublishedByStore(store.ID)
	if err != nil {
		return nil, err
	}
	pages, err := s.pageRepo.ListPublishedByStore(store.ID)
	if err != nil {
		return nil, err
	}

	pageViews := make([]PageView, 0, len(pages))
	for _, page := range pages {
		blocks, err := s.blockRepo.ListByPage(page.ID)
		if err != nil {
			return nil, err
		}
		pageViews = append(pageViews, PageView{StorePage: page, Blocks: blocks})
	}

	view := &StorefrontView{
		Store: store,
		Creator: CreatorCard{
			ID:       creator.ID,
			FullName: creator.FullName,
			Bio:      creator.Bio,
		},
		Products: products,
		Sections: sections,
		Pages:    pageViews,
	}

	// Theme is optional on the public view.
	if theme, err := s.storeRepo.GetTheme(store.ID); err == nil {
		view.Theme = theme
	}
	return view, nil
}

package services

import (
	"errors"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"

	"gorm.io/datatypes"
)

// SectionInput is the payload for creating or updating a section.
type SectionInput struct {
	Type string
	Data map[string]interface{}
}

// PageInput is the payload for creating or updating a page.
type PageInput struct {
	Slug      string
	Type      string
	ProductID *string
	Data      map[string]interface{}
}

// BlockInput is the payload for creating or updating a block.
type BlockInput struct {
	Type string
	Data map[string]interface{}
}

// StoreUpdateInput carries the mutable store settings.
type StoreUpdateInput struct {
	Name        string
	Description *string
	Type        string
}

// StoreBuilderService manages a creator's storefront: store settings, theme,
// and the three position-ordered collections (sections, pages, blocks).
// Appends take max sibling position + 1; reorders are atomic batches.
type StoreBuilderService struct {
	storeRepo   repositories.StoreRepository
	creatorRepo repositories.CreatorProfileRepository
	sectionRepo repositories.SectionRepository
	pageRepo    repositories.PageRepository
	blockRepo   repositories.BlockRepository
}

// NewStoreBuilderService creates a new StoreBuilderService.
func NewStoreBuilderService(
	storeRepo repositories.StoreRepository,
	creatorRepo repositories.CreatorProfileRepository,
	sectionRepo repositories.SectionRepository,
	pageRepo repositories.PageRepository,
	blockRepo repositories.BlockRepository,
) *StoreBuilderService {
	return &StoreBuilderService{
		storeRepo:   storeRepo,
		creatorRepo: creatorRepo,
		sectionRepo: sectionRepo,
		pageRepo:    pageRepo,
		blockRepo:   blockRepo,
	}
}

// GetStoreByUser returns the storefront of the authenticated creator. The
// store itself is created during creator signup.
func (s *StoreBuilderService) GetStoreByUser(userID string) (*models.Store, error) {
	profile, err := s.creatorRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.storeRepo.GetByCreator(profile.ID)
}

// UpdateStore applies the provided settings to a store.
func (s *StoreBuilderService) UpdateStore(storeID string, input StoreUpdateInput) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		store.Name = input.Name
	}
	if input.Description != nil {
		store.Description = input.Description
	}
	if input.Type != "" {
		store.Type = models.StoreType(input.Type)
	}
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// ========== Sections ==========

// CreateSection appends a section to a store (position = max sibling + 1).
func (s *StoreBuilderService) CreateSection(storeID string, input SectionInput) (*models.StoreSection, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	position, err := s.sectionRepo.NextPosition(storeID)
	if err != nil {
		return nil, err
	}
	section := &models.StoreSection{
		StoreID:  storeID,
		Type:     input.Type,
		Status:   models.SectionPublished,
		Position: position,
		Data:     datatypes.JSONMap(input.Data),
	}
	if section.Data == nil {
		section.Data = datatypes.JSONMap{}
	}
	if err := s.sectionRepo.Create(section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection changes a section's type and/or data.
func (s *StoreBuilderService) UpdateSection(sectionID string, input SectionInput) (*models.StoreSection, error) {
	section, err := s.sectionRepo.GetByID(sectionID)
	if err != nil {
		return nil, err
	}
	if input.Type != "" {
		section.Type = input.Type
	}
	if input.Data != nil {
		section.Data = datatypes.JSONMap(input.Data)
	}
	if err := s.sectionRepo.Update(section); err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes a section; sibling positions keep their gaps.
func (s *StoreBuilderService) DeleteSection(sectionID string) error {
	return s.sectionRepo.Delete(sectionID)
}

// ReorderSections atomically applies a batch of section moves. Ids that do
// not exist or belong to another store fail the whole batch with no writes.
func (s *StoreBuilderService) ReorderSections(storeID string, moves []repositories.PositionUpdate) ([]models.StoreSection, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	return s.sectionRepo.Reorder(storeID, moves)
}

// GetSections lists a store's sections ordered by position.
func (s *StoreBuilderService) GetSections(storeID string) ([]models.StoreSection, error) {
	return s.sectionRepo.ListByStore(storeID)
}

// ========== Pages ==========

// CreatePage appends a page to a store. Page slugs are globally unique and
// collide with Conflict. New pages start as drafts.
func (s *StoreBuilderService) CreatePage(storeID string, input PageInput) (*models.StorePage, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	position, err := s.pageRepo.NextPosition(storeID)
	if err != nil {
		return nil, err
	}
	page := &models.StorePage{
		StoreID:   storeID,
		Slug:      input.Slug,
		Type:      input.Type,
		ProductID: input.ProductID,
		Status:    models.PageDraft,
		Position:  position,
		Data:      datatypes.JSONMap(input.Data),
	}
	if page.Data == nil {
		page.Data = datatypes.JSONMap{}
	}
	if err := s.pageRepo.Create(page); err != nil {
		return nil, err
	}
	return page, nil
}

// UpdatePage changes a page's slug, type, product link or data.
func (s *StoreBuilderService) UpdatePage(pageID string, input PageInput) (*models.StorePage, error) {
	page, err := s.pageRepo.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if input.Slug != "" {
		page.Slug = input.Slug
	}
	if input.Type != "" {
		page.Type = input.Type
	}
	if input.ProductID != nil {
		page.ProductID = input.ProductID
	}
	if input.Data != nil {
		page.Data = datatypes.JSONMap(input.Data)
	}
	if err := s.pageRepo.Update(page); err != nil {
		return nil, err
	}
	return page, nil
}

// DeletePage removes a page and its blocks.
func (s *StoreBuilderService) DeletePage(pageID string) error {
	return s.pageRepo.Delete(pageID)
}

// ReorderPages atomically applies a batch of page moves.
func (s *StoreBuilderService) ReorderPages(storeID string, moves []repositories.PositionUpdate) ([]models.StorePage, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	return s.pageRepo.Reorder(storeID, moves)
}

// GetPages lists a store's pages ordered by position.
func (s *StoreBuilderService) GetPages(storeID string) ([]models.StorePage, error) {
	return s.pageRepo.ListByStore(storeID)
}

// ========== Blocks ==========

// CreateBlock appends a block to a page.
func (s *StoreBuilderService) CreateBlock(pageID string, input BlockInput) (*models.PageBlock, error) {
	if _, err := s.pageRepo.GetByID(pageID); err != nil {
		return nil, err
	}
	position, err := s.blockRepo.NextPosition(pageID)
	if err != nil {
		return nil, err
	}
	block := &models.PageBlock{
		PageID:   pageID,
		Type:     input.Type,
		Position: position,
		Data:     datatypes.JSONMap(input.Data),
	}
	if block.Data == nil {
		block.Data = datatypes.JSONMap{}
	}
	if err := s.blockRepo.Create(block); err != nil {
		return nil, err
	}
	return block, nil
}

// UpdateBlock changes a block's type and/or data.
func (s *StoreBuilderService) UpdateBlock(blockID string, input BlockInput) (*models.PageBlock, error) {
	block, err := s.blockRepo.GetByID(blockID)
	if err != nil {
		return nil, err
	}
	if input.Type != "" {
		block.Type = input.Type
	}
	if input.Data != nil {
		block.Data = datatypes.JSONMap(input.Data)
	}
	if err := s.blockRepo.Update(block); err != nil {
		return nil, err
	}
	return block, nil
}

// DeleteBlock removes a block.
func (s *StoreBuilderService) DeleteBlock(blockID string) error {
	return s.blockRepo.Delete(blockID)
}

// ReorderBlocks atomically applies a batch of block moves.
func (s *StoreBuilderService) ReorderBlocks(pageID string, moves []repositories.PositionUpdate) ([]models.PageBlock, error) {
	if _, err := s.pageRepo.GetByID(pageID); err != nil {
		return nil, err
	}
	return s.blockRepo.Reorder(pageID, moves)
}

// GetBlocks lists a page's blocks ordered by position.
func (s *StoreBuilderService) GetBlocks(pageID string) ([]models.PageBlock, error) {
	return s.blockRepo.ListByPage(pageID)
}

// ========== Theme ==========

// GetTheme returns a store's theme configuration.
func (s *StoreBuilderService) GetTheme(storeID string) (*models.StoreTheme, error) {
	return s.storeRepo.GetTheme(storeID)
}

// UpdateTheme replaces the theme configuration, creating it when missing.
func (s *StoreBuilderService) UpdateTheme(storeID string, config map[string]interface{}) (*models.StoreTheme, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return nil, err
	}
	theme, err := s.storeRepo.GetTheme(storeID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		theme = &models.StoreTheme{StoreID: storeID}
	}
	theme.Config = datatypes.JSONMap(config)
	if err := s.storeRepo.SaveTheme(theme); err != nil {
		return nil, err
	}
	return theme, nil
}

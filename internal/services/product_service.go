package services

import (
	"errors"
	"fmt"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
)

// ProductInput carries the mutable product fields.
type ProductInput struct {
	Type         string
	Title        string
	Description  string
	Price        *float64
	Currency     string
	ThumbnailURL *string
}

// ProductService handles business logic related to products. Every mutation
// verifies that the caller's creator profile owns the product.
type ProductService struct {
	productRepo repositories.ProductRepository
	creatorRepo repositories.CreatorProfileRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, creatorRepo repositories.CreatorProfileRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		creatorRepo: creatorRepo,
	}
}

// GetProducts lists the caller's products, newest first.
func (s *ProductService) GetProducts(userID string) ([]models.Product, error) {
	creator, err := s.creatorRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByCreator(creator.ID)
}

// GetProduct returns a single product.
func (s *ProductService) GetProduct(productID string) (*models.Product, error) {
	return s.productRepo.GetByID(productID)
}

// CreateProduct appends a product to the caller's catalog
// (position = max sibling + 1, status DRAFT).
func (s *ProductService) CreateProduct(userID string, input ProductInput) (*models.Product, error) {
	creator, err := s.creatorRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	position, err := s.productRepo.NextPosition(creator.ID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	var price float64
	if input.Price != nil {
		price = *input.Price
	}
	product := &models.Product{
		CreatorID:    creator.ID,
		Type:         models.ProductType(input.Type),
		Title:        input.Title,
		Description:  input.Description,
		Price:        price,
		Currency:     currency,
		ThumbnailURL: input.ThumbnailURL,
		Status:       models.ProductDraft,
		Position:     position,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies the provided fields to a product the caller owns.
func (s *ProductService) UpdateProduct(productID, userID string, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(productID, userID)
	if err != nil {
		return nil, err
	}

	if input.Type != "" {
		product.Type = models.ProductType(input.Type)
	}
	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	if input.ThumbnailURL != nil {
		product.ThumbnailURL = input.ThumbnailURL
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStatus moves a product between DRAFT, PUBLISHED and ARCHIVED.
func (s *ProductService) UpdateStatus(productID, userID string, status models.ProductStatus) (*models.Product, error) {
	switch status {
	case models.ProductDraft, models.ProductPublished, models.ProductArchived:
	default:
		return nil, fmt.Errorf("%w: invalid status %q", repositories.ErrInvalid, status)
	}

	product, err := s.ownedProduct(productID, userID)
	if err != nil {
		return nil, err
	}
	product.Status = status
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product the caller owns.
func (s *ProductService) DeleteProduct(productID, userID string) error {
	if _, err := s.ownedProduct(productID, userID); err != nil {
		return err
	}
	return s.productRepo.Delete(productID)
}

// ReorderProducts atomically applies a batch of position moves across the
// caller's catalog. Unknown ids abort with NotFound, products owned by a
// different creator abort with Forbidden; either way no position changes.
func (s *ProductService) ReorderProducts(userID string, moves []repositories.PositionUpdate) ([]models.Product, error) {
	creator, err := s.creatorRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.Reorder(creator.ID, moves)
}

func (s *ProductService) ownedProduct(productID, userID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	creator, err := s.creatorRepo.GetByUserID(userID)
	if err != nil {
		// A caller without a creator profile cannot own anything, but a
		// storage failure must not masquerade as a permission denial.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: you do not have permission to modify product %s", repositories.ErrForbidden, productID)
		}
		return nil, err
	}
	if product.CreatorID != creator.ID {
		return nil, fmt.Errorf("%w: you do not have permission to modify product %s", repositories.ErrForbidden, productID)
	}
	return product, nil
}

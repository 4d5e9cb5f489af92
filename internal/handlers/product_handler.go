package handlers

import (
	"log"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the creator's product catalog.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the product routes. The reorder route is mounted
// before the :id routes so "reorder" is not captured as an id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/reorder", h.HandleReorderProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// ProductRequest is the body for creating a product.
type ProductRequest struct {
	Type         string   `json:"type" validate:"required,oneof=digital course subscription"`
	Title        string   `json:"title" validate:"required,min=1,max=150"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,min=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	ThumbnailURL *string  `json:"thumbnailUrl" validate:"omitempty,url"`
}

// ProductUpdateRequest is the body for a partial product update.
type ProductUpdateRequest struct {
	Type         string   `json:"type" validate:"omitempty,oneof=digital course subscription"`
	Title        string   `json:"title" validate:"omitempty,min=1,max=150"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,min=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	ThumbnailURL *string  `json:"thumbnailUrl" validate:"omitempty,url"`
}

// HandleGetProducts lists the caller's products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	products, err := h.productService.GetProducts(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// HandleCreateProduct adds a product to the caller's catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.productService.CreateProduct(userID, services.ProductInput{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     req.Currency,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

// HandleUpdateProduct applies changes to a product the caller owns.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var req ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.productService.UpdateProduct(c.Params("id"), userID, services.ProductInput{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     req.Currency,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// StatusRequest is the body of a product status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// HandleUpdateStatus moves a product between DRAFT, PUBLISHED and ARCHIVED.
func (h *ProductHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.productService.UpdateStatus(c.Params("id"), userID, models.ProductStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// HandleDeleteProduct removes a product the caller owns.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	if err := h.productService.DeleteProduct(c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// ProductReorderRequest carries a batch of catalog position moves.
type ProductReorderRequest struct {
	Products []repositories.PositionUpdate `json:"products" validate:"required,min=1,dive"`
}

// HandleReorderProducts atomically applies a batch of catalog moves.
func (h *ProductHandler) HandleReorderProducts(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var req ProductReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	products, err := h.productService.ReorderProducts(userID, req.Products)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

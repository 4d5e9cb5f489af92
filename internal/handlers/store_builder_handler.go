package handlers

import (
	"log"

	"github.com/jhasonu12/creator-store-backend/internal/repositories"
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreBuilderHandler handles HTTP requests for the storefront builder:
// store settings, sections, pages, blocks and the theme.
type StoreBuilderHandler struct {
	builderService *services.StoreBuilderService
	validate       *validator.Validate
}

// NewStoreBuilderHandler creates a new StoreBuilderHandler.
func NewStoreBuilderHandler(builderService *services.StoreBuilderService) *StoreBuilderHandler {
	return &StoreBuilderHandler{
		builderService: builderService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the builder routes. All of them require auth.
func (h *StoreBuilderHandler) RegisterRoutes(router fiber.Router) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/self", h.HandleGetOwnStore)
	storeRoutes.Patch("/:id", h.HandleUpdateStore)

	storeRoutes.Get("/:id/sections", h.HandleGetSections)
	storeRoutes.Post("/:id/sections", h.HandleCreateSection)
	storeRoutes.Patch("/:id/sections/order", h.HandleReorderSections)

	storeRoutes.Get("/:id/pages", h.HandleGetPages)
	storeRoutes.Post("/:id/pages", h.HandleCreatePage)
	storeRoutes.Patch("/:id/pages/order", h.HandleReorderPages)

	storeRoutes.Get("/:id/theme", h.HandleGetTheme)
	storeRoutes.Put("/:id/theme", h.HandleUpdateTheme)

	sectionRoutes := router.Group("/sections")
	sectionRoutes.Patch("/:id", h.HandleUpdateSection)
	sectionRoutes.Delete("/:id", h.HandleDeleteSection)

	pageRoutes := router.Group("/pages")
	pageRoutes.Patch("/:id", h.HandleUpdatePage)
	pageRoutes.Delete("/:id", h.HandleDeletePage)
	pageRoutes.Get("/:id/blocks", h.HandleGetBlocks)
	pageRoutes.Post("/:id/blocks", h.HandleCreateBlock)
	pageRoutes.Patch("/:id/blocks/order", h.HandleReorderBlocks)

	blockRoutes := router.Group("/blocks")
	blockRoutes.Patch("/:id", h.HandleUpdateBlock)
	blockRoutes.Delete("/:id", h.HandleDeleteBlock)
}

// HandleGetOwnStore returns the authenticated creator's store.
func (h *StoreBuilderHandler) HandleGetOwnStore(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	store, err := h.builderService.GetStoreByUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"store": store})
}

// StoreUpdateRequest is the body of a store settings update.
type StoreUpdateRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"omitempty,oneof=linksite funnel hybrid"`
}

// HandleUpdateStore applies store settings changes.
func (h *StoreBuilderHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var req StoreUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing store update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	store, err := h.builderService.UpdateStore(c.Params("id"), services.StoreUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"store": store})
}

// SectionRequest is the body for creating or updating a section.
type SectionRequest struct {
	Type string                 `json:"type" validate:"required,min=1,max=60"`
	Data map[string]interface{} `json:"data"`
}

// HandleGetSections lists a store's sections ordered by position.
func (h *StoreBuilderHandler) HandleGetSections(c *fiber.Ctx) error {
	sections, err := h.builderService.GetSections(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sections": sections})
}

// HandleCreateSection appends a section to a store.
func (h *StoreBuilderHandler) HandleCreateSection(c *fiber.Ctx) error {
	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	section, err := h.builderService.CreateSection(c.Params("id"), services.SectionInput{
		Type: req.Type,
		Data: req.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"section": section})
}

// SectionUpdateRequest is the body for a partial section update.
type SectionUpdateRequest struct {
	Type string                 `json:"type" validate:"omitempty,min=1,max=60"`
	Data map[string]interface{} `json:"data"`
}

// HandleUpdateSection changes a section's type and/or data.
func (h *StoreBuilderHandler) HandleUpdateSection(c *fiber.Ctx) error {
	var req SectionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	section, err := h.builderService.UpdateSection(c.Params("id"), services.SectionInput{
		Type: req.Type,
		Data: req.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"section": section})
}

// HandleDeleteSection removes a section.
func (h *StoreBuilderHandler) HandleDeleteSection(c *fiber.Ctx) error {
	if err := h.builderService.DeleteSection(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Section deleted successfully"})
}

// SectionReorderRequest carries a batch of section position moves.
type SectionReorderRequest struct {
	Sections []repositories.PositionUpdate `json:"sections" validate:"required,min=1,dive"`
}

// HandleReorderSections atomically applies a batch of section moves.
func (h *StoreBuilderHandler) HandleReorderSections(c *fiber.Ctx) error {
	var req SectionReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	sections, err := h.builderService.ReorderSections(c.Params("id"), req.Sections)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sections": sections})
}

// PageRequest is the body for creating a page.
type PageRequest struct {
	Slug      string                 `json:"slug" validate:"required,storeslug"`
	Type      string                 `json:"type" validate:"required,min=1,max=60"`
	ProductID *string                `json:"productId"`
	Data      map[string]interface{} `json:"data"`
}

// HandleGetPages lists a store's pages ordered by position.
func (h *StoreBuilderHandler) HandleGetPages(c *fiber.Ctx) error {
	pages, err := h.builderService.GetPages(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"pages": pages})
}

// HandleCreatePage appends a page to a store.
func (h *StoreBuilderHandler) HandleCreatePage(c *fiber.Ctx) error {
	var req PageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	page, err := h.builderService.CreatePage(c.Params("id"), services.PageInput{
		Slug:      req.Slug,
		Type:      req.Type,
		ProductID: req.ProductID,
		Data:      req.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"page": page})
}

// PageUpdateRequest is the body for a partial page update.
type PageUpdateRequest struct {
	Slug      string                 `json:"slug" validate:"omitempty,storeslug"`
	Type      string                 `json:"type" validate:"omitempty,min=1,max=60"`
	ProductID *string                `json:"productId"`
	Data      map[string]interface{} `json:"data"`
}

// HandleUpdatePage changes a page's slug, type, product link or data.
func (h *StoreBuilderHandler) HandleUpdatePage(c *fiber.Ctx) error {
	var req PageUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	page, err := h.builderService.UpdatePage(c.Params("id"), services.PageInput{
		Slug:      req.Slug,
		Type:      req.Type,
		ProductID: req.ProductID,
		Data:      req.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"page": page})
}

// HandleDeletePage removes a page together with its blocks.
func (h *StoreBuilderHandler) HandleDeletePage(c *fiber.Ctx) error {
	if err := h.builderService.DeletePage(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Page deleted successfully"})
}

// PageReorderRequest carries a batch of page position moves.
type PageReorderRequest struct {
	Pages []repositories.PositionUpdate `json:"pages" validate:"required,min=1,dive"`
}

// HandleReorderPages atomically applies a batch of page moves.
func (h *StoreBuilderHandler) HandleReorderPages(c *fiber.Ctx) error {
	var req PageReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	pages, err := h.builderService.ReorderPages(c.Params("id"), req.Pages)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"pages": pages})
}

// BlockRequest is the body for creating or updating a block.
type BlockRequest struct {
	Type string                 `json:"type" validate:"required,min=1,max=60"`
	Data map[string]interface{} `json:"data"`
}

// HandleGetBlocks lists a page's blocks ordered by position.
func (h *StoreBuilderHandler) HandleGetBlocks(c *fiber.Ctx) error {
	blocks, err := h.builderService.GetBlocks(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"blocks": blocks})
}

// HandleCreateBlock appends a block to a page.
func (h *StoreBuilderHandler) HandleCreateBlock(c *fiber.Ctx) error {
	var req BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	block, err := h.builderService.CreateBlock(c.Params("id"), services.BlockInput{
		Type: req.Type,
		Data: req.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"block": block})
}

// BlockUpdateRequest is the body for a partial block update.
type BlockUpdateRequest struct {
	Type string                 `json:"type" validate:"omitempty,min=1,max=60"`
	Data map[string]interface{} `json:"data"`
}

// HandleUpdateBlock changes a block's type and/or data.
func (h *StoreBuilderHandler) HandleUpdateBlock(c *fiber.Ctx) error {
	var req BlockUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	block, err := h.builderService.UpdateBlock(c.Params("id"), services.BlockInput{
		Type: req.Type,
		Data: req.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"block": block})
}

// HandleDeleteBlock removes a block.
func (h *StoreBuilderHandler) HandleDeleteBlock(c *fiber.Ctx) error {
	if err := h.builderService.DeleteBlock(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Block deleted successfully"})
}

// BlockReorderRequest carries a batch of block position moves.
type BlockReorderRequest struct {
	Blocks []repositories.PositionUpdate `json:"blocks" validate:"required,min=1,dive"`
}

// HandleReorderBlocks atomically applies a batch of block moves.
func (h *StoreBuilderHandler) HandleReorderBlocks(c *fiber.Ctx) error {
	var req BlockReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	blocks, err := h.builderService.ReorderBlocks(c.Params("id"), req.Blocks)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"blocks": blocks})
}

// ThemeRequest is the body of a theme replacement.
type ThemeRequest struct {
	Config map[string]interface{} `json:"config" validate:"required"`
}

// HandleGetTheme returns a store's theme configuration.
func (h *StoreBuilderHandler) HandleGetTheme(c *fiber.Ctx) error {
	theme, err := h.builderService.GetTheme(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"theme": theme})
}

// HandleUpdateTheme replaces a store's theme configuration.
func (h *StoreBuilderHandler) HandleUpdateTheme(c *fiber.Ctx) error {
	var req ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	theme, err := h.builderService.UpdateTheme(c.Params("id"), req.Config)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"theme": theme})
}

package handlers

import (
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the unauthenticated storefront endpoints.
type PublicHandler struct {
	publicService *services.PublicService
	tracker       *services.EventTracker
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(publicService *services.PublicService, tracker *services.EventTracker) *PublicHandler {
	return &PublicHandler{
		publicService: publicService,
		tracker:       tracker,
	}
}

// RegisterRoutes registers the public storefront routes.
func (h *PublicHandler) RegisterRoutes(router fiber.Router) {
	publicRoutes := router.Group("/public")
	publicRoutes.Get("/stores/:slug", h.HandleGetStore)
}

// HandleGetStore returns the published storefront for an active slug:
// store, creator card, published products, sections, pages with their
// blocks, and the theme when one exists.
func (h *PublicHandler) HandleGetStore(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !storeSlugPattern.MatchString(slug) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid slug format",
		})
	}

	view, err := h.publicService.GetStoreBySlug(slug)
	if err != nil {
		return respondError(c, err)
	}

	h.tracker.Track(services.EventStorefrontViewed, services.Event{
		CreatorID: view.Store.CreatorID,
		Metadata: map[string]interface{}{
			"slug":     slug,
			"store_id": view.Store.ID,
		},
	})
	return c.JSON(view)
}

package handlers

import (
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SlugHandler handles the public slug availability endpoint.
type SlugHandler struct {
	service *services.SlugService
}

// NewSlugHandler creates a new SlugHandler.
func NewSlugHandler(service *services.SlugService) *SlugHandler {
	return &SlugHandler{
		service: service,
	}
}

// RegisterRoutes registers the slug routes with the Fiber app.
func (h *SlugHandler) RegisterRoutes(router fiber.Router) {
	slugRoutes := router.Group("/store-slugs")
	slugRoutes.Get("/check", h.HandleCheckAvailability)
}

// HandleCheckAvailability answers whether ?slug= can currently be claimed.
func (h *SlugHandler) HandleCheckAvailability(c *fiber.Ctx) error {
	slug := c.Query("slug")
	if !storeSlugPattern.MatchString(slug) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Slug must be 3-30 characters of lowercase letters, numbers, and hyphens",
		})
	}

	availability, err := h.service.CheckAvailability(slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"available": availability.Available,
		"message":   availability.Message,
	})
}

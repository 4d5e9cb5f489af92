package handlers

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/jhasonu12/creator-store-backend/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// storeSlugPattern is the storefront identifier format: lowercase letters,
// digits and hyphens, 3-30 characters.
var storeSlugPattern = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)

// newValidator builds the validator shared pattern used by all handlers,
// with the custom storeslug rule registered.
func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tag names.
	_ = v.RegisterValidation("storeslug", func(fl validator.FieldLevel) bool {
		return storeSlugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validationErrorResponse renders field-level validation failures the same
// way for every endpoint.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondError maps service errors to status codes via the repository
// sentinels. Internal failures are logged with context but the storage
// detail never reaches the client.
func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, repositories.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, repositories.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, repositories.ErrInvalid):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// currentUserID reads the authenticated account id set by the auth middleware.
func currentUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("user_id").(string)
	return id, ok && id != ""
}

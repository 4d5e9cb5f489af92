package handlers

import (
	"log"

	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and signup.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/creator-signup", h.HandleCreatorSignup)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/refresh", h.HandleRefresh)
}

// RegisterProtectedRoutes registers the routes that need a bearer token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", h.HandleMe)
}

// SignupRequest is the body of a plain account signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleSignup registers a plain (non-creator) account.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	result, err := h.authService.Signup(req.Email, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse(result))
}

// CreatorSignupRequest is the body of a creator signup: account identity
// plus the storefront slug and profile basics.
type CreatorSignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Password    string `json:"password" validate:"required,min=8"`
	Slug        string `json:"slug" validate:"required,storeslug"`
	FullName    string `json:"fullName" validate:"required,min=2,max=150"`
	Timezone    string `json:"timezone" validate:"omitempty,max=64"`
	CountryCode string `json:"countryCode" validate:"omitempty,len=2"`
}

// HandleCreatorSignup registers a creator account with an active storefront
// slug. Duplicate email, username or slug comes back as 409 naming the
// field; nothing is persisted on failure.
func (h *AuthHandler) HandleCreatorSignup(c *fiber.Ctx) error {
	var req CreatorSignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing creator signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	result, err := h.authService.SignupAsCreator(services.CreatorSignupInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Slug:        req.Slug,
		FullName:    req.FullName,
		Timezone:    req.Timezone,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse(result))
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates by email and password.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(authResponse(result))
}

// RefreshRequest is the body of a token refresh call.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// HandleRefresh rotates a refresh token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	result, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// HandleLogout revokes all of the caller's refresh tokens.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	if err := h.authService.Logout(userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// HandleMe returns the authenticated account.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	user, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// authResponse shapes the common signup/login payload.
func authResponse(result *services.AuthResult) fiber.Map {
	user := fiber.Map{
		"id":       result.User.ID,
		"email":    result.User.Email,
		"username": result.User.Username,
		"role":     result.User.Role,
	}
	if result.CreatorProfile != nil {
		user["creatorProfile"] = fiber.Map{
			"fullName": result.CreatorProfile.FullName,
			"timezone": result.CreatorProfile.Timezone,
		}
	}
	if result.StoreSlug != "" {
		user["storeSlug"] = result.StoreSlug
	}
	return fiber.Map{
		"user":         user,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jhasonu12/creator-store-backend/internal/handlers"
	"github.com/jhasonu12/creator-store-backend/internal/middleware"
	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds the full Fiber app against a fresh in-memory SQLite
// database, wired exactly like main but with analytics discarded.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CreatorProfile{},
		&models.StoreSlug{},
		&models.Store{},
		&models.StoreTheme{},
		&models.StoreSection{},
		&models.StorePage{},
		&models.PageBlock{},
		&models.Product{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("Failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	creatorRepo := repositories.NewGORMCreatorProfileRepository(db)
	slugRepo := repositories.NewGORMStoreSlugRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	sectionRepo := repositories.NewGORMSectionRepository(db)
	pageRepo := repositories.NewGORMPageRepository(db)
	blockRepo := repositories.NewGORMBlockRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	refreshRepo := repositories.NewGORMRefreshTokenRepository(db)

	tracker := services.NewEventTracker(nil, 16)
	t.Cleanup(tracker.Close)

	slugService := services.NewSlugService(slugRepo)
	authService := services.NewAuthService(db, userRepo, creatorRepo, slugRepo, storeRepo, refreshRepo, tracker, "test-access-secret", "test-refresh-secret")
	builderService := services.NewStoreBuilderService(storeRepo, creatorRepo, sectionRepo, pageRepo, blockRepo)
	productService := services.NewProductService(productRepo, creatorRepo)
	publicService := services.NewPublicService(storeRepo, creatorRepo, productRepo, sectionRepo, pageRepo, blockRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewSlugHandler(slugService).RegisterRoutes(apiV1)
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterRoutes(apiV1)
	handlers.NewPublicHandler(publicService, tracker).RegisterRoutes(apiV1)

	apiV1.Use(middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(apiV1)
	handlers.NewStoreBuilderHandler(builderService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)

	return app
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	resp.Body.Close()
	return resp, decoded
}

func signupCreator(t *testing.T, app *fiber.App, slug string) (token string, body map[string]interface{}) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/creator-signup", "", map[string]string{
		"email":    slug + "@example.com",
		"username": "user-" + slug,
		"password": "password123",
		"slug":     slug,
		"fullName": "Jane Creator",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ = body["accessToken"].(string)
	assert.NotEmpty(t, token)
	return token, body
}

func TestSlugCheckAndCreatorSignupFlow(t *testing.T) {
	app := setupApp(t)

	// A never-seen slug is available.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/store-slugs/check?slug=janes-store", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["available"])

	// Malformed slugs are rejected before touching the ledger.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/store-slugs/check?slug=No_Caps!", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Claim it.
	_, signupBody := signupCreator(t, app, "janes-store")
	user, _ := signupBody["user"].(map[string]interface{})
	assert.Equal(t, "CREATOR", user["role"])
	assert.Equal(t, "janes-store", user["storeSlug"])

	// Now it reads as taken.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/store-slugs/check?slug=janes-store", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "Slug is already in use", body["message"])

	// A second signup racing for the same slug conflicts and leaves no trace.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/creator-signup", "", map[string]string{
		"email":    "loser@example.com",
		"username": "loser",
		"password": "password123",
		"slug":     "janes-store",
		"fullName": "Late Arrival",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "loser@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthSessionFlow(t *testing.T) {
	app := setupApp(t)
	token, body := signupCreator(t, app, "session-store")
	refreshToken, _ := body["refreshToken"].(string)
	assert.NotEmpty(t, refreshToken)

	// The access token opens the session endpoint.
	resp, meBody := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me, _ := meBody["user"].(map[string]interface{})
	assert.Equal(t, "user-session-store", me["username"])

	// Rotation returns a new pair and kills the old refresh token.
	resp, rotated := doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, rotated["accessToken"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logout revokes the replacement too.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	newRefresh, _ := rotated["refreshToken"].(string)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refreshToken": newRefresh,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnauthenticatedAccess(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/stores/self", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidationErrors(t *testing.T) {
	app := setupApp(t)

	// Bad slug format fails validation with a field map.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/creator-signup", "", map[string]string{
		"email":    "x@example.com",
		"username": "xuser",
		"password": "password123",
		"slug":     "Bad_Slug",
		"fullName": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotNil(t, body["errors"])

	// Short password too.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    "y@example.com",
		"username": "yuser",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBuilderAndPublicStorefront(t *testing.T) {
	app := setupApp(t)
	token, _ := signupCreator(t, app, "public-store")

	// The store was created during signup.
	resp, storeBody := doJSON(t, app, http.MethodGet, "/api/v1/stores/self", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	store, _ := storeBody["store"].(map[string]interface{})
	storeID, _ := store["id"].(string)
	assert.NotEmpty(t, storeID)

	// Add two sections; positions append in order.
	resp, sectionBody := doJSON(t, app, http.MethodPost, "/api/v1/stores/"+storeID+"/sections", token, map[string]interface{}{
		"type": "links",
		"data": map[string]interface{}{"title": "My Links"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	section, _ := sectionBody["section"].(map[string]interface{})
	assert.Equal(t, float64(0), section["position"])

	resp, sectionBody = doJSON(t, app, http.MethodPost, "/api/v1/stores/"+storeID+"/sections", token, map[string]interface{}{
		"type": "about",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	section, _ = sectionBody["section"].(map[string]interface{})
	assert.Equal(t, float64(1), section["position"])

	// Create a product and publish it.
	resp, productBody := doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"type":  "digital",
		"title": "Go Ebook",
		"price": 19.99,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	product, _ := productBody["product"].(map[string]interface{})
	productID, _ := product["id"].(string)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/products/"+productID+"/status", token, map[string]string{
		"status": "PUBLISHED",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Set a theme.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/stores/"+storeID+"/theme", token, map[string]interface{}{
		"config": map[string]interface{}{"primary": "#112233"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The public storefront exposes all of it without auth.
	resp, view := doJSON(t, app, http.MethodGet, "/api/v1/public/stores/public-store", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	viewStore, _ := view["store"].(map[string]interface{})
	assert.Equal(t, "public-store", viewStore["slug"])
	sections, _ := view["sections"].([]interface{})
	assert.Len(t, sections, 2)
	products, _ := view["products"].([]interface{})
	assert.Len(t, products, 1)

	// Draft products stay hidden: create one and confirm the count holds.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"type":  "digital",
		"title": "Unfinished Draft",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, view = doJSON(t, app, http.MethodGet, "/api/v1/public/stores/public-store", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products, _ = view["products"].([]interface{})
	assert.Len(t, products, 1)

	// Unknown slugs 404.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/public/stores/no-such-store", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductReorderEndpoint(t *testing.T) {
	app := setupApp(t)
	token, _ := signupCreator(t, app, "catalog-store")

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
			"type":  "digital",
			"title": title,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		product, _ := body["product"].(map[string]interface{})
		ids = append(ids, product["id"].(string))
	}

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/products/reorder", token, map[string]interface{}{
		"products": []map[string]interface{}{
			{"id": ids[0], "position": 2},
			{"id": ids[1], "position": 0},
			{"id": ids[2], "position": 1},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	reordered, _ := body["products"].([]interface{})
	assert.Len(t, reordered, 3)
	first, _ := reordered[0].(map[string]interface{})
	assert.Equal(t, ids[0], first["id"])
	assert.Equal(t, float64(2), first["position"])

	// An unknown id fails the batch.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/products/reorder", token, map[string]interface{}{
		"products": []map[string]interface{}{
			{"id": "ghost", "position": 0},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlockReorderEndpoint(t *testing.T) {
	app := setupApp(t)
	token, _ := signupCreator(t, app, "layout-store")

	resp, storeBody := doJSON(t, app, http.MethodGet, "/api/v1/stores/self", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	store, _ := storeBody["store"].(map[string]interface{})
	storeID, _ := store["id"].(string)

	resp, pageBody := doJSON(t, app, http.MethodPost, "/api/v1/stores/"+storeID+"/pages", token, map[string]interface{}{
		"slug": "landing",
		"type": "custom",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	page, _ := pageBody["page"].(map[string]interface{})
	pageID, _ := page["id"].(string)

	var blockIDs []string
	for _, kind := range []string{"hero", "text", "gallery"} {
		resp, blockBody := doJSON(t, app, http.MethodPost, "/api/v1/pages/"+pageID+"/blocks", token, map[string]interface{}{
			"type": kind,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		block, _ := blockBody["block"].(map[string]interface{})
		blockIDs = append(blockIDs, block["id"].(string))
	}

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/pages/"+pageID+"/blocks/order", token, map[string]interface{}{
		"blocks": []map[string]interface{}{
			{"id": blockIDs[0], "position": 1},
			{"id": blockIDs[1], "position": 2},
			{"id": blockIDs[2], "position": 0},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	blocks, _ := body["blocks"].([]interface{})
	assert.Len(t, blocks, 3)

	// An unknown block aborts the batch untouched.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/pages/"+pageID+"/blocks/order", token, map[string]interface{}{
		"blocks": []map[string]interface{}{
			{"id": "ghost", "position": 0},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Listing is by position, so the last block now leads.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/pages/"+pageID+"/blocks", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	blocks, _ = body["blocks"].([]interface{})
	assert.Len(t, blocks, 3)
	first, _ := blocks[0].(map[string]interface{})
	assert.Equal(t, blockIDs[2], first["id"])
}

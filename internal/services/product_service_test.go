package services_test

import (
	"fmt"
	"testing"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
	"github.com/jhasonu12/creator-store-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *services.ProductService {
	return services.NewProductService(
		repositories.NewGORMProductRepository(db),
		repositories.NewGORMCreatorProfileRepository(db),
	)
}

// seedCreator inserts a user with a creator profile and returns the user id.
func seedCreator(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	user := &models.User{
		ID:       "user-" + name,
		Email:    name + "@example.com",
		Username: name,
		Password: "irrelevant",
		Role:     models.RoleCreator,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	profile := &models.CreatorProfile{
		ID:       "creator-" + name,
		UserID:   user.ID,
		FullName: name,
		Timezone: "UTC",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to seed creator profile: %v", err)
	}
	return user.ID
}

func TestProductService_CreateAppends(t *testing.T) {
	db := setupTestDB(t)
	service := newProductService(db)
	userID := seedCreator(t, db, "maker")

	for i, title := range []string{"Ebook", "Course", "Coaching"} {
		product, err := service.CreateProduct(userID, services.ProductInput{
			Type:  "digital",
			Title: title,
		})
		assert.NoError(t, err)
		assert.Equal(t, i, product.Position)
		assert.Equal(t, models.ProductDraft, product.Status)
		assert.Equal(t, "USD", product.Currency)
	}
}

func TestProductService_CreateRequiresCreatorProfile(t *testing.T) {
	db := setupTestDB(t)
	service := newProductService(db)

	user := &models.User{ID: "plain-user", Email: "plain@example.com", Username: "plain", Password: "x", Role: models.RoleUser}
	assert.NoError(t, db.Create(user).Error)

	_, err := service.CreateProduct(user.ID, services.ProductInput{Type: "digital", Title: "Nope"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_UpdateEnforcesOwnership(t *testing.T) {
	db := setupTestDB(t)
	service := newProductService(db)
	owner := seedCreator(t, db, "owner")
	intruder := seedCreator(t, db, "intruder")

	product, err := service.CreateProduct(owner, services.ProductInput{Type: "digital", Title: "Mine"})
	assert.NoError(t, err)

	_, err = service.UpdateProduct(product.ID, intruder, services.ProductInput{Title: "Stolen"})
	assert.ErrorIs(t, err, repositories.ErrForbidden)

	err = service.DeleteProduct(product.ID, intruder)
	assert.ErrorIs(t, err, repositories.ErrForbidden)

	updated, err := service.UpdateProduct(product.ID, owner, services.ProductInput{Title: "Still Mine"})
	assert.NoError(t, err)
	assert.Equal(t, "Still Mine", updated.Title)
}

func TestProductService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	service := newProductService(db)
	userID := seedCreator(t, db, "publisher")

	product, err := service.CreateProduct(userID, services.ProductInput{Type: "course", Title: "Go Basics"})
	assert.NoError(t, err)

	published, err := service.UpdateStatus(product.ID, userID, models.ProductPublished)
	assert.NoError(t, err)
	assert.Equal(t, models.ProductPublished, published.Status)

	_, err = service.UpdateStatus(product.ID, userID, models.ProductStatus("LIVE"))
	assert.ErrorIs(t, err, repositories.ErrInvalid)
}

func TestProductService_Reorder(t *testing.T) {
	db := setupTestDB(t)
	service := newProductService(db)
	userID := seedCreator(t, db, "sorter")

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		product, err := service.CreateProduct(userID, services.ProductInput{Type: "digital", Title: title})
		assert.NoError(t, err)
		ids = append(ids, product.ID)
	}

	products, err := service.ReorderProducts(userID, []repositories.PositionUpdate{
		{ID: ids[0], Position: 2},
		{ID: ids[2], Position: 0},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestProductService_Reorder_ForeignProductAborts(t *testing.T) {
	db := setupTestDB(t)
	service := newProductService(db)
	owner := seedCreator(t, db, "owner")
	intruder := seedCreator(t, db, "intruder")

	mine, err := service.CreateProduct(owner, services.ProductInput{Type: "digital", Title: "Mine"})
	assert.NoError(t, err)
	theirs, err := service.CreateProduct(intruder, services.ProductInput{Type: "digital", Title: "Theirs"})
	assert.NoError(t, err)

	// Touching someone else's product fails the whole batch.
	_, err = service.ReorderProducts(owner, []repositories.PositionUpdate{
		{ID: mine.ID, Position: 7},
		{ID: theirs.ID, Position: 8},
	})
	assert.ErrorIs(t, err, repositories.ErrForbidden)

	kept, err := service.GetProduct(mine.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, kept.Position)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListByCreator(creatorID string) ([]models.Product, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) ListPublishedByCreator(creatorID string) ([]models.Product, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) NextPosition(creatorID string) (int, error) {
	args := m.Called(creatorID)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) Reorder(creatorID string, moves []repositories.PositionUpdate) ([]models.Product, error) {
	args := m.Called(creatorID, moves)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCreatorProfileRepository is a mock implementation of repositories.CreatorProfileRepository
type MockCreatorProfileRepository struct {
	mock.Mock
}

func (m *MockCreatorProfileRepository) WithTx(tx *gorm.DB) repositories.CreatorProfileRepository {
	m.Called(tx)
	return m
}

func (m *MockCreatorProfileRepository) Create(profile *models.CreatorProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockCreatorProfileRepository) GetByUserID(userID string) (*models.CreatorProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatorProfile), args.Error(1)
}

func (m *MockCreatorProfileRepository) GetByID(id string) (*models.CreatorProfile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatorProfile), args.Error(1)
}

func TestProductService_OwnershipCheckErrorPropagation(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCreators := new(MockCreatorProfileRepository)
	service := services.NewProductService(mockProducts, mockCreators)

	product := &models.Product{ID: "prod-1", CreatorID: "creator-1", Title: "Mine"}

	// A missing creator profile is a permission denial.
	mockProducts.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCreators.On("GetByUserID", "user-1").
		Return(nil, fmt.Errorf("%w: creator profile for user user-1", repositories.ErrNotFound)).Once()

	_, err := service.UpdateProduct("prod-1", "user-1", services.ProductInput{Title: "Renamed"})
	assert.ErrorIs(t, err, repositories.ErrForbidden)

	// A storage failure during the profile lookup is not.
	mockProducts.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCreators.On("GetByUserID", "user-1").
		Return(nil, fmt.Errorf("connection refused")).Once()

	_, err = service.UpdateProduct("prod-1", "user-1", services.ProductInput{Title: "Renamed"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrForbidden)

	mockProducts.AssertExpectations(t)
	mockCreators.AssertExpectations(t)
}

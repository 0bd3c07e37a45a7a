package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"estimator/internal/domain"
)

// Mock repositories

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil && p != nil {
		p.ID = 11 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id int64, name, label string) error {
	args := m.Called(ctx, id, name, label)
	return args.Error(0)
}

func (m *MockCategoryRepository) InUse(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_CreateProduct(t *testing.T) {
	products := new(MockProductRepository)
	products.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(products, new(MockCategoryRepository))

	product, err := service.CreateProduct(context.Background(), ProductRequest{
		SKU:      " CAM-4MP ",
		Name:     "  4MP IP Camera ",
		Category: "hardware",
		UnitCost: 150,
	})

	assert.NoError(t, err)
	assert.Equal(t, "CAM-4MP", product.SKU)
	assert.Equal(t, "4MP IP Camera", product.Name)
	assert.Equal(t, int64(11), product.ID)

	_, err = service.CreateProduct(context.Background(), ProductRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestService_BulkDeleteProducts(t *testing.T) {
	products := new(MockProductRepository)
	products.On("BulkDelete", mock.Anything, []int64{1, 2, 3}).Return(int64(2), nil)

	service := NewService(products, new(MockCategoryRepository))

	deleted, err := service.BulkDeleteProducts(context.Background(), []int64{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = service.BulkDeleteProducts(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoIDs)
}

func TestService_ImportProducts(t *testing.T) {
	products := new(MockProductRepository)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Door Sensor"
	})).Return(nil)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Broken Row"
	})).Return(errors.New("constraint failed"))

	service := NewService(products, new(MockCategoryRepository))

	result := service.ImportProducts(context.Background(), []ProductImport{
		{Name: ""}, // skipped silently
		{Name: "Door Sensor", UnitCost: 25},
		{Name: "Broken Row"},
	})

	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 3")

	// empty category falls back to hardware
	created := products.Calls[0].Arguments.Get(1).(*domain.Product)
	assert.Equal(t, "hardware", created.Category)
}

func TestService_CreateCategory(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("NameExists", mock.Anything, "fire_safety", int64(0)).Return(false, nil)
	categories.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(new(MockProductRepository), categories)

	// label defaults to the name when omitted
	category, err := service.CreateCategory(context.Background(), CategoryRequest{Name: "fire_safety"})
	assert.NoError(t, err)
	assert.Equal(t, "fire_safety", category.Label)
}

func TestService_CreateCategory_Duplicate(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("NameExists", mock.Anything, "hardware", int64(0)).Return(true, nil)

	service := NewService(new(MockProductRepository), categories)

	_, err := service.CreateCategory(context.Background(), CategoryRequest{Name: "hardware"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestService_DeleteCategory_InUse(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("InUse", mock.Anything, int64(1)).Return(int64(12), nil)

	service := NewService(new(MockProductRepository), categories)

	err := service.DeleteCategory(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

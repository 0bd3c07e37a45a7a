package packages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"estimator/internal/domain"
)

// Mock repositories

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) GetAllActive(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) Create(ctx context.Context, p *domain.Package, preserveOrder bool) error {
	args := m.Called(ctx, p, preserveOrder)
	if args.Error(0) == nil && p != nil {
		p.ID = 77 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, p *domain.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

func TestService_Create_RecomputesBasePrice(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("Create", mock.Anything, mock.Anything, false).Return(nil)

	service := NewService(repo, new(MockCategoryRepository))

	pkg, err := service.Create(context.Background(), PackageRequest{
		Name: "Basic Camera Package",
		LineItems: []domain.LineItem{
			// client-submitted line_total is stale on purpose
			{Description: "Camera", Quantity: 4, UnitCost: 150, Category: domain.CategoryHardware, MarkupPercent: 25, LineTotal: 1.00},
			{Description: "Install", Quantity: 8, UnitCost: 75, Category: domain.CategoryLabor, MarkupPercent: 0},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 750.00, pkg.LineItems[0].LineTotal)
	assert.Equal(t, 600.00, pkg.LineItems[1].LineTotal)
	assert.Equal(t, 1350.00, pkg.BasePrice)
	assert.Equal(t, domain.PackageActive, pkg.Status)
	assert.Equal(t, "camera_systems", pkg.Category)
}

func TestService_Create_Validation(t *testing.T) {
	service := NewService(new(MockPackageRepository), new(MockCategoryRepository))

	_, err := service.Create(context.Background(), PackageRequest{Name: " "})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = service.Create(context.Background(), PackageRequest{
		Name: "Empty",
		LineItems: []domain.LineItem{
			{Description: "   ", Quantity: 1, UnitCost: 10},
		},
	})
	assert.ErrorIs(t, err, ErrNoLineItems)
}

func TestService_Duplicate_ForcesActive(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Package{
		ID:        9,
		Name:      "Retired Package",
		Category:  "camera_systems",
		BasePrice: 500,
		Status:    domain.PackageInactive,
		LineItems: []domain.LineItem{
			{Description: "Camera", Quantity: 2, UnitCost: 100, MarkupPercent: 25, LineTotal: 250, SortOrder: 1},
		},
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything, true).Return(nil)

	service := NewService(repo, new(MockCategoryRepository))
	dup, err := service.Duplicate(context.Background(), 9)

	assert.NoError(t, err)
	assert.Equal(t, "Copy of Retired Package", dup.Name)
	assert.Equal(t, domain.PackageActive, dup.Status)
	assert.Equal(t, 500.00, dup.BasePrice)
	assert.Len(t, dup.LineItems, 1)
	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything, true)
}

func TestService_Expand_RecomputesLineTotals(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Package{
		ID:   4,
		Name: "Pro Package",
		LineItems: []domain.LineItem{
			// stored total predates a cost change
			{Description: "Camera", Quantity: 2, UnitCost: 120, MarkupPercent: 25, LineTotal: 250, SortOrder: 1},
		},
	}, nil)

	service := NewService(repo, new(MockCategoryRepository))
	items, err := service.Expand(context.Background(), 4)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 300.00, items[0].LineTotal)
	assert.Zero(t, items[0].SortOrder)
}

func TestService_DeleteCategory_InUse(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("InUse", mock.Anything, int64(2)).Return(int64(3), nil)

	service := NewService(new(MockPackageRepository), categories)

	err := service.DeleteCategory(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_CreateCategory_Validation(t *testing.T) {
	categories := new(MockCategoryRepository)
	service := NewService(new(MockPackageRepository), categories)

	// package categories require both name and label
	_, err := service.CreateCategory(context.Background(), CategoryRequest{Name: "fire_safety"})
	assert.ErrorIs(t, err, ErrCategoryRequired)

	categories.On("NameExists", mock.Anything, "fire_safety", int64(0)).Return(true, nil)
	_, err = service.CreateCategory(context.Background(), CategoryRequest{Name: "fire_safety", Label: "Fire Safety"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

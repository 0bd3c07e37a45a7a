package estimates

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"estimator/internal/domain"
	"estimator/internal/pricing"
)

// Mock repositories

type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) Create(ctx context.Context, e *domain.Estimate) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil && e != nil {
		e.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockEstimateRepository) Update(ctx context.Context, e *domain.Estimate) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEstimateRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockEstimateRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEstimateRepository) GetByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) GetRecent(ctx context.Context, limit int) ([]domain.EstimateSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EstimateSummary), args.Error(1)
}

func (m *MockEstimateRepository) GetAllDetailed(ctx context.Context) ([]domain.Estimate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Estimate), args.Error(1)
}

type MockSettingsProvider struct {
	mock.Mock
}

func (m *MockSettingsProvider) Get(ctx context.Context) (pricing.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pricing.Settings), args.Error(1)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(eventType string, data any) {
	m.Called(eventType, data)
}

func defaultSettings() pricing.Settings {
	return pricing.Settings{"tax_rate": "13.00"}
}

// Two hardware lines at 25% markup: 2*100*1.25 = 250.00 subtotal,
// 32.50 tax, 282.50 total.
func validRequest() EstimateRequest {
	return EstimateRequest{
		ClientName:  "Acme Warehousing",
		Subtotal:    250.00,
		TaxAmount:   32.50,
		TotalAmount: 282.50,
		LineItems: []domain.LineItem{
			{Description: "Camera", Quantity: 1, UnitCost: 100, Category: domain.CategoryHardware, MarkupPercent: 25},
			{Description: "NVR", Quantity: 1, UnitCost: 100, Category: domain.CategoryHardware, MarkupPercent: 25},
		},
	}
}

func TestService_Create_Success(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("Broadcast", "estimate.created", mock.Anything).Return()

	service := NewService(repo, settings, events)
	estimate, err := service.Create(context.Background(), 7, validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), estimate.CreatedBy)
	assert.Equal(t, 250.00, estimate.Subtotal)
	assert.Equal(t, 32.50, estimate.TaxAmount)
	assert.Equal(t, 282.50, estimate.TotalAmount)
	assert.Equal(t, domain.EstimateDraft, estimate.Status)
	assert.True(t, strings.HasPrefix(estimate.EstimateNumber, "EST-"))
	events.AssertCalled(t, "Broadcast", "estimate.created", mock.Anything)
}

func TestService_Create_WithCommission(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(pricing.Settings{
		"tax_rate":             "13.00",
		"sales_rep_commission": "5.00",
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("Broadcast", mock.Anything, mock.Anything).Return()

	service := NewService(repo, settings, events)

	// 250.00 subtotal + 32.50 tax + 12.50 commission
	req := validRequest()
	req.ApplyCommission = true
	req.TotalAmount = 295.00

	estimate, err := service.Create(context.Background(), 7, req)
	assert.NoError(t, err)
	assert.Equal(t, 250.00, estimate.Subtotal)
	assert.Equal(t, 32.50, estimate.TaxAmount)
	assert.Equal(t, 295.00, estimate.TotalAmount)

	// the same figures without the flag no longer add up
	req.ApplyCommission = false
	_, err = service.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrTotalsMismatch)
}

func TestService_Create_TotalsMismatch(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(defaultSettings(), nil)

	service := NewService(repo, settings, events)

	req := validRequest()
	req.TotalAmount = 300.00 // drifted beyond the cent tolerance

	_, err := service.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrTotalsMismatch)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ToleratesRoundingDrift(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("Broadcast", mock.Anything, mock.Anything).Return()

	service := NewService(repo, settings, events)

	req := validRequest()
	req.Subtotal = 250.01 // a cent off is still accepted

	estimate, err := service.Create(context.Background(), 7, req)
	assert.NoError(t, err)
	// stored figures are the server-computed ones
	assert.Equal(t, 250.00, estimate.Subtotal)
}

func TestService_Create_RetriesNumberCollision(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	collision := errors.New("UNIQUE constraint failed: estimates.estimate_number")
	repo.On("Create", mock.Anything, mock.Anything).Return(collision).Twice()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	events.On("Broadcast", mock.Anything, mock.Anything).Return()

	service := NewService(repo, settings, events)
	estimate, err := service.Create(context.Background(), 7, validRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, estimate.EstimateNumber)
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestService_Create_NumberExhausted(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	collision := errors.New("UNIQUE constraint failed: estimates.estimate_number")
	repo.On("Create", mock.Anything, mock.Anything).Return(collision)

	service := NewService(repo, settings, events)
	_, err := service.Create(context.Background(), 7, validRequest())

	assert.ErrorIs(t, err, ErrNumberExhausted)
	repo.AssertNumberOfCalls(t, "Create", numberAttempts)
}

func TestService_Create_Validation(t *testing.T) {
	service := NewService(new(MockEstimateRepository), new(MockSettingsProvider), new(MockBroadcaster))

	req := validRequest()
	req.ClientName = "   "
	_, err := service.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrClientNameRequired)

	req = validRequest()
	req.LineItems = nil
	_, err = service.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrNoLineItems)
}

func TestService_Update_KeepsNumber(t *testing.T) {
	repo := new(MockEstimateRepository)
	settings := new(MockSettingsProvider)
	events := new(MockBroadcaster)

	settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, settings, events)
	estimate, err := service.Update(context.Background(), 5, validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), estimate.ID)
	assert.Empty(t, estimate.EstimateNumber)
	repo.AssertCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := new(MockEstimateRepository)
	events := new(MockBroadcaster)

	repo.On("UpdateStatus", mock.Anything, int64(3), "on_hold").Return(nil)
	events.On("Broadcast", "estimate.status_changed", mock.Anything).Return()

	service := NewService(repo, new(MockSettingsProvider), events)

	// any non-empty label is accepted
	assert.NoError(t, service.UpdateStatus(context.Background(), 3, "on_hold"))
	events.AssertCalled(t, "Broadcast", "estimate.status_changed", mock.Anything)

	assert.ErrorIs(t, service.UpdateStatus(context.Background(), 3, "  "), ErrStatusRequired)
}

func TestService_Import_SkipsAndCollects(t *testing.T) {
	repo := new(MockEstimateRepository)
	events := new(MockBroadcaster)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, new(MockSettingsProvider), events)

	rows := []EstimateImport{
		{ClientName: ""}, // skipped, not an error
		{
			ClientName: "Importer Inc",
			Subtotal:   100, TaxAmount: 13, TotalAmount: 113,
			LineItems: []domain.LineItem{
				{Description: "Sensor", Quantity: 2, UnitCost: 40, LineTotal: 100},
				{Description: ""}, // dropped
			},
		},
	}

	result := service.Import(context.Background(), rows)

	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	repo.AssertNumberOfCalls(t, "Create", 1)

	created := repo.Calls[0].Arguments.Get(1).(*domain.Estimate)
	assert.Len(t, created.LineItems, 1)
	assert.Equal(t, "residential", created.ProjectType)
	assert.Equal(t, domain.CategoryHardware, created.LineItems[0].Category)
	// imported figures are stored as submitted
	assert.Equal(t, 113.0, created.TotalAmount)
}

func TestService_Import_RowErrorFlagsBatch(t *testing.T) {
	repo := new(MockEstimateRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	service := NewService(repo, new(MockSettingsProvider), new(MockBroadcaster))

	result := service.Import(context.Background(), []EstimateImport{{ClientName: "Acme"}})

	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Estimate 1:")
}

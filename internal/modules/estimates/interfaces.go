package estimates

import (
	"context"

	"estimator/internal/domain"
	"estimator/internal/pricing"
)

type EstimateRepository interface {
	Create(ctx context.Context, e *domain.Estimate) error
	Update(ctx context.Context, e *domain.Estimate) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Estimate, error)
	GetRecent(ctx context.Context, limit int) ([]domain.EstimateSummary, error)
	GetAllDetailed(ctx context.Context) ([]domain.Estimate, error)
}

// SettingsProvider supplies the current pricing settings for totals
// validation.
type SettingsProvider interface {
	Get(ctx context.Context) (pricing.Settings, error)
}

// Broadcaster pushes estimate lifecycle events to connected clients.
type Broadcaster interface {
	Broadcast(eventType string, data any)
}

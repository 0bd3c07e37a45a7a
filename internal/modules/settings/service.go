package settings

import (
	"context"

	"estimator/internal/pricing"
)

// Repository is the settings persistence surface.
type Repository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the flat settings map, typed for the pricing engine.
func (s *Service) Get(ctx context.Context) (pricing.Settings, error) {
	values, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.Settings(values), nil
}

// Update upserts every submitted setting by name.
func (s *Service) Update(ctx context.Context, values map[string]string) error {
	return s.repo.Upsert(ctx, values)
}

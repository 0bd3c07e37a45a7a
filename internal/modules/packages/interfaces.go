package packages

import (
	"context"

	"estimator/internal/domain"
)

type PackageRepository interface {
	GetAllActive(ctx context.Context) ([]domain.Package, error)
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
	Create(ctx context.Context, p *domain.Package, preserveOrder bool) error
	Update(ctx context.Context, p *domain.Package) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, id int64, name, label string) error
	InUse(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

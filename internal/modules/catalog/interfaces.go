package catalog

import (
	"context"

	"estimator/internal/domain"
)

type ProductRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
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

package catalog

import (
	"context"
	"fmt"
	"strings"

	"estimator/internal/domain"
)

type Service struct {
	products   ProductRepository
	categories CategoryRepository
}

func NewService(products ProductRepository, categories CategoryRepository) *Service {
	return &Service{products: products, categories: categories}
}

/* ---------- PRODUCTS ---------- */

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	product := &domain.Product{
		SKU:         strings.TrimSpace(req.SKU),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		UnitCost:    req.UnitCost,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SKU = strings.TrimSpace(req.SKU)
	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	product.Category = req.Category
	product.UnitCost = req.UnitCost

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) BulkDeleteProducts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	return s.products.BulkDelete(ctx, ids)
}

// ImportProducts is the JSON bulk path: rows without a name are skipped
// silently, failed rows are collected and counted against the batch.
func (s *Service) ImportProducts(ctx context.Context, rows []ProductImport) ImportResult {
	result := ImportResult{}
	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}

		category := row.Category
		if category == "" {
			category = string(domain.CategoryHardware)
		}

		product := &domain.Product{
			SKU:         strings.TrimSpace(row.SKU),
			Name:        strings.TrimSpace(row.Name),
			Description: row.Description,
			Category:    category,
			UnitCost:    row.UnitCost,
		}
		if err := s.products.Create(ctx, product); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: could not be imported", i+1))
			continue
		}
		result.Imported++
	}
	return result
}

/* ---------- PRODUCT CATEGORIES ---------- */

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = name
	}

	exists, err := s.categories.NameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &domain.Category{Name: name, Label: label}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrNameRequired
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = name
	}

	exists, err := s.categories.NameExists(ctx, name, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrCategoryExists
	}

	return s.categories.Update(ctx, id, name, label)
}

// DeleteCategory refuses while any product still references the category
// by name. The linkage is a plain string, so the guard is an explicit
// count rather than a database constraint.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	count, err := s.categories.InUse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categories.Delete(ctx, id)
}

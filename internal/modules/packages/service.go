package packages

import (
	"context"
	"strings"

	"estimator/internal/domain"
	"estimator/internal/pricing"
)

const defaultCategory = "camera_systems"

type Service struct {
	packages   PackageRepository
	categories CategoryRepository
}

func NewService(packages PackageRepository, categories CategoryRepository) *Service {
	return &Service{packages: packages, categories: categories}
}

func (s *Service) List(ctx context.Context) ([]domain.Package, error) {
	return s.packages.GetAllActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Package, error) {
	return s.packages.GetByID(ctx, id)
}

// Create stores a package with its line items. Line totals and the base
// price are always recomputed server-side; client-submitted figures are
// ignored.
func (s *Service) Create(ctx context.Context, req PackageRequest) (*domain.Package, error) {
	pkg, err := s.buildPackage(req)
	if err != nil {
		return nil, err
	}

	if err := s.packages.Create(ctx, pkg, false); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Update replaces the package and its entire line-item set. Items omitted
// from the request are gone afterwards; this is a full replace, not a
// merge.
func (s *Service) Update(ctx context.Context, id int64, req PackageRequest) (*domain.Package, error) {
	pkg, err := s.buildPackage(req)
	if err != nil {
		return nil, err
	}
	pkg.ID = id

	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.packages.Delete(ctx, id)
}

// Duplicate deep-copies a package and its line items. The copy always
// starts active regardless of the source status, and keeps the source
// sort order.
func (s *Service) Duplicate(ctx context.Context, id int64) (*domain.Package, error) {
	original, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	copyPkg := &domain.Package{
		Name:        "Copy of " + original.Name,
		Description: original.Description,
		Category:    original.Category,
		BasePrice:   original.BasePrice,
		Status:      domain.PackageActive,
		LineItems:   original.LineItems,
	}

	if err := s.packages.Create(ctx, copyPkg, true); err != nil {
		return nil, err
	}
	return copyPkg, nil
}

// Expand returns independent copies of the package's line items for
// insertion into an estimate. Each line_total is recomputed from the
// copied quantity/cost/markup so the estimate reflects pricing at use
// time rather than whatever was stored when the package was built.
func (s *Service) Expand(ctx context.Context, id int64) ([]domain.LineItem, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := pricing.Recalculate(pkg.LineItems)
	for i := range items {
		items[i].SortOrder = 0
	}
	return items, nil
}

func (s *Service) buildPackage(req PackageRequest) (*domain.Package, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	items := make([]domain.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	items = pricing.Recalculate(items)

	category := req.Category
	if category == "" {
		category = defaultCategory
	}
	status := domain.PackageStatus(req.Status)
	if status == "" {
		status = domain.PackageActive
	}

	return &domain.Package{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    category,
		BasePrice:   pricing.BasePrice(items),
		Status:      status,
		LineItems:   items,
	}, nil
}

/* ---------- PACKAGE CATEGORIES ---------- */

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	label := strings.TrimSpace(req.Label)
	if name == "" || label == "" {
		return nil, ErrCategoryRequired
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
	label := strings.TrimSpace(req.Label)
	if name == "" || label == "" {
		return ErrCategoryRequired
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

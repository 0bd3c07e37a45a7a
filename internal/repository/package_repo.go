package repository

import (
	"context"
	"time"

	"estimator/internal/domain"

	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

type packageModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category"`
	BasePrice   float64   `gorm:"column:base_price;type:decimal(10,2)"`
	Status      string    `gorm:"column:status;default:active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (packageModel) TableName() string { return "packages" }

type packageLineItemModel struct {
	ID            int64   `gorm:"column:id;primaryKey"`
	PackageID     int64   `gorm:"column:package_id;index"`
	Description   string  `gorm:"column:description"`
	Quantity      float64 `gorm:"column:quantity"`
	UnitCost      float64 `gorm:"column:unit_cost;type:decimal(10,2)"`
	Category      string  `gorm:"column:category"`
	MarkupPercent float64 `gorm:"column:markup_percent;type:decimal(5,2)"`
	LineTotal     float64 `gorm:"column:line_total;type:decimal(10,2)"`
	SortOrder     int     `gorm:"column:sort_order"`
}

func (packageLineItemModel) TableName() string { return "package_line_items" }

func toDomainPackage(m packageModel, items []packageLineItemModel) *domain.Package {
	p := &domain.Package{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		BasePrice:   m.BasePrice,
		Status:      domain.PackageStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, item := range items {
		p.LineItems = append(p.LineItems, domain.LineItem{
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitCost:      item.UnitCost,
			Category:      domain.PricingCategory(item.Category),
			MarkupPercent: item.MarkupPercent,
			LineTotal:     item.LineTotal,
			SortOrder:     item.SortOrder,
		})
	}
	return p
}

func (r *PackageRepository) GetAllActive(ctx context.Context) ([]domain.Package, error) {
	var models []packageModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PackageActive)).
		Order("name ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	packages := make([]domain.Package, len(models))
	for i, m := range models {
		packages[i] = *toDomainPackage(m, nil)
	}
	return packages, nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	var m packageModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}

	var items []packageLineItemModel
	if err := r.db.WithContext(ctx).
		Where("package_id = ?", id).
		Order("sort_order ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomainPackage(m, items), nil
}

// Create inserts the package row and its line items atomically. Items get
// fresh sequential sort_order starting at 1 unless preserveOrder is set
// (duplication keeps the source ordering).
func (r *PackageRepository) Create(ctx context.Context, p *domain.Package, preserveOrder bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := packageModel{
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			BasePrice:   p.BasePrice,
			Status:      string(p.Status),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		p.ID = m.ID
		p.CreatedAt = m.CreatedAt
		p.UpdatedAt = m.UpdatedAt

		return insertPackageItems(tx, m.ID, p.LineItems, preserveOrder)
	})
}

// Update replaces the package row fields and its whole line-item set in
// one transaction, so readers never observe a half-written package.
func (r *PackageRepository) Update(ctx context.Context, p *domain.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&packageModel{}).Where("id = ?", p.ID).Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"category":    p.Category,
			"base_price":  p.BasePrice,
			"status":      string(p.Status),
			"updated_at":  time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("package_id = ?", p.ID).Delete(&packageLineItemModel{}).Error; err != nil {
			return err
		}
		return insertPackageItems(tx, p.ID, p.LineItems, false)
	})
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&packageLineItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&packageModel{}, id).Error
	})
}

func insertPackageItems(tx *gorm.DB, packageID int64, items []domain.LineItem, preserveOrder bool) error {
	for i, item := range items {
		sortOrder := i + 1
		if preserveOrder {
			sortOrder = item.SortOrder
		}
		m := packageLineItemModel{
			PackageID:     packageID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitCost:      item.UnitCost,
			Category:      string(item.Category),
			MarkupPercent: item.MarkupPercent,
			LineTotal:     item.LineTotal,
			SortOrder:     sortOrder,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"estimator/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	SKU         string    `gorm:"column:sku"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category"`
	UnitCost    float64   `gorm:"column:unit_cost;type:decimal(10,2)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (productModel) TableName() string { return "products_services" }

func toDomainProduct(m productModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		UnitCost:    m.UnitCost,
		CreatedAt:   m.CreatedAt,
	}
}

func toProductModel(p *domain.Product) productModel {
	return productModel{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		UnitCost:    p.UnitCost,
		CreatedAt:   p.CreatedAt,
	}
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	tx := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	products := make([]domain.Product, len(models))
	for i, m := range models {
		products[i] = toDomainProduct(m)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	p := toDomainProduct(m)
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = toDomainProduct(m)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"sku":         p.SKU,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"unit_cost":   p.UnitCost,
	}).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&productModel{}, id).Error
}

// BulkDelete removes the given ids and returns how many rows went away.
func (r *ProductRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&productModel{})
	return tx.RowsAffected, tx.Error
}

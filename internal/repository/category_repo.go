package repository

import (
	"context"
	"time"

	"estimator/internal/domain"

	"gorm.io/gorm"
)

// CategoryRepository serves one of the two parallel category tables
// (product categories and package categories are never shared). refTable
// and refColumn locate the rows that reference a category by name, for
// the in-use guard and the rename cascade.
type CategoryRepository struct {
	db        *gorm.DB
	table     string
	refTable  string
	refColumn string
}

func NewProductCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db, table: "product_categories", refTable: "products_services", refColumn: "category"}
}

func NewPackageCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db, table: "package_categories", refTable: "packages", refColumn: "category"}
}

type categoryRow struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Label     string    `gorm:"column:label"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Typed aliases so AutoMigrate can create both tables.

type ProductCategoryModel categoryRow

func (ProductCategoryModel) TableName() string { return "product_categories" }

type PackageCategoryModel categoryRow

func (PackageCategoryModel) TableName() string { return "package_categories" }

func toDomainCategory(m categoryRow) domain.Category {
	return domain.Category{ID: m.ID, Name: m.Name, Label: m.Label, CreatedAt: m.CreatedAt}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryRow
	tx := r.db.WithContext(ctx).Table(r.table).Order("name ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	categories := make([]domain.Category, len(rows))
	for i, m := range rows {
		categories[i] = toDomainCategory(m)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryRow
	tx := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	c := toDomainCategory(m)
	return &c, nil
}

// NameExists reports whether another category row (excluding excludeID)
// already carries the name.
func (r *CategoryRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Table(r.table).
		Where("name = ? AND id != ?", name, excludeID).
		Count(&count)
	return count > 0, tx.Error
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := categoryRow{Name: c.Name, Label: c.Label}
	tx := r.db.WithContext(ctx).Table(r.table).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

// Update renames the category and cascades the new name to every
// referencing row in the same transaction, so the loose string linkage
// cannot drift after a rename.
func (r *CategoryRepository) Update(ctx context.Context, id int64, name, label string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current categoryRow
		if err := tx.Table(r.table).Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		if err := tx.Table(r.table).Where("id = ?", id).
			Updates(map[string]any{"name": name, "label": label}).Error; err != nil {
			return err
		}

		if current.Name != name {
			if err := tx.Table(r.refTable).
				Where(r.refColumn+" = ?", current.Name).
				Update(r.refColumn, name).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// InUse counts referencing rows, matching by the category's current name.
func (r *CategoryRepository) InUse(ctx context.Context, id int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Table(r.refTable).
		Where(r.refColumn+" = (?)", r.db.Table(r.table).Select("name").Where("id = ?", id)).
		Count(&count)
	return count, tx.Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(&categoryRow{}).Error
}

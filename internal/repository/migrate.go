package repository

import "gorm.io/gorm"

// Migrate creates or updates every table this package owns. Both
// category tables share a row shape, so each gets its own typed model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&settingModel{},
		&ProductCategoryModel{},
		&PackageCategoryModel{},
		&productModel{},
		&packageModel{},
		&packageLineItemModel{},
		&estimateModel{},
		&lineItemModel{},
	)
}

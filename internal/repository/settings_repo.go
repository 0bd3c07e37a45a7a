package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

type settingModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	SettingName  string    `gorm:"column:setting_name;uniqueIndex"`
	SettingValue string    `gorm:"column:setting_value"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (settingModel) TableName() string { return "settings" }

// GetAll returns the full setting_name -> setting_value map.
func (r *SettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var models []settingModel
	tx := r.db.WithContext(ctx).Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	settings := make(map[string]string, len(models))
	for _, m := range models {
		settings[m.SettingName] = m.SettingValue
	}
	return settings, nil
}

// Upsert writes every entry by name, inserting missing rows and touching
// updated_at on existing ones.
func (r *SettingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for name, value := range values {
			m := settingModel{SettingName: name, SettingValue: value, UpdatedAt: now}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_name"}},
				DoUpdates: clause.Assignments(map[string]any{"setting_value": value, "updated_at": now}),
			}).Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedDefaults inserts settings that are not present yet, leaving existing
// values untouched.
func (r *SettingsRepository) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for name, value := range defaults {
		m := settingModel{SettingName: name, SettingValue: value}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_name"}},
			DoNothing: true,
		}).Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"estimator/internal/domain"

	"gorm.io/gorm"
)

type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

type estimateModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	EstimateNumber string    `gorm:"column:estimate_number;uniqueIndex"`
	ClientName     string    `gorm:"column:client_name"`
	ClientEmail    string    `gorm:"column:client_email"`
	ClientPhone    string    `gorm:"column:client_phone"`
	ProjectAddress string    `gorm:"column:project_address"`
	ProjectType    string    `gorm:"column:project_type"`
	SystemTypes    string    `gorm:"column:system_types"`
	Subtotal       float64   `gorm:"column:subtotal;type:decimal(10,2)"`
	TaxAmount      float64   `gorm:"column:tax_amount;type:decimal(10,2)"`
	TotalAmount    float64   `gorm:"column:total_amount;type:decimal(10,2)"`
	Notes          string    `gorm:"column:notes"`
	Status         string    `gorm:"column:status;default:draft"`
	CreatedBy      int64     `gorm:"column:created_by"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (estimateModel) TableName() string { return "estimates" }

type lineItemModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	EstimateID    int64     `gorm:"column:estimate_id;index"`
	Description   string    `gorm:"column:description"`
	Quantity      float64   `gorm:"column:quantity"`
	UnitCost      float64   `gorm:"column:unit_cost;type:decimal(10,2)"`
	Category      string    `gorm:"column:category"`
	MarkupPercent float64   `gorm:"column:markup_percent;type:decimal(5,2)"`
	LineTotal     float64   `gorm:"column:line_total;type:decimal(10,2)"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (lineItemModel) TableName() string { return "line_items" }

func toEstimateModel(e *domain.Estimate) estimateModel {
	systemTypes := e.SystemTypes
	if systemTypes == nil {
		systemTypes = []string{}
	}
	encoded, _ := json.Marshal(systemTypes)

	return estimateModel{
		ID:             e.ID,
		EstimateNumber: e.EstimateNumber,
		ClientName:     e.ClientName,
		ClientEmail:    e.ClientEmail,
		ClientPhone:    e.ClientPhone,
		ProjectAddress: e.ProjectAddress,
		ProjectType:    e.ProjectType,
		SystemTypes:    string(encoded),
		Subtotal:       e.Subtotal,
		TaxAmount:      e.TaxAmount,
		TotalAmount:    e.TotalAmount,
		Notes:          e.Notes,
		Status:         string(e.Status),
		CreatedBy:      e.CreatedBy,
	}
}

func toDomainEstimate(m estimateModel, items []lineItemModel) *domain.Estimate {
	var systemTypes []string
	if m.SystemTypes != "" {
		_ = json.Unmarshal([]byte(m.SystemTypes), &systemTypes)
	}
	if systemTypes == nil {
		systemTypes = []string{}
	}

	e := &domain.Estimate{
		ID:             m.ID,
		EstimateNumber: m.EstimateNumber,
		ClientName:     m.ClientName,
		ClientEmail:    m.ClientEmail,
		ClientPhone:    m.ClientPhone,
		ProjectAddress: m.ProjectAddress,
		ProjectType:    m.ProjectType,
		SystemTypes:    systemTypes,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		TotalAmount:    m.TotalAmount,
		Notes:          m.Notes,
		Status:         domain.EstimateStatus(m.Status),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, item := range items {
		e.LineItems = append(e.LineItems, domain.LineItem{
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitCost:      item.UnitCost,
			Category:      domain.PricingCategory(item.Category),
			MarkupPercent: item.MarkupPercent,
			LineTotal:     item.LineTotal,
		})
	}
	return e
}

// Create inserts the estimate row and its line items in one transaction.
// A unique-violation on estimate_number is returned as-is so the service
// can retry with a fresh number.
func (r *EstimateRepository) Create(ctx context.Context, e *domain.Estimate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toEstimateModel(e)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		e.ID = m.ID
		e.CreatedAt = m.CreatedAt
		e.UpdatedAt = m.UpdatedAt

		return insertLineItems(tx, m.ID, e.LineItems)
	})
}

// Update rewrites the estimate fields and replaces the whole line-item
// set atomically. The estimate number is never regenerated.
func (r *EstimateRepository) Update(ctx context.Context, e *domain.Estimate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toEstimateModel(e)
		res := tx.Model(&estimateModel{}).Where("id = ?", e.ID).Updates(map[string]any{
			"client_name":     m.ClientName,
			"client_email":    m.ClientEmail,
			"client_phone":    m.ClientPhone,
			"project_address": m.ProjectAddress,
			"project_type":    m.ProjectType,
			"system_types":    m.SystemTypes,
			"subtotal":        m.Subtotal,
			"tax_amount":      m.TaxAmount,
			"total_amount":    m.TotalAmount,
			"notes":           m.Notes,
			"status":          m.Status,
			"updated_at":      time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("estimate_id = ?", e.ID).Delete(&lineItemModel{}).Error; err != nil {
			return err
		}
		return insertLineItems(tx, e.ID, e.LineItems)
	})
}

func (r *EstimateRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&estimateModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EstimateRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("estimate_id = ?", id).Delete(&lineItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&estimateModel{}, id).Error
	})
}

func (r *EstimateRepository) GetByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	var m estimateModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}

	items, err := r.lineItemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainEstimate(m, items), nil
}

type estimateSummaryRow struct {
	ID                 int64     `gorm:"column:id"`
	EstimateNumber     string    `gorm:"column:estimate_number"`
	ClientName         string    `gorm:"column:client_name"`
	ProjectType        string    `gorm:"column:project_type"`
	TotalAmount        float64   `gorm:"column:total_amount"`
	Status             string    `gorm:"column:status"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	CreatedByUsername  string    `gorm:"column:created_by_username"`
	CreatedByFirstName string    `gorm:"column:created_by_first_name"`
	CreatedByLastName  string    `gorm:"column:created_by_last_name"`
}

// GetRecent returns the newest estimates joined with their creator.
func (r *EstimateRepository) GetRecent(ctx context.Context, limit int) ([]domain.EstimateSummary, error) {
	var rows []estimateSummaryRow
	tx := r.db.WithContext(ctx).Table("estimates e").
		Select(`e.id, e.estimate_number, e.client_name, e.project_type, e.total_amount, e.status, e.created_at,
			u.username AS created_by_username, u.first_name AS created_by_first_name, u.last_name AS created_by_last_name`).
		Joins("LEFT JOIN users u ON e.created_by = u.id").
		Order("e.created_at DESC").
		Limit(limit).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	summaries := make([]domain.EstimateSummary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.EstimateSummary{
			ID:                 row.ID,
			EstimateNumber:     row.EstimateNumber,
			ClientName:         row.ClientName,
			ProjectType:        row.ProjectType,
			TotalAmount:        row.TotalAmount,
			Status:             domain.EstimateStatus(row.Status),
			CreatedAt:          row.CreatedAt,
			CreatedByUsername:  row.CreatedByUsername,
			CreatedByFirstName: row.CreatedByFirstName,
			CreatedByLastName:  row.CreatedByLastName,
		}
	}
	return summaries, nil
}

// GetAllDetailed returns every estimate with its line items nested, newest
// first. Line items come back in one query and are grouped in memory
// instead of re-parsing a delimiter-joined export column.
func (r *EstimateRepository) GetAllDetailed(ctx context.Context) ([]domain.Estimate, error) {
	var models []estimateModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	var items []lineItemModel
	if err := r.db.WithContext(ctx).Order("estimate_id ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	grouped := make(map[int64][]lineItemModel, len(models))
	for _, item := range items {
		grouped[item.EstimateID] = append(grouped[item.EstimateID], item)
	}

	estimates := make([]domain.Estimate, len(models))
	for i, m := range models {
		estimates[i] = *toDomainEstimate(m, grouped[m.ID])
	}
	return estimates, nil
}

func (r *EstimateRepository) lineItemsFor(ctx context.Context, estimateID int64) ([]lineItemModel, error) {
	var items []lineItemModel
	tx := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("id ASC").
		Find(&items)
	return items, tx.Error
}

func insertLineItems(tx *gorm.DB, estimateID int64, items []domain.LineItem) error {
	for _, item := range items {
		m := lineItemModel{
			EstimateID:    estimateID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitCost:      item.UnitCost,
			Category:      string(item.Category),
			MarkupPercent: item.MarkupPercent,
			LineTotal:     item.LineTotal,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

package domain

import "time"

// EstimateStatus labels are an open set: the status endpoint accepts any
// non-empty value, these are only the ones the UI presents.
type EstimateStatus string

const (
	EstimateDraft    EstimateStatus = "draft"
	EstimateSent     EstimateStatus = "sent"
	EstimateApproved EstimateStatus = "approved"
)

// Estimate is the persisted quote document. Monetary fields are validated
// against the pricing engine at save time before being stored.
type Estimate struct {
	ID             int64          `json:"id"`
	EstimateNumber string         `json:"estimate_number"`
	ClientName     string         `json:"client_name" validate:"required"`
	ClientEmail    string         `json:"client_email"`
	ClientPhone    string         `json:"client_phone"`
	ProjectAddress string         `json:"project_address"`
	ProjectType    string         `json:"project_type"`
	SystemTypes    []string       `json:"system_types"`
	Subtotal       float64        `json:"subtotal"`
	TaxAmount      float64        `json:"tax_amount"`
	TotalAmount    float64        `json:"total_amount"`
	Notes          string         `json:"notes"`
	Status         EstimateStatus `json:"status"`
	CreatedBy      int64          `json:"created_by"`
	LineItems      []LineItem     `json:"line_items,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EstimateSummary is the list-view row joined with its creator.
type EstimateSummary struct {
	ID                 int64          `json:"id"`
	EstimateNumber     string         `json:"estimate_number"`
	ClientName         string         `json:"client_name"`
	ProjectType        string         `json:"project_type"`
	TotalAmount        float64        `json:"total_amount"`
	Status             EstimateStatus `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	CreatedByUsername  string         `json:"created_by_username"`
	CreatedByFirstName string         `json:"created_by_first_name"`
	CreatedByLastName  string         `json:"created_by_last_name"`
}

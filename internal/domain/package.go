package domain

import "time"

type PackageStatus string

const (
	PackageActive   PackageStatus = "active"
	PackageInactive PackageStatus = "inactive"
)

// Package is a reusable named bundle of line items with a derived base
// price. It acts as a template: "use in estimate" copies its items.
type Package struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	BasePrice   float64       `json:"base_price"`
	Status      PackageStatus `json:"status"`
	LineItems   []LineItem    `json:"line_items,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

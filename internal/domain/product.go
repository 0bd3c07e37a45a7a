package domain

import "time"

// Product is a catalog entry (product or service). Category is a loose
// string copied from the category table at write time.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	UnitCost    float64   `json:"unit_cost" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is a browsing taxonomy row for either products or packages
// (two parallel tables, never shared).
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

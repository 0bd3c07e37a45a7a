package domain

// PricingCategory drives the default markup percentage for a line item.
// Distinct from the free-text product/package category taxonomy.
type PricingCategory string

const (
	CategoryHardware       PricingCategory = "hardware"
	CategoryPartsMaterials PricingCategory = "parts_materials"
	CategoryLabor          PricingCategory = "labor"
)

// LineItem is one priced row owned by exactly one estimate or package.
// Items are always independent copies; catalog or package edits never
// propagate to rows that were seeded from them.
type LineItem struct {
	Description   string          `json:"description"`
	Quantity      float64         `json:"quantity"`
	UnitCost      float64         `json:"unit_cost"`
	Category      PricingCategory `json:"category"`
	MarkupPercent float64         `json:"markup_percent"`
	LineTotal     float64         `json:"line_total"`
	SortOrder     int             `json:"sort_order,omitempty"`
}

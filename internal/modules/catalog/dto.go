package catalog

type ProductRequest struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	UnitCost    float64 `json:"unit_cost" validate:"gte=0"`
}

type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type CategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Label string `json:"label"`
}

// ProductImport is one row of the JSON bulk-import payload.
type ProductImport struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	UnitCost    float64 `json:"unit_cost"`
}

// ImportResult reports a best-effort row-level import. Errors are capped
// by the handler before going over the wire.
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

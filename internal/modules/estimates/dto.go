package estimates

import "estimator/internal/domain"

type EstimateRequest struct {
	ClientName     string            `json:"client_name" validate:"required"`
	ClientEmail    string            `json:"client_email"`
	ClientPhone    string            `json:"client_phone"`
	ProjectAddress string            `json:"project_address"`
	ProjectType    string            `json:"project_type"`
	SystemTypes    []string          `json:"system_types"`
	Subtotal       float64           `json:"subtotal"`
	TaxAmount      float64           `json:"tax_amount"`
	TotalAmount    float64           `json:"total_amount"`
	// ApplyCommission folds the sales_rep_commission setting into the
	// expected total, matching the estimate form's commission checkbox.
	ApplyCommission bool              `json:"apply_commission"`
	Notes           string            `json:"notes"`
	Status          string            `json:"status"`
	LineItems       []domain.LineItem `json:"line_items"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ImportRequest struct {
	Estimates []EstimateImport `json:"estimates"`
}

// EstimateImport is one row of a JSON bulk import. Stored figures are
// taken as submitted; the import path predates server-side totals
// validation and external tooling relies on it accepting historic data.
type EstimateImport struct {
	ClientName     string            `json:"client_name"`
	ClientEmail    string            `json:"client_email"`
	ClientPhone    string            `json:"client_phone"`
	ProjectAddress string            `json:"project_address"`
	ProjectType    string            `json:"project_type"`
	Subtotal       float64           `json:"subtotal"`
	TaxAmount      float64           `json:"tax_amount"`
	TotalAmount    float64           `json:"total_amount"`
	Notes          string            `json:"notes"`
	Status         string            `json:"status"`
	LineItems      []domain.LineItem `json:"line_items"`
}

type ImportResult struct {
	Imported int
	Errors   []string
}

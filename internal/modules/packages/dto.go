package packages

import "estimator/internal/domain"

type PackageRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Status      string            `json:"status"`
	LineItems   []domain.LineItem `json:"line_items"`
}

type CategoryRequest struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

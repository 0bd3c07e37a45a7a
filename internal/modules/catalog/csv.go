package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"estimator/internal/domain"
)

const defaultImportCategory = "Uncategorized"

// ImportCSV reads a product CSV with flexible headers: column names are
// matched case-insensitively and the cost column may be called
// "unit cost", "cost" or "price". Fully empty rows and rows without a
// name are skipped without being counted; failed inserts are collected
// per row.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("invalid CSV file or empty headers")
	}

	headerMap := make(map[string]int, len(headers))
	for i, h := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cell := func(row []string, key string) string {
		idx, ok := headerMap[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := ImportResult{}
	rowNumber := 1 // header row already consumed
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: malformed CSV row", rowNumber))
			continue
		}

		if isEmptyRow(row) {
			continue
		}

		name := cell(row, "name")
		if name == "" {
			continue
		}

		category := cell(row, "category")
		if category == "" {
			category = defaultImportCategory
		}

		unitCost := 0.0
		for _, key := range []string{"unit cost", "cost", "price"} {
			if raw := cell(row, key); raw != "" {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					unitCost = v
				}
				break
			}
		}

		product := &domain.Product{
			SKU:         cell(row, "sku"),
			Name:        name,
			Description: cell(row, "description"),
			Category:    category,
			UnitCost:    unitCost,
		}
		if err := s.products.Create(ctx, product); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: could not be imported", rowNumber))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ExportCSV writes the full catalog as a flat CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"SKU", "Name", "Description", "Category", "Unit Cost"}); err != nil {
		return err
	}
	for _, p := range products {
		row := []string{
			p.SKU,
			p.Name,
			p.Description,
			p.Category,
			strconv.FormatFloat(p.UnitCost, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package estimates

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"estimator/internal/domain"
)

// Line items are flattened into one cell per estimate so the export
// stays one row per estimate and survives spreadsheet round-trips.
const (
	itemFieldSep = "|"
	itemRowSep   = ";;"
)

// ExportCSV streams every estimate as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	estimates, err := s.estimates.GetAllDetailed(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Estimate Number", "Client Name", "Client Email", "Client Phone",
		"Project Address", "Project Type", "System Types",
		"Subtotal", "Tax Amount", "Total Amount", "Status", "Created At",
		"Line Items",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range estimates {
		record := []string{
			e.EstimateNumber,
			e.ClientName,
			e.ClientEmail,
			e.ClientPhone,
			e.ProjectAddress,
			e.ProjectType,
			strings.Join(e.SystemTypes, ", "),
			money(e.Subtotal),
			money(e.TaxAmount),
			money(e.TotalAmount),
			string(e.Status),
			e.CreatedAt.Format(time.RFC3339),
			flattenItems(e.LineItems),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func flattenItems(items []domain.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, strings.Join([]string{
			item.Description,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			money(item.UnitCost),
			string(item.Category),
			strconv.FormatFloat(item.MarkupPercent, 'f', -1, 64),
			money(item.LineTotal),
		}, itemFieldSep))
	}
	return strings.Join(parts, itemRowSep)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Package pricing holds the pure calculation rules shared by estimates
// and packages: per-line totals, category markup defaults and the
// subtotal/tax/commission roll-up. It has no storage or transport
// dependencies so the same math runs identically wherever it is needed.
package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"estimator/internal/domain"
)

// Settings is the flat setting_name -> setting_value map read from the
// settings store. All values are strings; numeric settings are parsed on
// demand with per-key fallbacks.
type Settings map[string]string

// Default rates applied when a setting is missing or unparsable. Malformed
// values silently fall back rather than erroring, matching the established
// behaviour of the calculation surface.
const (
	DefaultHardwareMarkup       = 25.0
	DefaultPartsMaterialsMarkup = 30.0
	DefaultLaborMarkup          = 0.0
	DefaultTaxRate              = 13.0
	DefaultCommissionRate       = 0.0
)

// Totals is the monetary roll-up for a set of line items. Commission is
// zero unless explicitly applied.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxAmount  float64 `json:"tax_amount"`
	Commission float64 `json:"commission_amount"`
	Total      float64 `json:"total_amount"`
}

// Float reads a numeric setting, returning fallback when the key is
// absent or the value does not parse.
func (s Settings) Float(key string, fallback float64) float64 {
	raw, ok := s[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// LineTotal computes quantity * unit_cost * (1 + markup/100), rounded to
// two decimal places. Inputs are taken as-is; callers zero out malformed
// fields before calling.
func LineTotal(quantity, unitCost, markupPercent float64) float64 {
	qty := decimal.NewFromFloat(quantity)
	cost := decimal.NewFromFloat(unitCost)
	markup := decimal.NewFromFloat(markupPercent).
		Div(decimal.NewFromInt(100)).
		Add(decimal.NewFromInt(1))

	total, _ := qty.Mul(cost).Mul(markup).Round(2).Float64()
	return total
}

// DefaultMarkup returns the settings-driven markup percentage for a
// pricing category. Unknown categories get no markup.
func DefaultMarkup(category domain.PricingCategory, s Settings) float64 {
	switch category {
	case domain.CategoryHardware:
		return s.Float("hardware_markup", DefaultHardwareMarkup)
	case domain.CategoryPartsMaterials:
		return s.Float("parts_materials_markup", DefaultPartsMaterialsMarkup)
	case domain.CategoryLabor:
		return s.Float("labor_markup", DefaultLaborMarkup)
	default:
		return 0
	}
}

// Recalculate returns a copy of items with each line_total recomputed
// from its own quantity/cost/markup.
func Recalculate(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		item.LineTotal = LineTotal(item.Quantity, item.UnitCost, item.MarkupPercent)
		out[i] = item
	}
	return out
}

// ComputeTotals rolls line items up into subtotal, tax, optional sales
// commission and grand total. Each line total is recomputed from its raw
// fields; the stored line_total is not trusted.
func ComputeTotals(items []domain.LineItem, s Settings, applyCommission bool) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(
			LineTotal(item.Quantity, item.UnitCost, item.MarkupPercent)))
	}
	subtotal = subtotal.Round(2)

	hundred := decimal.NewFromInt(100)
	taxRate := decimal.NewFromFloat(s.Float("tax_rate", DefaultTaxRate))
	tax := subtotal.Mul(taxRate).Div(hundred).Round(2)

	commission := decimal.Zero
	if applyCommission {
		rate := decimal.NewFromFloat(s.Float("sales_rep_commission", DefaultCommissionRate))
		commission = subtotal.Mul(rate).Div(hundred).Round(2)
	}

	total := subtotal.Add(tax).Add(commission).Round(2)

	sub, _ := subtotal.Float64()
	tx, _ := tax.Float64()
	com, _ := commission.Float64()
	tot, _ := total.Float64()
	return Totals{Subtotal: sub, TaxAmount: tx, Commission: com, Total: tot}
}

// BasePrice is the package base price: the sum of its line totals.
func BasePrice(items []domain.LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(
			LineTotal(item.Quantity, item.UnitCost, item.MarkupPercent)))
	}
	out, _ := sum.Round(2).Float64()
	return out
}

// WithinTolerance reports whether two client- and server-computed amounts
// agree to within half a cent of rounding drift.
func WithinTolerance(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(0.01))
}

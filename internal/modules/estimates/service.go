package estimates

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"estimator/internal/domain"
	"estimator/internal/pricing"
	"estimator/internal/repository"
)

const (
	recentLimit        = 50
	numberAttempts     = 5
	defaultProjectType = "residential"
)

type Service struct {
	estimates EstimateRepository
	settings  SettingsProvider
	events    Broadcaster
}

func NewService(estimates EstimateRepository, settings SettingsProvider, events Broadcaster) *Service {
	return &Service{estimates: estimates, settings: settings, events: events}
}

func (s *Service) List(ctx context.Context) ([]domain.EstimateSummary, error) {
	return s.estimates.GetRecent(ctx, recentLimit)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Estimate, error) {
	return s.estimates.GetByID(ctx, id)
}

func (s *Service) Detailed(ctx context.Context) ([]domain.Estimate, error) {
	return s.estimates.GetAllDetailed(ctx)
}

// Create validates the submitted figures against the pricing engine,
// allocates an estimate number and stores the estimate atomically. The
// number is regenerated and the insert retried a few times if it
// collides with an existing one.
func (s *Service) Create(ctx context.Context, userID int64, req EstimateRequest) (*domain.Estimate, error) {
	estimate, err := s.buildEstimate(ctx, req)
	if err != nil {
		return nil, err
	}
	estimate.CreatedBy = userID

	for attempt := 0; attempt < numberAttempts; attempt++ {
		estimate.EstimateNumber = generateNumber()
		err = s.estimates.Create(ctx, estimate)
		if err == nil {
			s.events.Broadcast("estimate.created", map[string]any{
				"id":              estimate.ID,
				"estimate_number": estimate.EstimateNumber,
				"client_name":     estimate.ClientName,
				"total_amount":    estimate.TotalAmount,
				"status":          estimate.Status,
			})
			return estimate, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, ErrNumberExhausted
}

// Update replaces the estimate and its full line-item set. The estimate
// number is never regenerated; submitted totals go through the same
// validation as create.
func (s *Service) Update(ctx context.Context, id int64, req EstimateRequest) (*domain.Estimate, error) {
	estimate, err := s.buildEstimate(ctx, req)
	if err != nil {
		return nil, err
	}
	estimate.ID = id

	if err := s.estimates.Update(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

// UpdateStatus accepts any non-empty label. The status vocabulary is
// open so workflow stages can be added without a schema change.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return ErrStatusRequired
	}

	if err := s.estimates.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.events.Broadcast("estimate.status_changed", map[string]any{
		"id":     id,
		"status": status,
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.estimates.Delete(ctx, id)
}

// Import bulk-loads estimates. Rows without a client name are skipped
// outright, items without a description are dropped, and stored figures
// are taken as submitted. Each row gets a fresh estimate number.
func (s *Service) Import(ctx context.Context, rows []EstimateImport) ImportResult {
	var result ImportResult

	for i, row := range rows {
		if strings.TrimSpace(row.ClientName) == "" {
			continue
		}

		items := make([]domain.LineItem, 0, len(row.LineItems))
		for _, item := range row.LineItems {
			if strings.TrimSpace(item.Description) == "" {
				continue
			}
			if item.Category == "" {
				item.Category = domain.CategoryHardware
			}
			items = append(items, item)
		}

		projectType := row.ProjectType
		if projectType == "" {
			projectType = defaultProjectType
		}
		status := domain.EstimateStatus(row.Status)
		if status == "" {
			status = domain.EstimateDraft
		}

		estimate := &domain.Estimate{
			ClientName:     row.ClientName,
			ClientEmail:    row.ClientEmail,
			ClientPhone:    row.ClientPhone,
			ProjectAddress: row.ProjectAddress,
			ProjectType:    projectType,
			SystemTypes:    []string{},
			Subtotal:       row.Subtotal,
			TaxAmount:      row.TaxAmount,
			TotalAmount:    row.TotalAmount,
			Notes:          row.Notes,
			Status:         status,
			LineItems:      items,
		}

		if err := s.createWithFreshNumber(ctx, estimate); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Estimate %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}
	return result
}

func (s *Service) createWithFreshNumber(ctx context.Context, estimate *domain.Estimate) error {
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		estimate.EstimateNumber = generateNumber()
		if err = s.estimates.Create(ctx, estimate); err == nil {
			return nil
		}
		if !repository.IsUniqueViolation(err) {
			return err
		}
	}
	return ErrNumberExhausted
}

// buildEstimate validates the request, recomputes every line total and
// the roll-up server-side, and rejects when the submitted figures drift
// beyond a cent from the calculated ones. ApplyCommission decides whether
// the expected total includes the sales rep commission.
func (s *Service) buildEstimate(ctx context.Context, req EstimateRequest) (*domain.Estimate, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, ErrClientNameRequired
	}
	if len(req.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := pricing.Recalculate(req.LineItems)
	totals := pricing.ComputeTotals(items, settings, req.ApplyCommission)

	if !pricing.WithinTolerance(req.Subtotal, totals.Subtotal) ||
		!pricing.WithinTolerance(req.TaxAmount, totals.TaxAmount) ||
		!pricing.WithinTolerance(req.TotalAmount, totals.Total) {
		return nil, ErrTotalsMismatch
	}

	systemTypes := req.SystemTypes
	if systemTypes == nil {
		systemTypes = []string{}
	}
	status := domain.EstimateStatus(req.Status)
	if status == "" {
		status = domain.EstimateDraft
	}

	return &domain.Estimate{
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		ProjectAddress: req.ProjectAddress,
		ProjectType:    req.ProjectType,
		SystemTypes:    systemTypes,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.Total,
		Notes:          req.Notes,
		Status:         status,
		LineItems:      items,
	}, nil
}

// generateNumber produces EST-<year>-<4 digit random>. Uniqueness is
// enforced by the database index; collisions surface as retries.
func generateNumber() string {
	return fmt.Sprintf("EST-%d-%04d", time.Now().Year(), rand.Intn(9999)+1)
}

package estimates

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estimator/internal/domain"
)

func TestService_ExportCSV(t *testing.T) {
	repo := new(MockEstimateRepository)
	repo.On("GetAllDetailed", mock.Anything).Return([]domain.Estimate{
		{
			EstimateNumber: "EST-2026-0042",
			ClientName:     "Acme Warehousing",
			ProjectType:    "commercial",
			SystemTypes:    []string{"cameras", "access_control"},
			Subtotal:       250,
			TaxAmount:      32.5,
			TotalAmount:    282.5,
			Status:         domain.EstimateSent,
			CreatedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			LineItems: []domain.LineItem{
				{Description: "Camera", Quantity: 2, UnitCost: 100, Category: domain.CategoryHardware, MarkupPercent: 25, LineTotal: 250},
			},
		},
	}, nil)

	service := NewService(repo, new(MockSettingsProvider), new(MockBroadcaster))

	var buf bytes.Buffer
	require.NoError(t, service.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Estimate Number", records[0][0])
	assert.Equal(t, "EST-2026-0042", records[1][0])
	assert.Equal(t, "cameras, access_control", records[1][6])
	assert.Equal(t, "282.50", records[1][9])
	// line items live in one delimited cell so the export stays one row
	// per estimate
	assert.Equal(t, "Camera|2|100.00|hardware|25|250.00", records[1][12])
}

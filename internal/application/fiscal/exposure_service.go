package fiscal

import (
	"context"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExposureService computes a client's cap exposure: the trailing twelve
// month accumulation classified against the category cap valid as of the
// evaluation period.
type ExposureService struct {
	receipts   fiscal.ReceiptRepository
	categories fiscal.FiscalCategoryRepository
	clients    fiscal.ClientRepository
	thresholds fiscal.RiskThresholds
}

// NewExposureService creates a new ExposureService
func NewExposureService(
	receipts fiscal.ReceiptRepository,
	categories fiscal.FiscalCategoryRepository,
	clients fiscal.ClientRepository,
	thresholds fiscal.RiskThresholds,
) *ExposureService {
	return &ExposureService{
		receipts:   receipts,
		categories: categories,
		clients:    clients,
		thresholds: thresholds,
	}
}

// ExposureResponse represents a client's cap exposure as of a period.
// When the category table cannot supply a cap the totals are still
// reported, Incomplete is set and the classification fields are zero-valued
// rather than guessed from a zero cap.
type ExposureResponse struct {
	ClientID         uuid.UUID            `json:"client_id"`
	AsOfPeriod       string               `json:"as_of_period"`
	WindowStart      string               `json:"window_start"`
	Totals           fiscal.RollingTotals `json:"totals"`
	CategoryCode     string               `json:"category_code"`
	AnnualCap        decimal.Decimal      `json:"annual_cap,omitempty"`
	Percentage       decimal.Decimal      `json:"percentage"`
	Tier             string               `json:"tier,omitempty"`
	Incomplete       bool                 `json:"incomplete"`
	IncompleteReason string               `json:"incomplete_reason,omitempty"`
}

// Exposure computes the rolling accumulation and risk tier for a client
func (s *ExposureService) Exposure(ctx context.Context, clientID uuid.UUID, asOfStr string) (*ExposureResponse, error) {
	asOf, err := valueobject.ParsePeriod(asOfStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receipts.FindByClientInRange(ctx, clientID, fiscal.WindowStart(asOf), asOf)
	if err != nil {
		return nil, err
	}
	totals := fiscal.Accumulate(receipts, asOf)

	resp := &ExposureResponse{
		ClientID:     clientID,
		AsOfPeriod:   asOf.String(),
		WindowStart:  fiscal.WindowStart(asOf).String(),
		Totals:       totals,
		CategoryCode: client.CategoryCode,
	}

	// The cap is taken from the category row valid as of the evaluation
	// period. When the table cannot supply one, degrade to "incomplete
	// data" instead of classifying against a guessed cap of zero.
	category, err := s.categories.FindByCodeAsOf(ctx, client.CategoryCode, asOf)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) || shared.IsCode(err, shared.CodeUpstreamUnavailable) {
			resp.Incomplete = true
			resp.IncompleteReason = "no category cap available for the evaluation period"
			return resp, nil
		}
		return nil, err
	}

	assessment := fiscal.Classify(totals.TotalNet, category.AnnualCap, s.thresholds)
	resp.AnnualCap = category.AnnualCap
	resp.Percentage = assessment.Percentage
	resp.Tier = assessment.Tier.String()

	return resp, nil
}

package inflation

import (
	"context"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/inflation"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AdjustmentService provides inflation-series maintenance and the compound
// adjustment calculation used to restate historic amounts.
type AdjustmentService struct {
	records inflation.RecordRepository
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(records inflation.RecordRepository) *AdjustmentService {
	return &AdjustmentService{records: records}
}

// UpsertRecordRequest represents one published monthly rate
type UpsertRecordRequest struct {
	Period             string          `json:"period" binding:"required"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent" binding:"required"`
}

// RecordResponse represents an inflation record in API responses
type RecordResponse struct {
	Period             string          `json:"period"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent"`
}

// AdjustmentRequest represents a request to restate an amount across a window
type AdjustmentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
}

// AdjustmentResponse carries the compound result. Complete is false when any
// month of the window lacks a published rate; the accumulated figure then
// under-counts and MissingPeriods names the gaps.
type AdjustmentResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	AccumulatedPct decimal.Decimal `json:"accumulated_pct"`
	AdjustedAmount decimal.Decimal `json:"adjusted_amount"`
	Complete       bool            `json:"complete"`
	MissingPeriods []string        `json:"missing_periods,omitempty"`
}

// UpsertRecord stores a monthly rate, replacing any earlier publication for
// the same period
func (s *AdjustmentService) UpsertRecord(ctx context.Context, req UpsertRecordRequest) (*RecordResponse, error) {
	period, err := valueobject.ParsePeriod(req.Period)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	record, err := inflation.NewRecord(period, req.MonthlyRatePercent)
	if err != nil {
		return nil, err
	}

	if err := s.records.Upsert(ctx, record); err != nil {
		return nil, shared.ErrUpstreamUnavailable.WithDetail("cause", err.Error())
	}

	return &RecordResponse{
		Period:             record.Period.String(),
		MonthlyRatePercent: record.MonthlyRatePercent,
	}, nil
}

// GetRecord returns the published rate for one period
func (s *AdjustmentService) GetRecord(ctx context.Context, periodStr string) (*RecordResponse, error) {
	period, err := valueobject.ParsePeriod(periodStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	record, err := s.records.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	return &RecordResponse{
		Period:             record.Period.String(),
		MonthlyRatePercent: record.MonthlyRatePercent,
	}, nil
}

// ListRecords returns the published rates with a period in [from, to]
func (s *AdjustmentService) ListRecords(ctx context.Context, fromStr, toStr string) ([]RecordResponse, error) {
	from, to, err := parseWindow(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	records, err := s.records.FindInRange(ctx, from, to)
	if err != nil {
		return nil, shared.ErrUpstreamUnavailable.WithDetail("cause", err.Error())
	}

	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = RecordResponse{
			Period:             records[i].Period.String(),
			MonthlyRatePercent: records[i].MonthlyRatePercent,
		}
	}
	return responses, nil
}

// Adjustment compounds the published monthly rates over (from, to] and
// restates the amount. Gaps in the series do not fail the calculation; they
// are reported through Complete and MissingPeriods so the caller can warn.
func (s *AdjustmentService) Adjustment(ctx context.Context, req AdjustmentRequest) (*AdjustmentResponse, error) {
	from, to, err := parseWindow(req.From, req.To)
	if err != nil {
		return nil, err
	}

	// The starting month's own rate is excluded, so fetch from the month after.
	records, err := s.records.FindInRange(ctx, from.Next(), to)
	if err != nil {
		return nil, shared.ErrUpstreamUnavailable.WithDetail("cause", err.Error())
	}

	series := inflation.NewSeries(records)
	accumulated := series.AccumulatedInflation(from, to)
	missing := series.MissingPeriods(from, to)

	resp := &AdjustmentResponse{
		Amount:         req.Amount,
		From:           from.String(),
		To:             to.String(),
		AccumulatedPct: accumulated,
		AdjustedAmount: inflation.Adjust(req.Amount, accumulated),
		Complete:       len(missing) == 0,
	}
	for _, p := range missing {
		resp.MissingPeriods = append(resp.MissingPeriods, p.String())
	}
	return resp, nil
}

// LatestPeriod returns the most recent month with a published rate, or an
// empty string for an empty series
func (s *AdjustmentService) LatestPeriod(ctx context.Context) (string, error) {
	period, err := s.records.LatestPeriod(ctx)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return "", nil
		}
		return "", err
	}
	return period.String(), nil
}

// parseWindow parses both ends of a period window. Inverted windows are not an
// error here: the compounding is defined as 0% for to <= from.
func parseWindow(fromStr, toStr string) (valueobject.Period, valueobject.Period, error) {
	from, err := valueobject.ParsePeriod(fromStr)
	if err != nil {
		return valueobject.Period{}, valueobject.Period{}, shared.NewValidationError(err.Error())
	}
	to, err := valueobject.ParsePeriod(toStr)
	if err != nil {
		return valueobject.Period{}, valueobject.Period{}, shared.NewValidationError(err.Error())
	}
	return from, to, nil
}

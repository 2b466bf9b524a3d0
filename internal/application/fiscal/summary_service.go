package fiscal

import (
	"context"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MonthSummaryCache is a read-through cache of derived month summaries keyed
// by (clientID, period). It is never authoritative: any receipt mutation in
// the period invalidates the entry and the summary is rebuilt from the
// ledger on the next read.
type MonthSummaryCache interface {
	SummaryInvalidator

	// Get returns the cached summary and whether it was present
	Get(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthSummary, bool)

	// Set stores a freshly derived summary
	Set(ctx context.Context, summary fiscal.MonthSummary)
}

// SummaryInvalidator is the mutation-side view of the summary cache
type SummaryInvalidator interface {
	// Invalidate drops the cached summary for a client and period
	Invalidate(ctx context.Context, clientID uuid.UUID, period valueobject.Period)
}

// MonthSummaryService derives per-month summaries from the receipt ledger,
// serving them through the read-through cache.
type MonthSummaryService struct {
	receipts fiscal.ReceiptRepository
	months   fiscal.MonthStatusRepository
	cache    MonthSummaryCache
}

// NewMonthSummaryService creates a new MonthSummaryService
func NewMonthSummaryService(
	receipts fiscal.ReceiptRepository,
	months fiscal.MonthStatusRepository,
	cache MonthSummaryCache,
) *MonthSummaryService {
	return &MonthSummaryService{
		receipts: receipts,
		months:   months,
		cache:    cache,
	}
}

// GetSummary returns the month summary for a client and period, rebuilding
// it from the ledger on a cache miss
func (s *MonthSummaryService) GetSummary(ctx context.Context, clientID uuid.UUID, periodStr string) (*fiscal.MonthSummary, error) {
	period, err := valueobject.ParsePeriod(periodStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, clientID, period); ok {
			return cached, nil
		}
	}

	summary, err := s.rebuild(ctx, clientID, period)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, *summary)
	}
	return summary, nil
}

func (s *MonthSummaryService) rebuild(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthSummary, error) {
	receipts, err := s.receipts.FindByClientAndPeriod(ctx, clientID, period)
	if err != nil {
		return nil, err
	}

	state := fiscal.MonthStateOpen
	status, err := s.months.FindByClientAndPeriod(ctx, clientID, period)
	if err != nil && !shared.IsCode(err, shared.CodeNotFound) {
		return nil, err
	}
	if status != nil && status.IsClosed() {
		state = fiscal.MonthStateClosed
	}

	summary := fiscal.BuildMonthSummary(clientID, period, receipts, state)
	return &summary, nil
}

package inflation

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Record is one published monthly inflation rate. The source occasionally
// corrects a month by publishing again; the latest write for a period wins.
type Record struct {
	shared.BaseEntity
	Period             valueobject.Period
	MonthlyRatePercent decimal.Decimal
}

// NewRecord creates an inflation record for one calendar month
func NewRecord(period valueobject.Period, monthlyRatePercent decimal.Decimal) (*Record, error) {
	if period.IsZero() {
		return nil, shared.NewValidationError("Inflation record period is required")
	}
	// Deflation happens; a rate at or below -100% would make the price level
	// non-positive and is certainly bad data.
	if monthlyRatePercent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return nil, shared.NewValidationError("Monthly rate must be greater than -100%")
	}

	return &Record{
		BaseEntity:         shared.NewBaseEntity(),
		Period:             period,
		MonthlyRatePercent: monthlyRatePercent,
	}, nil
}

// Multiplier returns the month's price-level factor, 1 + rate/100
func (r *Record) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(r.MonthlyRatePercent.Div(decimal.NewFromInt(100)))
}

package inflation

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Series is an in-memory view of the monthly inflation series, indexed by
// period. Building it from records applies last-write-wins per period, so a
// corrected month supplied later replaces the earlier value.
type Series struct {
	rates map[valueobject.Period]decimal.Decimal
}

// NewSeries builds a Series from records in supply order
func NewSeries(records []Record) *Series {
	s := &Series{rates: make(map[valueobject.Period]decimal.Decimal, len(records))}
	for i := range records {
		s.rates[records[i].Period] = records[i].MonthlyRatePercent
	}
	return s
}

// Rate returns the monthly rate percent for a period, if published
func (s *Series) Rate(period valueobject.Period) (decimal.Decimal, bool) {
	rate, ok := s.rates[period]
	return rate, ok
}

// Len returns the number of months the series covers
func (s *Series) Len() int {
	return len(s.rates)
}

// AccumulatedInflation compounds the monthly rates over the window exclusive
// of from and inclusive of to, returned as a percentage. The starting month
// is excluded because its published rate reflects change realized during
// that month, which the amount "as of" that month has not yet absorbed.
// A window with to <= from is empty and yields 0%. Months without a
// published rate contribute nothing; use HasDataThrough to detect gaps
// before trusting the result.
func (s *Series) AccumulatedInflation(from, to valueobject.Period) decimal.Decimal {
	if to.Compare(from) <= 0 {
		return decimal.Zero
	}

	factor := one
	for p := from.Next(); !p.After(to); p = p.Next() {
		rate, ok := s.rates[p]
		if !ok {
			continue
		}
		factor = factor.Mul(one.Add(rate.Div(hundred)))
	}

	return factor.Sub(one).Mul(hundred)
}

// HasDataThrough reports whether every month of the window (from, to] has a
// published rate. The UI warns the user instead of silently under-counting
// when this is false.
func (s *Series) HasDataThrough(from, to valueobject.Period) bool {
	return len(s.MissingPeriods(from, to)) == 0
}

// MissingPeriods returns the months of the window (from, to] without a
// published rate, oldest first
func (s *Series) MissingPeriods(from, to valueobject.Period) []valueobject.Period {
	var missing []valueobject.Period
	if to.Compare(from) <= 0 {
		return missing
	}
	for p := from.Next(); !p.After(to); p = p.Next() {
		if _, ok := s.rates[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// Adjust projects an amount forward by an accumulated inflation percentage:
// amount * (1 + pct/100).
func Adjust(amount, accumulatedPct decimal.Decimal) decimal.Decimal {
	return amount.Mul(one.Add(accumulatedPct.Div(hundred)))
}

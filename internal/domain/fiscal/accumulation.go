package fiscal

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AccumulationWindowMonths is the length of the trailing window the annual
// cap is evaluated over. The regime checks invoicing continuously, so the
// window rolls month by month instead of resetting each calendar year.
const AccumulationWindowMonths = 12

// RollingTotals holds the trailing-12-month aggregates for a client
type RollingTotals struct {
	TotalNet decimal.Decimal `json:"total_net"`
	TotalFC  decimal.Decimal `json:"total_fc"`
	TotalNC  decimal.Decimal `json:"total_nc"`
	TotalND  decimal.Decimal `json:"total_nd"`
}

// ZeroRollingTotals returns all-zero totals
func ZeroRollingTotals() RollingTotals {
	return RollingTotals{
		TotalNet: decimal.Zero,
		TotalFC:  decimal.Zero,
		TotalNC:  decimal.Zero,
		TotalND:  decimal.Zero,
	}
}

// WindowStart returns the first period of the accumulation window ending at
// asOf: eleven months earlier, so the window spans twelve calendar months
// inclusive of asOf.
func WindowStart(asOf valueobject.Period) valueobject.Period {
	return asOf.SubMonths(AccumulationWindowMonths - 1)
}

// InWindow reports whether a receipt period falls inside the window ending
// at asOf. A period exactly twelve months before asOf is outside.
func InWindow(period, asOf valueobject.Period) bool {
	return !period.Before(WindowStart(asOf)) && !period.After(asOf)
}

// Accumulate computes the rolling totals over the twelve-month window ending
// at asOf. It is a pure function of the receipt set: no receipts in the
// window yields all-zero totals, and a window dominated by credit notes
// yields a negative TotalNet, which callers must treat as zero exposure
// rather than negative risk.
func Accumulate(receipts []Receipt, asOf valueobject.Period) RollingTotals {
	totals := ZeroRollingTotals()

	for i := range receipts {
		r := &receipts[i]
		if !InWindow(r.Period, asOf) {
			continue
		}
		switch r.Kind {
		case ReceiptKindFactura:
			totals.TotalFC = totals.TotalFC.Add(r.Amount)
		case ReceiptKindNotaCredito:
			totals.TotalNC = totals.TotalNC.Add(r.Amount)
		case ReceiptKindNotaDebito:
			totals.TotalND = totals.TotalND.Add(r.Amount)
		}
	}

	totals.TotalNet = totals.TotalFC.Add(totals.TotalND).Sub(totals.TotalNC)
	return totals
}

package fiscal

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthSummary is the derived per-client, per-period aggregate shown on
// dashboards. It is a cache of the receipt ledger, never the source of
// truth: it can be rebuilt from the receipts of its period at any time.
type MonthSummary struct {
	ClientID     uuid.UUID          `json:"client_id"`
	Period       valueobject.Period `json:"period"`
	TotalNet     decimal.Decimal    `json:"total_net"`
	TotalFC      decimal.Decimal    `json:"total_fc"`
	TotalNC      decimal.Decimal    `json:"total_nc"`
	TotalND      decimal.Decimal    `json:"total_nd"`
	ReceiptCount int                `json:"receipt_count"`
	PendingCount int                `json:"pending_count"`
	State        MonthState         `json:"state"`
}

// BuildMonthSummary derives the summary from the receipts of one period.
// Receipts from other periods are ignored rather than rejected, so callers
// may pass a wider slice.
func BuildMonthSummary(clientID uuid.UUID, period valueobject.Period, receipts []Receipt, state MonthState) MonthSummary {
	s := MonthSummary{
		ClientID: clientID,
		Period:   period,
		TotalNet: decimal.Zero,
		TotalFC:  decimal.Zero,
		TotalNC:  decimal.Zero,
		TotalND:  decimal.Zero,
		State:    state,
	}

	for i := range receipts {
		r := &receipts[i]
		if r.ClientID != clientID || !r.Period.Equal(period) {
			continue
		}
		s.ReceiptCount++
		if r.IsPending() {
			s.PendingCount++
		}
		switch r.Kind {
		case ReceiptKindFactura:
			s.TotalFC = s.TotalFC.Add(r.Amount)
		case ReceiptKindNotaCredito:
			s.TotalNC = s.TotalNC.Add(r.Amount)
		case ReceiptKindNotaDebito:
			s.TotalND = s.TotalND.Add(r.Amount)
		}
	}

	s.TotalNet = s.TotalFC.Add(s.TotalND).Sub(s.TotalNC)
	return s
}

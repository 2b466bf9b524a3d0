package fiscal

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
)

// Close-guard reason values carried in PRECONDITION_FAILED error details so
// the presentation layer can render a specific message for each case.
const (
	CloseBlockedNoReceipts       = "no_receipts"
	CloseBlockedPendingReceipts  = "pending_receipts"
	CloseBlockedObservedReceipts = "observed_receipts"
)

// EvaluateCloseGuard checks the month-closing invariant against the given
// receipt set: at least one receipt must exist and every receipt must be ok.
// It quantifies over the whole set, so receipt order is irrelevant.
// Returns nil when the month may close, or a PRECONDITION_FAILED error whose
// details distinguish empty month, pending receipts and observed receipts.
func EvaluateCloseGuard(receipts []Receipt) error {
	if len(receipts) == 0 {
		return shared.NewPreconditionError("Month has no receipts to close").
			WithDetail("reason", CloseBlockedNoReceipts)
	}

	pending := 0
	observed := 0
	for i := range receipts {
		switch receipts[i].ReviewState {
		case ReviewStatePending:
			pending++
		case ReviewStateObserved:
			observed++
		}
	}

	if pending > 0 {
		return shared.NewPreconditionError("Month still has receipts pending review").
			WithDetail("reason", CloseBlockedPendingReceipts).
			WithDetail("pending_count", pending).
			WithDetail("observed_count", observed)
	}
	if observed > 0 {
		return shared.NewPreconditionError("Month still has observed receipts").
			WithDetail("reason", CloseBlockedObservedReceipts).
			WithDetail("observed_count", observed)
	}

	return nil
}

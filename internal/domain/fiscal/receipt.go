package fiscal

import (
	"strings"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptKind distinguishes the three signed receipt types.
// Facturas and notas de debito add to net invoicing, notas de credito subtract.
type ReceiptKind string

const (
	ReceiptKindFactura     ReceiptKind = "FC"
	ReceiptKindNotaCredito ReceiptKind = "NC"
	ReceiptKindNotaDebito  ReceiptKind = "ND"
)

// IsValid checks if the kind is a valid ReceiptKind
func (k ReceiptKind) IsValid() bool {
	switch k {
	case ReceiptKindFactura, ReceiptKindNotaCredito, ReceiptKindNotaDebito:
		return true
	}
	return false
}

// String returns the string representation of ReceiptKind
func (k ReceiptKind) String() string {
	return string(k)
}

// Sign returns +1 for kinds that add to net invoicing and -1 for credit notes
func (k ReceiptKind) Sign() int {
	if k == ReceiptKindNotaCredito {
		return -1
	}
	return 1
}

// ReviewState is the accountant's per-receipt review status
type ReviewState string

const (
	ReviewStatePending  ReviewState = "pending"
	ReviewStateOk       ReviewState = "ok"
	ReviewStateObserved ReviewState = "observed"
)

// IsValid checks if the state is a valid ReviewState
func (s ReviewState) IsValid() bool {
	switch s {
	case ReviewStatePending, ReviewStateOk, ReviewStateObserved:
		return true
	}
	return false
}

// String returns the string representation of ReviewState
func (s ReviewState) String() string {
	return string(s)
}

// Counterparty identifies the other side of a receipt
type Counterparty struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// Receipt is a single signed invoicing record of a client for one period.
// The period is frozen at creation; whether the receipt may still be mutated
// is governed by the month's open/closed state, not by the receipt itself.
type Receipt struct {
	shared.BaseAggregateRoot
	ClientID        uuid.UUID
	Period          valueobject.Period
	EmissionDate    time.Time
	Kind            ReceiptKind
	Amount          decimal.Decimal
	Counterparty    Counterparty
	ReviewState     ReviewState
	ObservationNote string
	AttachmentURLs  []string
	ReviewedBy      *uuid.UUID
	ReviewedAt      *time.Time
}

// NewReceipt creates a new receipt in pending review state
func NewReceipt(
	clientID uuid.UUID,
	period valueobject.Period,
	emissionDate time.Time,
	kind ReceiptKind,
	amount valueobject.Money,
	counterparty Counterparty,
	attachmentURLs []string,
) (*Receipt, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	if period.IsZero() {
		return nil, shared.NewValidationError("Receipt period is required")
	}
	if emissionDate.IsZero() {
		return nil, shared.NewValidationError("Emission date is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Receipt kind must be FC, NC or ND")
	}
	if !amount.Amount().IsPositive() {
		return nil, shared.NewValidationError("Receipt amount must be positive")
	}
	if strings.TrimSpace(counterparty.Name) == "" {
		return nil, shared.NewValidationError("Counterparty name cannot be empty")
	}

	r := &Receipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Period:            period,
		EmissionDate:      emissionDate,
		Kind:              kind,
		Amount:            amount.Amount(),
		Counterparty:      counterparty,
		ReviewState:       ReviewStatePending,
		AttachmentURLs:    attachmentURLs,
	}

	r.AddDomainEvent(NewReceiptCreatedEvent(r))

	return r, nil
}

// NetContribution returns the receipt's signed contribution to net invoicing:
// +amount for FC and ND, -amount for NC.
func (r *Receipt) NetContribution() decimal.Decimal {
	if r.Kind.Sign() < 0 {
		return r.Amount.Neg()
	}
	return r.Amount
}

// UpdateDetails edits the receipt's own fields. The period is intentionally
// not editable. Callers must have verified the receipt's month is open.
// The review state is left untouched; the close guard re-validates the whole
// set at close time anyway.
func (r *Receipt) UpdateDetails(
	emissionDate time.Time,
	kind ReceiptKind,
	amount valueobject.Money,
	counterparty Counterparty,
	attachmentURLs []string,
) error {
	if emissionDate.IsZero() {
		return shared.NewValidationError("Emission date is required")
	}
	if !kind.IsValid() {
		return shared.NewValidationError("Receipt kind must be FC, NC or ND")
	}
	if !amount.Amount().IsPositive() {
		return shared.NewValidationError("Receipt amount must be positive")
	}
	if strings.TrimSpace(counterparty.Name) == "" {
		return shared.NewValidationError("Counterparty name cannot be empty")
	}

	r.EmissionDate = emissionDate
	r.Kind = kind
	r.Amount = amount.Amount()
	r.Counterparty = counterparty
	r.AttachmentURLs = attachmentURLs
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// MarkOk transitions the receipt to the ok review state. Marking an
// already-ok receipt is a no-op success so double submissions are harmless.
// The observation note, if any, is retained for audit; once ok it no longer
// blocks closing.
func (r *Receipt) MarkOk(reviewedBy uuid.UUID) error {
	if reviewedBy == uuid.Nil {
		return shared.NewValidationError("Reviewer ID cannot be empty")
	}
	if r.ReviewState == ReviewStateOk {
		return nil
	}

	now := time.Now()
	r.ReviewState = ReviewStateOk
	r.ReviewedBy = &reviewedBy
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReceiptReviewedEvent(r))

	return nil
}

// MarkObserved flags a discrepancy on the receipt. The note is mandatory;
// an observed receipt must be resolved individually before its month can
// close. Re-observing replaces the note. An ok receipt cannot be observed
// again without an explicit reopen.
func (r *Receipt) MarkObserved(note string, reviewedBy uuid.UUID) error {
	if reviewedBy == uuid.Nil {
		return shared.NewValidationError("Reviewer ID cannot be empty")
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return shared.NewValidationError("Observation note cannot be empty")
	}
	if r.ReviewState == ReviewStateOk {
		return shared.NewPreconditionError("Cannot observe a receipt already marked ok")
	}

	now := time.Now()
	r.ReviewState = ReviewStateObserved
	r.ObservationNote = note
	r.ReviewedBy = &reviewedBy
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReceiptObservedEvent(r, note))

	return nil
}

// IsPending returns true if the receipt awaits review
func (r *Receipt) IsPending() bool {
	return r.ReviewState == ReviewStatePending
}

// IsOk returns true if the receipt passed review
func (r *Receipt) IsOk() bool {
	return r.ReviewState == ReviewStateOk
}

// IsObserved returns true if the receipt has an unresolved observation
func (r *Receipt) IsObserved() bool {
	return r.ReviewState == ReviewStateObserved
}

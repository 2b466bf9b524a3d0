package fiscal

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeReceipt     = "Receipt"
	AggregateTypeMonthStatus = "MonthStatus"
)

// Event type constants
const (
	EventTypeReceiptCreated  = "ReceiptCreated"
	EventTypeReceiptReviewed = "ReceiptReviewed"
	EventTypeReceiptObserved = "ReceiptObserved"
	EventTypeMonthClosed     = "MonthClosed"
)

// ReceiptCreatedEvent is raised when a new receipt enters the ledger
type ReceiptCreatedEvent struct {
	shared.BaseDomainEvent
	ReceiptID uuid.UUID          `json:"receipt_id"`
	ClientID  uuid.UUID          `json:"client_id"`
	Period    valueobject.Period `json:"period"`
	Kind      ReceiptKind        `json:"kind"`
	Amount    decimal.Decimal    `json:"amount"`
}

// NewReceiptCreatedEvent creates a new ReceiptCreatedEvent
func NewReceiptCreatedEvent(r *Receipt) *ReceiptCreatedEvent {
	return &ReceiptCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptCreated, r.ID, AggregateTypeReceipt),
		ReceiptID:       r.ID,
		ClientID:        r.ClientID,
		Period:          r.Period,
		Kind:            r.Kind,
		Amount:          r.Amount,
	}
}

// ReceiptReviewedEvent is raised when a receipt is marked ok
type ReceiptReviewedEvent struct {
	shared.BaseDomainEvent
	ReceiptID  uuid.UUID          `json:"receipt_id"`
	ClientID   uuid.UUID          `json:"client_id"`
	Period     valueobject.Period `json:"period"`
	ReviewedBy uuid.UUID          `json:"reviewed_by"`
}

// NewReceiptReviewedEvent creates a new ReceiptReviewedEvent
func NewReceiptReviewedEvent(r *Receipt) *ReceiptReviewedEvent {
	var reviewedBy uuid.UUID
	if r.ReviewedBy != nil {
		reviewedBy = *r.ReviewedBy
	}
	return &ReceiptReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptReviewed, r.ID, AggregateTypeReceipt),
		ReceiptID:       r.ID,
		ClientID:        r.ClientID,
		Period:          r.Period,
		ReviewedBy:      reviewedBy,
	}
}

// ReceiptObservedEvent is raised when an observation is flagged on a receipt.
// The messaging collaborator subscribes to it to notify the client.
type ReceiptObservedEvent struct {
	shared.BaseDomainEvent
	ReceiptID uuid.UUID          `json:"receipt_id"`
	ClientID  uuid.UUID          `json:"client_id"`
	Period    valueobject.Period `json:"period"`
	Note      string             `json:"note"`
}

// NewReceiptObservedEvent creates a new ReceiptObservedEvent
func NewReceiptObservedEvent(r *Receipt, note string) *ReceiptObservedEvent {
	return &ReceiptObservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptObserved, r.ID, AggregateTypeReceipt),
		ReceiptID:       r.ID,
		ClientID:        r.ClientID,
		Period:          r.Period,
		Note:            note,
	}
}

// MonthClosedEvent is raised when a client's month is closed
type MonthClosedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID          `json:"client_id"`
	Period   valueobject.Period `json:"period"`
	ClosedBy uuid.UUID          `json:"closed_by"`
}

// NewMonthClosedEvent creates a new MonthClosedEvent
func NewMonthClosedEvent(m *MonthStatus) *MonthClosedEvent {
	var closedBy uuid.UUID
	if m.ClosedBy != nil {
		closedBy = *m.ClosedBy
	}
	return &MonthClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMonthClosed, m.ID, AggregateTypeMonthStatus),
		ClientID:        m.ClientID,
		Period:          m.Period,
		ClosedBy:        closedBy,
	}
}

package fiscal

import (
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MonthState is the open/closed status of a client's month. It is the single
// source of truth for whether receipts of that period may still be mutated.
type MonthState string

const (
	MonthStateOpen   MonthState = "open"
	MonthStateClosed MonthState = "closed"
)

// IsValid checks if the state is a valid MonthState
func (s MonthState) IsValid() bool {
	return s == MonthStateOpen || s == MonthStateClosed
}

// String returns the string representation of MonthState
func (s MonthState) String() string {
	return string(s)
}

// MonthStatus is the per-client, per-period open/closed row. A missing row
// means the month has never been touched and counts as open.
type MonthStatus struct {
	shared.BaseAggregateRoot
	ClientID uuid.UUID
	Period   valueobject.Period
	State    MonthState
	ClosedBy *uuid.UUID
	ClosedAt *time.Time
}

// NewMonthStatus creates an open month row for a client and period
func NewMonthStatus(clientID uuid.UUID, period valueobject.Period) (*MonthStatus, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	if period.IsZero() {
		return nil, shared.NewValidationError("Period is required")
	}
	return &MonthStatus{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Period:            period,
		State:             MonthStateOpen,
	}, nil
}

// IsClosed reports whether the month is closed
func (m *MonthStatus) IsClosed() bool {
	return m.State == MonthStateClosed
}

// Close flips the month to closed and stamps the audit pair. Closing an
// already-closed month is a no-op success so a double submission from a slow
// UI does not surface as an error. The receipt-set guard is evaluated by the
// caller against the current ledger, inside the same transaction as this flip.
func (m *MonthStatus) Close(closedBy uuid.UUID) error {
	if closedBy == uuid.Nil {
		return shared.NewValidationError("Closer ID cannot be empty")
	}
	if m.IsClosed() {
		return nil
	}

	now := time.Now()
	m.State = MonthStateClosed
	m.ClosedBy = &closedBy
	m.ClosedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMonthClosedEvent(m))

	return nil
}

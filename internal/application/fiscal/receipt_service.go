package fiscal

import (
	"context"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptService provides application-level receipt ledger operations.
// Every mutation is guarded by the month-open invariant: once a month is
// closed, its receipts are frozen regardless of who writes.
type ReceiptService struct {
	receipts fiscal.ReceiptRepository
	months   fiscal.MonthStatusRepository
	clients  fiscal.ClientRepository
	cache    SummaryInvalidator
	events   shared.EventPublisher
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receipts fiscal.ReceiptRepository,
	months fiscal.MonthStatusRepository,
	clients fiscal.ClientRepository,
	cache SummaryInvalidator,
	events shared.EventPublisher,
) *ReceiptService {
	return &ReceiptService{
		receipts: receipts,
		months:   months,
		clients:  clients,
		cache:    cache,
		events:   events,
	}
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID              uuid.UUID           `json:"id"`
	ClientID        uuid.UUID           `json:"client_id"`
	Period          string              `json:"period"`
	EmissionDate    time.Time           `json:"emission_date"`
	Kind            string              `json:"kind"`
	Amount          decimal.Decimal     `json:"amount"`
	NetContribution decimal.Decimal     `json:"net_contribution"`
	Counterparty    fiscal.Counterparty `json:"counterparty"`
	ReviewState     string              `json:"review_state"`
	ObservationNote string              `json:"observation_note,omitempty"`
	AttachmentURLs  []string            `json:"attachment_urls,omitempty"`
	ReviewedBy      *uuid.UUID          `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// CreateReceiptRequest represents a request to create a receipt
type CreateReceiptRequest struct {
	ClientID          uuid.UUID       `json:"client_id" binding:"required"`
	Period            string          `json:"period" binding:"required,period"`
	EmissionDate      time.Time       `json:"emission_date" binding:"required"`
	Kind              string          `json:"kind" binding:"required,oneof=FC NC ND"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CounterpartyName  string          `json:"counterparty_name" binding:"required"`
	CounterpartyTaxID string          `json:"counterparty_tax_id"`
	AttachmentURLs    []string        `json:"attachment_urls"`
}

// UpdateReceiptRequest represents a request to edit a receipt's own fields.
// The period is not editable.
type UpdateReceiptRequest struct {
	EmissionDate      time.Time       `json:"emission_date" binding:"required"`
	Kind              string          `json:"kind" binding:"required,oneof=FC NC ND"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CounterpartyName  string          `json:"counterparty_name" binding:"required"`
	CounterpartyTaxID string          `json:"counterparty_tax_id"`
	AttachmentURLs    []string        `json:"attachment_urls"`
}

// CreateReceipt enters a new receipt into the ledger
func (s *ReceiptService) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (*ReceiptResponse, error) {
	period, err := valueobject.ParsePeriod(req.Period)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	client, err := s.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	if err := s.ensureMonthOpen(ctx, req.ClientID, period); err != nil {
		return nil, err
	}

	receipt, err := fiscal.NewReceipt(
		req.ClientID,
		period,
		req.EmissionDate,
		fiscal.ReceiptKind(req.Kind),
		valueobject.NewMoneyARS(req.Amount),
		fiscal.Counterparty{Name: req.CounterpartyName, TaxID: req.CounterpartyTaxID},
		req.AttachmentURLs,
	)
	if err != nil {
		return nil, err
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx, req.ClientID, period)
	s.publishEvents(ctx, receipt)

	return toReceiptResponse(receipt), nil
}

// GetReceipt returns a single receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// ListReceipts returns every receipt of a client for one period
func (s *ReceiptService) ListReceipts(ctx context.Context, clientID uuid.UUID, periodStr string) ([]ReceiptResponse, error) {
	period, err := valueobject.ParsePeriod(periodStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	receipts, err := s.receipts.FindByClientAndPeriod(ctx, clientID, period)
	if err != nil {
		return nil, err
	}

	responses := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = *toReceiptResponse(&receipts[i])
	}
	return responses, nil
}

// UpdateReceipt edits a receipt while its month is open
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, req UpdateReceiptRequest) (*ReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureMonthOpen(ctx, receipt.ClientID, receipt.Period); err != nil {
		return nil, err
	}

	err = receipt.UpdateDetails(
		req.EmissionDate,
		fiscal.ReceiptKind(req.Kind),
		valueobject.NewMoneyARS(req.Amount),
		fiscal.Counterparty{Name: req.CounterpartyName, TaxID: req.CounterpartyTaxID},
		req.AttachmentURLs,
	)
	if err != nil {
		return nil, err
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx, receipt.ClientID, receipt.Period)

	return toReceiptResponse(receipt), nil
}

// DeleteReceipt removes a receipt while its month is open. Deleting does not
// auto-close the month: closing is always an explicit, re-validated call.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ensureMonthOpen(ctx, receipt.ClientID, receipt.Period); err != nil {
		return err
	}

	if err := s.receipts.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSummary(ctx, receipt.ClientID, receipt.Period)
	return nil
}

// ensureMonthOpen rejects mutations for a closed month. A missing month
// status row means the month was never touched and counts as open.
func (s *ReceiptService) ensureMonthOpen(ctx context.Context, clientID uuid.UUID, period valueobject.Period) error {
	status, err := s.months.FindByClientAndPeriod(ctx, clientID, period)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil
		}
		return err
	}
	if status.IsClosed() {
		return shared.NewPreconditionError("Month is closed; its receipts can no longer be modified").
			WithDetail("reason", "month_closed").
			WithDetail("period", period.String())
	}
	return nil
}

func (s *ReceiptService) invalidateSummary(ctx context.Context, clientID uuid.UUID, period valueobject.Period) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, clientID, period)
	}
}

func (s *ReceiptService) publishEvents(ctx context.Context, receipt *fiscal.Receipt) {
	if s.events == nil {
		return
	}
	// Event delivery is best-effort; the ledger write already committed.
	_ = s.events.Publish(ctx, receipt.GetDomainEvents()...)
	receipt.ClearDomainEvents()
}

func toReceiptResponse(r *fiscal.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:              r.ID,
		ClientID:        r.ClientID,
		Period:          r.Period.String(),
		EmissionDate:    r.EmissionDate,
		Kind:            r.Kind.String(),
		Amount:          r.Amount,
		NetContribution: r.NetContribution(),
		Counterparty:    r.Counterparty,
		ReviewState:     r.ReviewState.String(),
		ObservationNote: r.ObservationNote,
		AttachmentURLs:  r.AttachmentURLs,
		ReviewedBy:      r.ReviewedBy,
		ReviewedAt:      r.ReviewedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Version:         r.Version,
	}
}

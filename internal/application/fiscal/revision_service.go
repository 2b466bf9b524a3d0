package fiscal

import (
	"context"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RevisionService drives the monthly review workflow: per-receipt review
// transitions and the month close. The reviewer is always an explicit
// parameter rather than ambient session state.
type RevisionService struct {
	uow      fiscal.RevisionUnitOfWork
	receipts fiscal.ReceiptRepository
	months   fiscal.MonthStatusRepository
	cache    SummaryInvalidator
	events   shared.EventPublisher
}

// NewRevisionService creates a new RevisionService
func NewRevisionService(
	uow fiscal.RevisionUnitOfWork,
	receipts fiscal.ReceiptRepository,
	months fiscal.MonthStatusRepository,
	cache SummaryInvalidator,
	events shared.EventPublisher,
) *RevisionService {
	return &RevisionService{
		uow:      uow,
		receipts: receipts,
		months:   months,
		cache:    cache,
		events:   events,
	}
}

// MarkObservedRequest represents a request to flag a receipt
type MarkObservedRequest struct {
	Note string `json:"note" binding:"required"`
}

// MarkAllOkResponse reports what a bulk approval touched
type MarkAllOkResponse struct {
	MarkedOk        int `json:"marked_ok"`
	SkippedObserved int `json:"skipped_observed"`
}

// CloseMonthResponse represents the closed month
type CloseMonthResponse struct {
	ClientID uuid.UUID  `json:"client_id"`
	Period   string     `json:"period"`
	State    string     `json:"state"`
	ClosedBy *uuid.UUID `json:"closed_by,omitempty"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// MarkOk approves a single receipt. Idempotent: approving an already-ok
// receipt succeeds without effect.
func (s *RevisionService) MarkOk(ctx context.Context, receiptID, reviewedBy uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureMonthOpen(ctx, receipt.ClientID, receipt.Period); err != nil {
		return nil, err
	}

	if err := receipt.MarkOk(reviewedBy); err != nil {
		return nil, err
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		return nil, err
	}

	s.invalidate(ctx, receipt.ClientID, receipt.Period)
	s.publish(ctx, receipt.GetDomainEvents()...)
	receipt.ClearDomainEvents()

	return toReceiptResponse(receipt), nil
}

// MarkObserved flags a discrepancy on a receipt. The raised observation is
// published for the messaging collaborator to notify the client.
func (s *RevisionService) MarkObserved(ctx context.Context, receiptID, reviewedBy uuid.UUID, req MarkObservedRequest) (*ReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureMonthOpen(ctx, receipt.ClientID, receipt.Period); err != nil {
		return nil, err
	}

	if err := receipt.MarkObserved(req.Note, reviewedBy); err != nil {
		return nil, err
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		return nil, err
	}

	s.invalidate(ctx, receipt.ClientID, receipt.Period)
	s.publish(ctx, receipt.GetDomainEvents()...)
	receipt.ClearDomainEvents()

	return toReceiptResponse(receipt), nil
}

// MarkAllOk bulk-approves every pending receipt of the period. Observed
// receipts are deliberately skipped: a flagged discrepancy must be resolved
// one by one, never cleared by a blanket action.
func (s *RevisionService) MarkAllOk(ctx context.Context, clientID uuid.UUID, periodStr string, reviewedBy uuid.UUID) (*MarkAllOkResponse, error) {
	period, err := valueobject.ParsePeriod(periodStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	if err := s.ensureMonthOpen(ctx, clientID, period); err != nil {
		return nil, err
	}

	resp := &MarkAllOkResponse{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos fiscal.RevisionTxRepos) error {
		receipts, err := repos.Receipts.FindByClientAndPeriod(ctx, clientID, period)
		if err != nil {
			return err
		}

		for i := range receipts {
			switch {
			case receipts[i].IsPending():
				if err := receipts[i].MarkOk(reviewedBy); err != nil {
					return err
				}
				if err := repos.Receipts.Save(ctx, &receipts[i]); err != nil {
					return err
				}
				resp.MarkedOk++
			case receipts[i].IsObserved():
				resp.SkippedObserved++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.MarkedOk > 0 {
		s.invalidate(ctx, clientID, period)
	}
	return resp, nil
}

// CloseMonth closes a client's month. The guard check and the state flip run
// as one atomic step: receipts are re-read inside the transaction, so a
// receipt turning pending or observed concurrently fails the guard instead
// of racing to a false close. Closing an already-closed month is a no-op
// success.
func (s *RevisionService) CloseMonth(ctx context.Context, clientID uuid.UUID, periodStr string, closedBy uuid.UUID) (*CloseMonthResponse, error) {
	period, err := valueobject.ParsePeriod(periodStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	if closedBy == uuid.Nil {
		return nil, shared.NewValidationError("Closer ID cannot be empty")
	}

	var status *fiscal.MonthStatus
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos fiscal.RevisionTxRepos) error {
		var err error
		status, err = repos.MonthStatuses.FindByClientAndPeriod(ctx, clientID, period)
		if err != nil && !shared.IsCode(err, shared.CodeNotFound) {
			return err
		}
		if status != nil && status.IsClosed() {
			// Idempotent close: tolerate a double submission.
			return nil
		}

		// Guard evaluated against the current receipt set, in the same
		// transaction as the flip below.
		receipts, err := repos.Receipts.FindByClientAndPeriod(ctx, clientID, period)
		if err != nil {
			return err
		}
		if err := fiscal.EvaluateCloseGuard(receipts); err != nil {
			return err
		}

		if status == nil {
			status, err = fiscal.NewMonthStatus(clientID, period)
			if err != nil {
				return err
			}
		}
		if err := status.Close(closedBy); err != nil {
			return err
		}
		return repos.MonthStatuses.Save(ctx, status)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, clientID, period)
	s.publish(ctx, status.GetDomainEvents()...)
	status.ClearDomainEvents()

	return &CloseMonthResponse{
		ClientID: clientID,
		Period:   period.String(),
		State:    status.State.String(),
		ClosedBy: status.ClosedBy,
		ClosedAt: status.ClosedAt,
	}, nil
}

func (s *RevisionService) ensureMonthOpen(ctx context.Context, clientID uuid.UUID, period valueobject.Period) error {
	status, err := s.months.FindByClientAndPeriod(ctx, clientID, period)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil
		}
		return err
	}
	if status.IsClosed() {
		return shared.NewPreconditionError("Month is closed; review states can no longer change").
			WithDetail("reason", "month_closed").
			WithDetail("period", period.String())
	}
	return nil
}

func (s *RevisionService) invalidate(ctx context.Context, clientID uuid.UUID, period valueobject.Period) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, clientID, period)
	}
}

func (s *RevisionService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
}

package fiscal

import (
	"context"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ReceiptRepository defines the persistence contract for the receipt ledger
type ReceiptRepository interface {
	// FindByID finds a receipt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// FindByClientAndPeriod returns every receipt of a client for one period
	FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) ([]Receipt, error)

	// FindByClientInRange returns every receipt of a client with a period in
	// [from, to] inclusive
	FindByClientInRange(ctx context.Context, clientID uuid.UUID, from, to valueobject.Period) ([]Receipt, error)

	// Save creates or updates a receipt
	Save(ctx context.Context, receipt *Receipt) error

	// Delete removes a receipt
	Delete(ctx context.Context, id uuid.UUID) error
}

// FiscalCategoryRepository defines the persistence contract for the category table
type FiscalCategoryRepository interface {
	// FindByID finds a category row by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FiscalCategory, error)

	// FindCurrentByCode finds the open-ended current row for a code
	FindCurrentByCode(ctx context.Context, code string) (*FiscalCategory, error)

	// FindByCodeAsOf finds the row whose validity window covers the period
	FindByCodeAsOf(ctx context.Context, code string, asOf valueobject.Period) (*FiscalCategory, error)

	// FindAllByCode returns every historical row for a code, oldest first
	FindAllByCode(ctx context.Context, code string) ([]FiscalCategory, error)

	// Save creates or updates a category row
	Save(ctx context.Context, category *FiscalCategory) error
}

// ClientRepository defines the persistence contract for clients
type ClientRepository interface {
	// FindByID finds a client by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll returns clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error
}

// MonthStatusRepository defines the persistence contract for month open/closed rows
type MonthStatusRepository interface {
	// FindByClientAndPeriod returns the row for a client and period, or
	// shared.ErrNotFound when the month was never touched (callers treat a
	// missing row as open)
	FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*MonthStatus, error)

	// FindClosedPeriods returns the periods a client has closed, oldest first
	FindClosedPeriods(ctx context.Context, clientID uuid.UUID) ([]valueobject.Period, error)

	// Save creates or updates a month status row
	Save(ctx context.Context, status *MonthStatus) error
}

// RevisionTxRepos bundles the repositories visible inside one revision
// transaction. Every read through them observes the same snapshot the final
// writes commit against.
type RevisionTxRepos struct {
	Receipts      ReceiptRepository
	MonthStatuses MonthStatusRepository
}

// RevisionUnitOfWork runs a function inside a single storage transaction.
// CloseMonth depends on it: the close guard must be re-evaluated against the
// current receipt set in the same atomic step that flips the month state.
type RevisionUnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos RevisionTxRepos) error) error
}

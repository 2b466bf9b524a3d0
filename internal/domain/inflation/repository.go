package inflation

import (
	"context"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
)

// RecordRepository defines the persistence contract for the inflation series.
// The series is a separate data source from the fiscal ledger.
type RecordRepository interface {
	// FindInRange returns records with a period in [from, to] inclusive,
	// oldest first
	FindInRange(ctx context.Context, from, to valueobject.Period) ([]Record, error)

	// FindByPeriod returns the record for one period, or shared.ErrNotFound
	FindByPeriod(ctx context.Context, period valueobject.Period) (*Record, error)

	// Upsert stores a record, replacing any earlier value for its period
	// (last-write-wins)
	Upsert(ctx context.Context, record *Record) error

	// LatestPeriod returns the most recent period with a published rate, or
	// shared.ErrNotFound for an empty series
	LatestPeriod(ctx context.Context) (valueobject.Period, error)
}

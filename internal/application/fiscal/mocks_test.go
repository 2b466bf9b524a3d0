package fiscal

import (
	"context"
	"testing"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReceiptRepository struct {
	mock.Mock
}

func (m *mockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.Receipt), args.Error(1)
}

func (m *mockReceiptRepository) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) ([]fiscal.Receipt, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.Receipt), args.Error(1)
}

func (m *mockReceiptRepository) FindByClientInRange(ctx context.Context, clientID uuid.UUID, from, to valueobject.Period) ([]fiscal.Receipt, error) {
	args := m.Called(ctx, clientID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.Receipt), args.Error(1)
}

func (m *mockReceiptRepository) Save(ctx context.Context, receipt *fiscal.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *mockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMonthStatusRepository struct {
	mock.Mock
}

func (m *mockMonthStatusRepository) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthStatus, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.MonthStatus), args.Error(1)
}

func (m *mockMonthStatusRepository) FindClosedPeriods(ctx context.Context, clientID uuid.UUID) ([]valueobject.Period, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]valueobject.Period), args.Error(1)
}

func (m *mockMonthStatusRepository) Save(ctx context.Context, status *fiscal.MonthStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.Client), args.Error(1)
}

func (m *mockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fiscal.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.Client), args.Error(1)
}

func (m *mockClientRepository) Save(ctx context.Context, client *fiscal.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.FiscalCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.FiscalCategory), args.Error(1)
}

func (m *mockCategoryRepository) FindCurrentByCode(ctx context.Context, code string) (*fiscal.FiscalCategory, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.FiscalCategory), args.Error(1)
}

func (m *mockCategoryRepository) FindByCodeAsOf(ctx context.Context, code string, asOf valueobject.Period) (*fiscal.FiscalCategory, error) {
	args := m.Called(ctx, code, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.FiscalCategory), args.Error(1)
}

func (m *mockCategoryRepository) FindAllByCode(ctx context.Context, code string) ([]fiscal.FiscalCategory, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.FiscalCategory), args.Error(1)
}

func (m *mockCategoryRepository) Save(ctx context.Context, category *fiscal.FiscalCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// fakeUnitOfWork runs the transactional function directly against the given
// repositories, standing in for a real storage transaction.
type fakeUnitOfWork struct {
	repos fiscal.RevisionTxRepos
}

func (f *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos fiscal.RevisionTxRepos) error) error {
	return fn(ctx, f.repos)
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, clientID uuid.UUID, period valueobject.Period) {
	f.calls++
}

func newTestClient(t *testing.T, categoryCode string) *fiscal.Client {
	t.Helper()
	client, err := fiscal.NewClient("Estudio Test SRL", "30-11111111-1", categoryCode, fiscal.InvoicingModeManaged)
	require.NoError(t, err)
	return client
}

func newServiceReceipt(t *testing.T, clientID uuid.UUID, period valueobject.Period, kind fiscal.ReceiptKind, amount int64) *fiscal.Receipt {
	t.Helper()
	receipt, err := fiscal.NewReceipt(
		clientID,
		period,
		time.Date(period.Year(), time.Month(period.Month()), 15, 0, 0, 0, 0, time.UTC),
		kind,
		valueobject.NewMoneyARS(decimal.NewFromInt(amount)),
		fiscal.Counterparty{Name: "Cliente Final SA", TaxID: "30-22222222-2"},
		nil,
	)
	require.NoError(t, err)
	receipt.ClearDomainEvents()
	return receipt
}

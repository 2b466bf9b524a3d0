package handler

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// Map-backed repository fakes shared by the handler tests.

type memReceiptRepo struct {
	receipts map[uuid.UUID]*fiscal.Receipt
}

func newMemReceiptRepo() *memReceiptRepo {
	return &memReceiptRepo{receipts: make(map[uuid.UUID]*fiscal.Receipt)}
}

func (m *memReceiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Receipt, error) {
	if r, ok := m.receipts[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memReceiptRepo) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) ([]fiscal.Receipt, error) {
	var result []fiscal.Receipt
	for _, r := range m.receipts {
		if r.ClientID == clientID && r.Period.Equal(period) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EmissionDate.Before(result[j].EmissionDate)
	})
	return result, nil
}

func (m *memReceiptRepo) FindByClientInRange(ctx context.Context, clientID uuid.UUID, from, to valueobject.Period) ([]fiscal.Receipt, error) {
	var result []fiscal.Receipt
	for _, r := range m.receipts {
		if r.ClientID == clientID && !r.Period.Before(from) && !r.Period.After(to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *memReceiptRepo) Save(ctx context.Context, receipt *fiscal.Receipt) error {
	copied := *receipt
	m.receipts[receipt.ID] = &copied
	return nil
}

func (m *memReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.receipts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.receipts, id)
	return nil
}

type monthKey struct {
	clientID uuid.UUID
	period   string
}

type memMonthStatusRepo struct {
	statuses map[monthKey]*fiscal.MonthStatus
}

func newMemMonthStatusRepo() *memMonthStatusRepo {
	return &memMonthStatusRepo{statuses: make(map[monthKey]*fiscal.MonthStatus)}
}

func (m *memMonthStatusRepo) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthStatus, error) {
	if s, ok := m.statuses[monthKey{clientID, period.String()}]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memMonthStatusRepo) FindClosedPeriods(ctx context.Context, clientID uuid.UUID) ([]valueobject.Period, error) {
	var periods []valueobject.Period
	for key, s := range m.statuses {
		if key.clientID == clientID && s.IsClosed() {
			periods = append(periods, s.Period)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods, nil
}

func (m *memMonthStatusRepo) Save(ctx context.Context, status *fiscal.MonthStatus) error {
	copied := *status
	m.statuses[monthKey{status.ClientID, status.Period.String()}] = &copied
	return nil
}

type memClientRepo struct {
	clients map[uuid.UUID]*fiscal.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[uuid.UUID]*fiscal.Client)}
}

func (m *memClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Client, error) {
	if c, ok := m.clients[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memClientRepo) FindAll(ctx context.Context, filter shared.Filter) ([]fiscal.Client, error) {
	var result []fiscal.Client
	for _, c := range m.clients {
		result = append(result, *c)
	}
	return result, nil
}

func (m *memClientRepo) Save(ctx context.Context, client *fiscal.Client) error {
	copied := *client
	m.clients[client.ID] = &copied
	return nil
}

// memRevisionUOW runs the transactional function directly against the
// in-memory repositories.
type memRevisionUOW struct {
	receipts *memReceiptRepo
	months   *memMonthStatusRepo
}

func (u *memRevisionUOW) WithinTx(ctx context.Context, fn func(ctx context.Context, repos fiscal.RevisionTxRepos) error) error {
	return fn(ctx, fiscal.RevisionTxRepos{
		Receipts:      u.receipts,
		MonthStatuses: u.months,
	})
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(ctx context.Context, clientID uuid.UUID, period valueobject.Period) {
}

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return nil
}

// Test data helpers.

func mustPeriod(t *testing.T, s string) valueobject.Period {
	t.Helper()
	p, err := valueobject.ParsePeriod(s)
	require.NoError(t, err)
	return p
}

func seedClient(t *testing.T, repo *memClientRepo) *fiscal.Client {
	t.Helper()
	client, err := fiscal.NewClient("Estudio Salas", "20-23456789-3", "D", fiscal.InvoicingModeManaged)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), client))
	return client
}

func seedReceipt(t *testing.T, repo *memReceiptRepo, clientID uuid.UUID, period string, amount float64) *fiscal.Receipt {
	t.Helper()
	receipt, err := fiscal.NewReceipt(
		clientID,
		mustPeriod(t, period),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		fiscal.ReceiptKindFactura,
		valueobject.NewMoneyARSFromFloat(amount),
		fiscal.Counterparty{Name: "Cliente Final SA", TaxID: "30-11223344-5"},
		nil,
	)
	require.NoError(t, err)
	receipt.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), receipt))
	return receipt
}

package fiscal

import (
	"testing"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiptIn(t *testing.T, clientID uuid.UUID, period valueobject.Period, kind ReceiptKind, amount float64) Receipt {
	t.Helper()
	emission := time.Date(period.Year(), time.Month(period.Month()), 5, 0, 0, 0, 0, time.UTC)
	r, err := NewReceipt(clientID, period, emission, kind,
		valueobject.NewMoneyARSFromFloat(amount),
		Counterparty{Name: "Cliente Final"},
		nil,
	)
	require.NoError(t, err)
	return *r
}

func TestWindowBoundaries(t *testing.T) {
	asOf := valueobject.MustPeriod(2025, 6)

	assert.Equal(t, valueobject.MustPeriod(2024, 7), WindowStart(asOf))
	assert.True(t, InWindow(asOf, asOf), "asOf itself is included")
	assert.True(t, InWindow(asOf.SubMonths(11), asOf), "11 months before is included")
	assert.False(t, InWindow(asOf.SubMonths(12), asOf), "exactly 12 months before is excluded")
	assert.False(t, InWindow(asOf.Next(), asOf), "future months are excluded")
}

func TestAccumulate(t *testing.T) {
	clientID := uuid.New()
	asOf := valueobject.MustPeriod(2025, 6)

	t.Run("empty ledger yields zero totals", func(t *testing.T) {
		totals := Accumulate(nil, asOf)
		assert.True(t, totals.TotalNet.IsZero())
		assert.True(t, totals.TotalFC.IsZero())
		assert.True(t, totals.TotalNC.IsZero())
		assert.True(t, totals.TotalND.IsZero())
	})

	t.Run("net follows FC plus ND minus NC", func(t *testing.T) {
		receipts := []Receipt{
			receiptIn(t, clientID, asOf, ReceiptKindFactura, 100000),
			receiptIn(t, clientID, asOf.Prev(), ReceiptKindNotaDebito, 20000),
			receiptIn(t, clientID, asOf.Prev(), ReceiptKindNotaCredito, 30000),
		}

		totals := Accumulate(receipts, asOf)

		assert.True(t, totals.TotalFC.Equal(decimal.NewFromInt(100000)))
		assert.True(t, totals.TotalND.Equal(decimal.NewFromInt(20000)))
		assert.True(t, totals.TotalNC.Equal(decimal.NewFromInt(30000)))
		assert.True(t, totals.TotalNet.Equal(totals.TotalFC.Add(totals.TotalND).Sub(totals.TotalNC)))
		assert.True(t, totals.TotalNet.Equal(decimal.NewFromInt(90000)))
	})

	t.Run("receipt exactly 12 months back does not affect the total", func(t *testing.T) {
		inside := receiptIn(t, clientID, asOf.SubMonths(11), ReceiptKindFactura, 500)
		outside := receiptIn(t, clientID, asOf.SubMonths(12), ReceiptKindFactura, 999999)

		withOutside := Accumulate([]Receipt{inside, outside}, asOf)
		withoutOutside := Accumulate([]Receipt{inside}, asOf)

		assert.True(t, withOutside.TotalNet.Equal(withoutOutside.TotalNet))
		assert.True(t, withOutside.TotalNet.Equal(decimal.NewFromInt(500)))
	})

	t.Run("credit-note netting", func(t *testing.T) {
		receipts := []Receipt{
			receiptIn(t, clientID, asOf, ReceiptKindFactura, 100000),
			receiptIn(t, clientID, asOf, ReceiptKindNotaCredito, 30000),
		}
		totals := Accumulate(receipts, asOf)
		assert.True(t, totals.TotalNet.Equal(decimal.NewFromInt(70000)))
	})

	t.Run("credit-dominated window goes negative", func(t *testing.T) {
		receipts := []Receipt{
			receiptIn(t, clientID, asOf, ReceiptKindFactura, 10000),
			receiptIn(t, clientID, asOf, ReceiptKindNotaCredito, 25000),
		}
		totals := Accumulate(receipts, asOf)
		assert.True(t, totals.TotalNet.IsNegative())
		assert.True(t, totals.TotalNet.Equal(decimal.NewFromInt(-15000)))
	})

	t.Run("order independence", func(t *testing.T) {
		a := receiptIn(t, clientID, asOf, ReceiptKindFactura, 111)
		b := receiptIn(t, clientID, asOf.Prev(), ReceiptKindNotaCredito, 22)
		c := receiptIn(t, clientID, asOf.SubMonths(5), ReceiptKindNotaDebito, 33)

		forward := Accumulate([]Receipt{a, b, c}, asOf)
		backward := Accumulate([]Receipt{c, b, a}, asOf)

		assert.True(t, forward.TotalNet.Equal(backward.TotalNet))
		assert.True(t, forward.TotalFC.Equal(backward.TotalFC))
	})

	t.Run("cap breach scenario", func(t *testing.T) {
		// 12 monthly invoices of 550,000 against a 6,000,000 cap.
		var receipts []Receipt
		for i := 0; i < 12; i++ {
			receipts = append(receipts, receiptIn(t, clientID, asOf.SubMonths(i), ReceiptKindFactura, 550000))
		}

		totals := Accumulate(receipts, asOf)
		require.True(t, totals.TotalNet.Equal(decimal.NewFromInt(6600000)))

		assessment := Classify(totals.TotalNet, decimal.NewFromInt(6000000), DefaultRiskThresholds())
		assert.Equal(t, RiskTierExclusion, assessment.Tier)
		assert.True(t, assessment.Percentage.Equal(decimal.NewFromInt(110)))
	})
}

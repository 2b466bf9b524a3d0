package inflation

import (
	"testing"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, period valueobject.Period, rate string) Record {
	t.Helper()
	d, err := decimal.NewFromString(rate)
	require.NoError(t, err)
	r, err := NewRecord(period, d)
	require.NoError(t, err)
	return *r
}

func TestNewRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		r, err := NewRecord(valueobject.MustPeriod(2025, 1), decimal.NewFromFloat(4.2))
		require.NoError(t, err)
		assert.True(t, r.MonthlyRatePercent.Equal(decimal.NewFromFloat(4.2)))
	})

	t.Run("deflation is allowed", func(t *testing.T) {
		_, err := NewRecord(valueobject.MustPeriod(2025, 1), decimal.NewFromFloat(-0.3))
		require.NoError(t, err)
	})

	t.Run("rate at or below -100 is rejected", func(t *testing.T) {
		_, err := NewRecord(valueobject.MustPeriod(2025, 1), decimal.NewFromInt(-100))
		require.Error(t, err)
	})
}

func TestSeriesLastWriteWins(t *testing.T) {
	p := valueobject.MustPeriod(2025, 2)
	s := NewSeries([]Record{
		record(t, p, "5.0"),
		record(t, p, "4.8"), // corrected value published later
	})

	rate, ok := s.Rate(p)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromFloat(4.8)))
	assert.Equal(t, 1, s.Len())
}

func TestAccumulatedInflation(t *testing.T) {
	jan := valueobject.MustPeriod(2025, 1)

	t.Run("same period yields zero", func(t *testing.T) {
		s := NewSeries([]Record{record(t, jan, "10")})
		assert.True(t, s.AccumulatedInflation(jan, jan).IsZero())
	})

	t.Run("inverted window yields zero, not an error", func(t *testing.T) {
		s := NewSeries([]Record{record(t, jan, "10")})
		assert.True(t, s.AccumulatedInflation(jan.AddMonths(3), jan).IsZero())
	})

	t.Run("single-month window reproduces the rate exactly", func(t *testing.T) {
		feb := jan.Next()
		s := NewSeries([]Record{
			record(t, jan, "99.9"), // excluded: starting month's rate is already absorbed
			record(t, feb, "3.7"),
		})
		got := s.AccumulatedInflation(jan, feb)
		assert.True(t, got.Equal(decimal.NewFromFloat(3.7)), "got %s", got)
	})

	t.Run("two consecutive 10% months compound to 21%", func(t *testing.T) {
		s := NewSeries([]Record{
			record(t, jan.Next(), "10"),
			record(t, jan.AddMonths(2), "10"),
		})
		got := s.AccumulatedInflation(jan, jan.AddMonths(2))
		assert.True(t, got.Equal(decimal.NewFromInt(21)), "got %s", got)

		adjusted := Adjust(decimal.NewFromInt(100), got)
		assert.True(t, adjusted.Equal(decimal.NewFromInt(121)), "compounding, not summing: got %s", adjusted)
	})

	t.Run("missing months are skipped", func(t *testing.T) {
		s := NewSeries([]Record{
			record(t, jan.Next(), "10"),
			// jan+2 missing
			record(t, jan.AddMonths(3), "10"),
		})
		got := s.AccumulatedInflation(jan, jan.AddMonths(3))
		assert.True(t, got.Equal(decimal.NewFromInt(21)), "got %s", got)
	})
}

func TestHasDataThrough(t *testing.T) {
	jan := valueobject.MustPeriod(2025, 1)
	s := NewSeries([]Record{
		record(t, jan.Next(), "2.0"),
		record(t, jan.AddMonths(3), "2.5"),
	})

	assert.True(t, s.HasDataThrough(jan, jan.Next()))
	assert.False(t, s.HasDataThrough(jan, jan.AddMonths(3)), "gap at jan+2")

	missing := s.MissingPeriods(jan, jan.AddMonths(3))
	require.Len(t, missing, 1)
	assert.Equal(t, jan.AddMonths(2), missing[0])

	t.Run("empty window has no gaps", func(t *testing.T) {
		assert.True(t, s.HasDataThrough(jan, jan))
		assert.Empty(t, s.MissingPeriods(jan, jan))
	})
}

func TestAdjust(t *testing.T) {
	got := Adjust(decimal.NewFromInt(200), decimal.NewFromFloat(50))
	assert.True(t, got.Equal(decimal.NewFromInt(300)))

	t.Run("zero percent is identity", func(t *testing.T) {
		got := Adjust(decimal.NewFromFloat(123.45), decimal.Zero)
		assert.True(t, got.Equal(decimal.NewFromFloat(123.45)))
	})
}

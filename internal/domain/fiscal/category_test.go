package fiscal

import (
	"testing"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiscalCategory(t *testing.T) {
	validFrom := valueobject.MustPeriod(2024, 1)

	t.Run("successful creation", func(t *testing.T) {
		c, err := NewFiscalCategory("h", decimal.NewFromInt(6000000), validFrom)
		require.NoError(t, err)
		assert.Equal(t, "H", c.Code, "code is normalized to upper case")
		assert.True(t, c.IsCurrent())
		assert.Nil(t, c.ValidTo)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewFiscalCategory("  ", decimal.NewFromInt(1000), validFrom)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidationFailed))
	})

	t.Run("rejects non-positive cap", func(t *testing.T) {
		_, err := NewFiscalCategory("A", decimal.Zero, validFrom)
		require.Error(t, err)
		_, err = NewFiscalCategory("A", decimal.NewFromInt(-5), validFrom)
		require.Error(t, err)
	})
}

func TestFiscalCategoryCovers(t *testing.T) {
	c, err := NewFiscalCategory("D", decimal.NewFromInt(3000000), valueobject.MustPeriod(2024, 1))
	require.NoError(t, err)

	t.Run("current row covers everything from validFrom", func(t *testing.T) {
		assert.False(t, c.Covers(valueobject.MustPeriod(2023, 12)))
		assert.True(t, c.Covers(valueobject.MustPeriod(2024, 1)))
		assert.True(t, c.Covers(valueobject.MustPeriod(2030, 6)))
	})

	t.Run("superseded row is bounded", func(t *testing.T) {
		_, err := c.Supersede(decimal.NewFromInt(3500000), valueobject.MustPeriod(2025, 1))
		require.NoError(t, err)

		assert.True(t, c.Covers(valueobject.MustPeriod(2024, 12)))
		assert.False(t, c.Covers(valueobject.MustPeriod(2025, 1)))
	})
}

func TestFiscalCategorySupersede(t *testing.T) {
	t.Run("closes old row and opens successor", func(t *testing.T) {
		old, err := NewFiscalCategory("D", decimal.NewFromInt(3000000), valueobject.MustPeriod(2024, 1))
		require.NoError(t, err)

		successor, err := old.Supersede(decimal.NewFromInt(3500000), valueobject.MustPeriod(2025, 1))
		require.NoError(t, err)

		require.NotNil(t, old.ValidTo)
		assert.Equal(t, valueobject.MustPeriod(2024, 12), *old.ValidTo)
		assert.False(t, old.IsCurrent())

		assert.True(t, successor.IsCurrent())
		assert.Equal(t, "D", successor.Code)
		assert.True(t, successor.AnnualCap.Equal(decimal.NewFromInt(3500000)))
		assert.Equal(t, valueobject.MustPeriod(2025, 1), successor.ValidFrom)
	})

	t.Run("only the current row can be superseded", func(t *testing.T) {
		old, err := NewFiscalCategory("D", decimal.NewFromInt(3000000), valueobject.MustPeriod(2024, 1))
		require.NoError(t, err)
		_, err = old.Supersede(decimal.NewFromInt(3500000), valueobject.MustPeriod(2025, 1))
		require.NoError(t, err)

		_, err = old.Supersede(decimal.NewFromInt(4000000), valueobject.MustPeriod(2026, 1))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodePreconditionFailed))
	})

	t.Run("new validity must start after the current start", func(t *testing.T) {
		c, err := NewFiscalCategory("D", decimal.NewFromInt(3000000), valueobject.MustPeriod(2024, 6))
		require.NoError(t, err)

		_, err = c.Supersede(decimal.NewFromInt(3500000), valueobject.MustPeriod(2024, 6))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidationFailed))
	})
}

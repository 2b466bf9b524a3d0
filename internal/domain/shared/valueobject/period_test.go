package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	t.Run("valid period", func(t *testing.T) {
		p, err := NewPeriod(2025, 3)
		require.NoError(t, err)
		assert.Equal(t, 2025, p.Year())
		assert.Equal(t, 3, p.Month())
	})

	t.Run("month out of range", func(t *testing.T) {
		_, err := NewPeriod(2025, 0)
		require.Error(t, err)
		_, err = NewPeriod(2025, 13)
		require.Error(t, err)
	})

	t.Run("year out of range", func(t *testing.T) {
		_, err := NewPeriod(1889, 1)
		require.Error(t, err)
		_, err = NewPeriod(2101, 1)
		require.Error(t, err)
	})
}

func TestParsePeriod(t *testing.T) {
	t.Run("canonical form", func(t *testing.T) {
		p, err := ParsePeriod("2024-11")
		require.NoError(t, err)
		assert.Equal(t, 2024, p.Year())
		assert.Equal(t, 11, p.Month())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2024", "2024-13", "11-2024", "2024/11"} {
			_, err := ParsePeriod(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestPeriodArithmetic(t *testing.T) {
	t.Run("add months crosses year boundary", func(t *testing.T) {
		p := MustPeriod(2024, 11)
		assert.Equal(t, MustPeriod(2025, 2), p.AddMonths(3))
		assert.Equal(t, MustPeriod(2024, 12), p.Next())
	})

	t.Run("sub months crosses year boundary", func(t *testing.T) {
		p := MustPeriod(2025, 2)
		assert.Equal(t, MustPeriod(2024, 3), p.SubMonths(11))
		assert.Equal(t, MustPeriod(2025, 1), p.Prev())
	})

	t.Run("add and sub are inverse", func(t *testing.T) {
		p := MustPeriod(2023, 7)
		for n := -30; n <= 30; n++ {
			assert.Equal(t, p, p.AddMonths(n).SubMonths(n))
		}
	})

	t.Run("months between", func(t *testing.T) {
		from := MustPeriod(2024, 5)
		to := MustPeriod(2025, 5)
		assert.Equal(t, 12, from.MonthsBetween(to))
		assert.Equal(t, -12, to.MonthsBetween(from))
		assert.Equal(t, 0, from.MonthsBetween(from))
	})
}

func TestPeriodOrdering(t *testing.T) {
	early := MustPeriod(2024, 12)
	late := MustPeriod(2025, 1)

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.False(t, early.Equal(late))
	assert.True(t, early.Equal(MustPeriod(2024, 12)))
	assert.Equal(t, -1, early.Compare(late))
	assert.Equal(t, 1, late.Compare(early))
	assert.Equal(t, 0, early.Compare(early))
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "2025-03", MustPeriod(2025, 3).String())
	assert.Equal(t, "2024-12", MustPeriod(2024, 12).String())

	// The canonical form must sort lexicographically in period order,
	// since range queries in storage rely on it.
	assert.Less(t, MustPeriod(2024, 9).String(), MustPeriod(2024, 10).String())
	assert.Less(t, MustPeriod(2024, 12).String(), MustPeriod(2025, 1).String())
}

func TestPeriodJSON(t *testing.T) {
	p := MustPeriod(2025, 6)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06"`, string(data))

	var decoded Period
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}

func TestPeriodScan(t *testing.T) {
	var p Period
	require.NoError(t, p.Scan("2024-08"))
	assert.Equal(t, MustPeriod(2024, 8), p)

	require.NoError(t, p.Scan([]byte("2023-01")))
	assert.Equal(t, MustPeriod(2023, 1), p)

	assert.Error(t, p.Scan(42))
}

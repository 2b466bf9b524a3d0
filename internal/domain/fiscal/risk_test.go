package fiscal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	thresholds := DefaultRiskThresholds()
	cap := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		totalNet int64
		wantTier RiskTier
		wantPct  int64
	}{
		{"zero total", 0, RiskTierOk, 0},
		{"negative total is ok, never negative risk", -50, RiskTierOk, -50},
		{"below recategorization threshold", 79, RiskTierOk, 79},
		{"at recategorization threshold", 80, RiskTierRecategorization, 80},
		{"between thresholds", 89, RiskTierRecategorization, 89},
		{"at exclusion threshold", 90, RiskTierExclusion, 90},
		{"over the cap", 110, RiskTierExclusion, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(decimal.NewFromInt(tt.totalNet), cap, thresholds)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.True(t, got.Percentage.Equal(decimal.NewFromInt(tt.wantPct)),
				"percentage = %s, want %d", got.Percentage, tt.wantPct)
		})
	}

	t.Run("non-positive cap yields zero percent and ok", func(t *testing.T) {
		got := Classify(decimal.NewFromInt(500), decimal.Zero, thresholds)
		assert.Equal(t, RiskTierOk, got.Tier)
		assert.True(t, got.Percentage.IsZero())

		got = Classify(decimal.NewFromInt(500), decimal.NewFromInt(-1), thresholds)
		assert.Equal(t, RiskTierOk, got.Tier)
		assert.True(t, got.Percentage.IsZero())
	})

	t.Run("monotonic across tiers for fixed cap", func(t *testing.T) {
		rank := func(tier RiskTier) int {
			switch tier {
			case RiskTierOk:
				return 0
			case RiskTierRecategorization:
				return 1
			default:
				return 2
			}
		}

		prev := -1
		for net := int64(-100); net <= 200; net += 5 {
			got := Classify(decimal.NewFromInt(net), cap, thresholds)
			assert.GreaterOrEqual(t, rank(got.Tier), prev, "tier regressed at totalNet=%d", net)
			prev = rank(got.Tier)
		}
	})

	t.Run("custom thresholds", func(t *testing.T) {
		custom := RiskThresholds{
			Recategorization: decimal.NewFromInt(70),
			Exclusion:        decimal.NewFromInt(95),
		}
		assert.Equal(t, RiskTierRecategorization, Classify(decimal.NewFromInt(70), cap, custom).Tier)
		assert.Equal(t, RiskTierRecategorization, Classify(decimal.NewFromInt(94), cap, custom).Tier)
		assert.Equal(t, RiskTierExclusion, Classify(decimal.NewFromInt(95), cap, custom).Tier)
	})
}

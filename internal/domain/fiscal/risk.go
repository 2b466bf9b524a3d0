package fiscal

import (
	"github.com/shopspring/decimal"
)

// RiskTier is the three-level alert derived from cap usage
type RiskTier string

const (
	RiskTierOk               RiskTier = "ok"
	RiskTierRecategorization RiskTier = "recategorization"
	RiskTierExclusion        RiskTier = "exclusion"
)

// String returns the string representation of RiskTier
func (t RiskTier) String() string {
	return string(t)
}

// RiskThresholds holds the tier boundaries as percentages of the annual cap
type RiskThresholds struct {
	Recategorization decimal.Decimal
	Exclusion        decimal.Decimal
}

// DefaultRiskThresholds returns the regime's standard 80/90 boundaries
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		Recategorization: decimal.NewFromInt(80),
		Exclusion:        decimal.NewFromInt(90),
	}
}

// RiskAssessment is the classifier's output: cap usage and the tier it maps to
type RiskAssessment struct {
	Tier       RiskTier        `json:"tier"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Classify maps a trailing net total against the annual cap. Total and
// deterministic over every real input: a non-positive cap yields 0% and a
// negative total classifies as ok, never as negative risk.
func Classify(totalNet, cap decimal.Decimal, thresholds RiskThresholds) RiskAssessment {
	percentage := decimal.Zero
	if cap.IsPositive() {
		percentage = totalNet.Div(cap).Mul(decimal.NewFromInt(100))
	}

	tier := RiskTierOk
	switch {
	case percentage.GreaterThanOrEqual(thresholds.Exclusion):
		tier = RiskTierExclusion
	case percentage.GreaterThanOrEqual(thresholds.Recategorization):
		tier = RiskTierRecategorization
	}

	return RiskAssessment{Tier: tier, Percentage: percentage}
}

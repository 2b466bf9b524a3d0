package fiscal

import (
	"strings"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// FiscalCategory is a row of the monotributo category table: a category code
// tied to the annual invoicing cap that applies while the row is valid.
// Rows are immutable once superseded - a cap change closes the current row's
// validity and opens a new one, so historical evaluations stay reproducible.
type FiscalCategory struct {
	shared.BaseAggregateRoot
	Code      string
	AnnualCap decimal.Decimal
	ValidFrom valueobject.Period
	ValidTo   *valueobject.Period
}

// NewFiscalCategory creates the initial (current) row for a category code
func NewFiscalCategory(code string, annualCap decimal.Decimal, validFrom valueobject.Period) (*FiscalCategory, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return nil, shared.NewValidationError("Category code cannot be empty")
	}
	if len(code) > 10 {
		return nil, shared.NewValidationError("Category code cannot exceed 10 characters")
	}
	if !annualCap.IsPositive() {
		return nil, shared.NewValidationError("Annual cap must be positive")
	}
	if validFrom.IsZero() {
		return nil, shared.NewValidationError("Category validity start is required")
	}

	return &FiscalCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		AnnualCap:         annualCap,
		ValidFrom:         validFrom,
	}, nil
}

// IsCurrent reports whether this row is the open-ended current one for its code
func (c *FiscalCategory) IsCurrent() bool {
	return c.ValidTo == nil
}

// Covers reports whether this row's validity window contains the given period
func (c *FiscalCategory) Covers(period valueobject.Period) bool {
	if period.Before(c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && period.After(*c.ValidTo) {
		return false
	}
	return true
}

// Supersede closes this row's validity at the period before effectiveFrom and
// returns the new current row carrying the new cap. The receiver must be the
// current row.
func (c *FiscalCategory) Supersede(newCap decimal.Decimal, effectiveFrom valueobject.Period) (*FiscalCategory, error) {
	if !c.IsCurrent() {
		return nil, shared.NewPreconditionError("Only the current category row can be superseded")
	}
	if !effectiveFrom.After(c.ValidFrom) {
		return nil, shared.NewValidationError("New validity must start after the current row's start")
	}

	successor, err := NewFiscalCategory(c.Code, newCap, effectiveFrom)
	if err != nil {
		return nil, err
	}

	closedAt := effectiveFrom.Prev()
	c.ValidTo = &closedAt
	c.IncrementVersion()

	return successor, nil
}

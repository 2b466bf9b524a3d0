package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Period is a value object identifying a calendar month (year + month).
// It is immutable, totally ordered and supports month arithmetic.
// The canonical textual form is "YYYY-MM", which also sorts correctly
// as a plain string, so it doubles as the storage representation.
type Period struct {
	year  int
	month time.Month
}

// MinYear and MaxYear bound the supported period range. Records outside this
// range are rejected as malformed input rather than silently accepted.
const (
	MinYear = 1990
	MaxYear = 2100
)

// NewPeriod creates a Period, validating year and month
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < MinYear || year > MaxYear {
		return Period{}, fmt.Errorf("year must be between %d and %d, got %d", MinYear, MaxYear, year)
	}
	return Period{year: year, month: time.Month(month)}, nil
}

// MustPeriod creates a Period and panics on invalid input. Intended for
// tests and compile-time-known constants.
func MustPeriod(year, month int) Period {
	p, err := NewPeriod(year, month)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePeriod parses the canonical "YYYY-MM" form
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return NewPeriod(t.Year(), int(t.Month()))
}

// PeriodOf returns the Period containing the given time
func PeriodOf(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

// CurrentPeriod returns the Period containing the current time
func CurrentPeriod() Period {
	return PeriodOf(time.Now())
}

// Year returns the calendar year
func (p Period) Year() int {
	return p.year
}

// Month returns the calendar month (1-12)
func (p Period) Month() int {
	return int(p.month)
}

// IsZero reports whether the period is the zero value
func (p Period) IsZero() bool {
	return p.year == 0 && p.month == 0
}

// String returns the canonical "YYYY-MM" form
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// index maps the period onto a continuous month axis for arithmetic
func (p Period) index() int {
	return p.year*12 + int(p.month) - 1
}

// AddMonths returns the period n months after p (n may be negative)
func (p Period) AddMonths(n int) Period {
	idx := p.index() + n
	return Period{year: idx / 12, month: time.Month(idx%12 + 1)}
}

// SubMonths returns the period n months before p
func (p Period) SubMonths(n int) Period {
	return p.AddMonths(-n)
}

// Next returns the following month
func (p Period) Next() Period {
	return p.AddMonths(1)
}

// Prev returns the preceding month
func (p Period) Prev() Period {
	return p.AddMonths(-1)
}

// Compare returns -1, 0 or 1 ordering p against other
func (p Period) Compare(other Period) int {
	switch {
	case p.index() < other.index():
		return -1
	case p.index() > other.index():
		return 1
	default:
		return 0
	}
}

// Before reports whether p is strictly earlier than other
func (p Period) Before(other Period) bool {
	return p.Compare(other) < 0
}

// After reports whether p is strictly later than other
func (p Period) After(other Period) bool {
	return p.Compare(other) > 0
}

// Equal reports whether both periods identify the same month
func (p Period) Equal(other Period) bool {
	return p.Compare(other) == 0
}

// MonthsBetween returns the signed number of months from p to other
func (p Period) MonthsBetween(other Period) int {
	return other.index() - p.index()
}

// MarshalJSON encodes the period as its canonical string form
func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the canonical string form
func (p *Period) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer so Period persists as "YYYY-MM"
func (p Period) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner
func (p *Period) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParsePeriod(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case []byte:
		parsed, err := ParsePeriod(string(v))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	default:
		return errors.New("unsupported type for Period scan")
	}
}

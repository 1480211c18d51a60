package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
)

// Cadence is the bucket width used to aggregate a daily rate series.
type Cadence int

const (
	Daily Cadence = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var cadenceNames = [...]string{"Daily", "Weekly", "Monthly", "Quarterly", "Yearly"}

// AllCadences lists every cadence in display order.
var AllCadences = []Cadence{Daily, Weekly, Monthly, Quarterly, Yearly}

func (c Cadence) String() string {
	if c < Daily || c > Yearly {
		return fmt.Sprintf("Cadence(%d)", int(c))
	}
	return cadenceNames[c]
}

// ParseCadence parses a cadence name case-insensitively.
// Single-letter forms (D, W, M, Q, Y) are accepted too.
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	case "quarterly", "quarter", "q":
		return Quarterly, nil
	case "yearly", "year", "annual", "y":
		return Yearly, nil
	}
	return Daily, fmt.Errorf("%w: unknown cadence %q", apperrors.ErrValidation, s)
}

// PeriodEnd returns the last calendar date of the period containing d.
// Weeks end on Sunday; quarters end in March, June, September and December.
func (c Cadence) PeriodEnd(d time.Time) time.Time {
	d = TruncateDay(d)
	switch c {
	case Weekly:
		offset := (7 - int(d.Weekday())) % 7
		return d.AddDate(0, 0, offset)
	case Monthly:
		return Date(d.Year(), d.Month()+1, 1).AddDate(0, 0, -1)
	case Quarterly:
		lastMonth := ((d.Month()-1)/3 + 1) * 3
		return Date(d.Year(), lastMonth+1, 1).AddDate(0, 0, -1)
	case Yearly:
		return Date(d.Year(), time.December, 31)
	default:
		return d
	}
}

// MarshalText encodes the cadence as its name.
func (c Cadence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a cadence name.
func (c *Cadence) UnmarshalText(b []byte) error {
	v, err := ParseCadence(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

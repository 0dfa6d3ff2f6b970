package invoice

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Cents is an amount in minor currency units.
type Cents int64

const CentsPerUnit = 100

var (
	hundred  = decimal.NewFromInt(CentsPerUnit)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// ParseAmount turns a major unit string ("19.99") into cents (1999).
// Blank input counts as zero, which then fails the positive check, and so does
// anything that rounds to zero cents.
func ParseAmount(raw string) (Cents, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrAmountNotNumber, raw)
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q", ErrAmountTooLarge, raw)
	}
	if !cents.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return Cents(cents.IntPart()), nil
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats cents as a dollar amount (e.g., 150 -> "$1.50").
func (c Cents) String() string {
	return "$" + c.Decimal().StringFixed(2)
}

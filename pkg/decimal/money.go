package decimal

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const rupeeSymbol = "₹"

var (
	thousand = decimal.NewFromInt(1_000)
	lakh     = decimal.NewFromInt(1_00_000)
	crore    = decimal.NewFromInt(1_00_00_000)
)

// Money represents a rupee amount with full decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a plain decimal string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// ParseIndian parses user-entered amounts such as "₹12,34,567" or "1 00 000.50".
// The rupee sign, commas and whitespace are ignored.
func ParseIndian(value string) (Money, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '₹' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
	if cleaned == "" {
		return Money{}, fmt.Errorf("parse amount %q: empty", value)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return Money{d}, nil
}

// Round rounds the amount to paise
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Rupees rounds the amount to whole rupees
func (m Money) Rupees() Money {
	return Money{m.Decimal.Round(0)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimal places and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders whole rupees with Indian digit grouping, e.g. "₹12,34,567".
func (m Money) Format() string {
	return formatGrouped(m.Decimal, 0)
}

// FormatPaise renders the amount with two decimals, e.g. "₹1,23,456.78".
func (m Money) FormatPaise() string {
	return formatGrouped(m.Decimal, 2)
}

// Compact abbreviates large amounts: "₹1.25 Cr", "₹3.40 L", "₹12.50 K".
// Amounts below one thousand fall back to Format.
func (m Money) Compact() string {
	abs := m.Decimal.Abs()
	sign := ""
	if m.Decimal.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + rupeeSymbol + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + rupeeSymbol + abs.Div(lakh).StringFixed(2) + " L"
	case abs.GreaterThanOrEqual(thousand):
		return sign + rupeeSymbol + abs.Div(thousand).StringFixed(2) + " K"
	}
	return m.Format()
}

// FormatPercentage renders a percentage value such as 12.5 as "12.50%".
func FormatPercentage(value decimal.Decimal, places int32) string {
	return value.StringFixed(places) + "%"
}

// GroupIndian inserts lakh/crore separators into a string of digits:
// the last three digits form one group, the rest are grouped in pairs.
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	lead := len(head) % 2
	if lead == 1 {
		b.WriteString(head[:1])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

func formatGrouped(d decimal.Decimal, places int32) string {
	rounded := d.Round(places)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	fixed := rounded.StringFixed(places)
	whole, frac, _ := strings.Cut(fixed, ".")
	out := sign + rupeeSymbol + GroupIndian(whole)
	if frac != "" {
		out += "." + frac
	}
	return out
}

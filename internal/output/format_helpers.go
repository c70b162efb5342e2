package output

import (
	"strconv"

	moneyfmt "github.com/rupeecalc/rupee-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole rupees with lakh/crore grouping.
func FormatCurrency(amount decimal.Decimal) string { return moneyfmt.NewMoneyFromDecimal(amount).Format() }

// FormatCompact formats a decimal in Cr/L/K shorthand.
func FormatCompact(amount decimal.Decimal) string { return moneyfmt.NewMoneyFromDecimal(amount).Compact() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return moneyfmt.FormatPercentage(amount, 2) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

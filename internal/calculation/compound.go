package calculation

import (
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CompoundInterest computes P*(1+R/100/n)^(n*t). The headline figures use the
// exact duration; the breakdown has one row per whole year (fractional years
// are truncated, no partial row). An unknown frequency compounds yearly.
func CompoundInterest(in domain.CompoundInterestInput) domain.CompoundInterestResult {
	n, ok := in.Frequency.PeriodsPerYear()
	if !ok {
		n = 1
	}
	periods := decimal.NewFromInt(n)
	ratePerPeriod := in.Rate.Div(hundred).Div(periods)

	amountAt := func(years decimal.Decimal) decimal.Decimal {
		return in.Principal.Mul(GrowthFactor(ratePerPeriod, years.Mul(periods)))
	}

	total := amountAt(in.Years)
	wholeYears := int(in.Years.Floor().IntPart())
	breakdown := make([]domain.CompoundInterestYear, 0, max(wholeYears, 0))
	for year := 1; year <= wholeYears; year++ {
		amount := amountAt(decimal.NewFromInt(int64(year)))
		breakdown = append(breakdown, domain.CompoundInterestYear{
			Year:     year,
			Amount:   amount,
			Interest: amount.Sub(in.Principal),
		})
	}

	return domain.CompoundInterestResult{
		Principal:       in.Principal,
		Interest:        total.Sub(in.Principal),
		Total:           total,
		YearlyBreakdown: breakdown,
	}
}

package calculation

import (
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// SIP computes the future value of a monthly contribution. Every breakdown
// row is recomputed from the closed form for the months elapsed.
func SIP(in domain.SIPInput) domain.SIPResult {
	r := MonthlyRate(in.Rate)
	months := in.Years.Mul(monthsPerYear)

	futureValue := SIPFutureValue(in.MonthlyAmount, r, months)
	totalInvestment := in.MonthlyAmount.Mul(months)
	if !months.IsPositive() {
		totalInvestment = decimal.Zero
	}

	wholeYears := int(in.Years.Floor().IntPart())
	breakdown := make([]domain.SIPYear, 0, max(wholeYears, 0))
	for year := 1; year <= wholeYears; year++ {
		elapsed := decimal.NewFromInt(int64(year)).Mul(monthsPerYear)
		invested := in.MonthlyAmount.Mul(elapsed)
		value := SIPFutureValue(in.MonthlyAmount, r, elapsed)
		breakdown = append(breakdown, domain.SIPYear{
			Year:     year,
			Invested: invested,
			Value:    value,
			Returns:  value.Sub(invested),
		})
	}

	return domain.SIPResult{
		TotalInvestment: totalInvestment,
		FutureValue:     futureValue,
		TotalReturns:    futureValue.Sub(totalInvestment),
		YearlyBreakdown: breakdown,
	}
}

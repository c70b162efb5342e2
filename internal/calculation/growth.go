package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// workingPrecision is the number of decimal places kept between steps of
// exponentiation and amortization so intermediate values stay bounded.
const workingPrecision = 18

var (
	one            = decimal.NewFromInt(1)
	hundred        = decimal.NewFromInt(100)
	monthsPerYear  = decimal.NewFromInt(12)
	monthlyDivisor = decimal.NewFromInt(1200)
)

// MonthlyRate converts an annual percentage into a monthly fraction (R/1200).
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(monthlyDivisor)
}

// powInt raises base to a non-negative integer power by repeated squaring.
// Negative exponents return the reciprocal.
func powInt(base decimal.Decimal, n int64) decimal.Decimal {
	if n < 0 {
		p := powInt(base, -n)
		if p.IsZero() {
			return decimal.Zero
		}
		return one.Div(p)
	}
	result := one
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(workingPrecision)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b).Round(workingPrecision)
		}
	}
	return result
}

// pow raises base to exp. The integer part of exp is computed exactly (to
// workingPrecision); a fractional remainder uses a float64 factor.
func pow(base, exp decimal.Decimal) decimal.Decimal {
	whole := exp.Floor()
	result := powInt(base, whole.IntPart())
	frac := exp.Sub(whole)
	if frac.IsZero() {
		return result
	}
	f := math.Pow(base.InexactFloat64(), frac.InexactFloat64())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return result
	}
	return result.Mul(decimal.NewFromFloat(f)).Round(workingPrecision)
}

// GrowthFactor returns (1+rate)^periods.
func GrowthFactor(rate, periods decimal.Decimal) decimal.Decimal {
	return pow(one.Add(rate), periods)
}

// SIPFutureValue is the annuity-due future value of a monthly contribution:
// M * ((1+r)^m - 1) / r * (1+r). A zero rate degrades to M*m.
func SIPFutureValue(monthly, monthlyRate, months decimal.Decimal) decimal.Decimal {
	if !months.IsPositive() {
		return decimal.Zero
	}
	if monthlyRate.IsZero() {
		return monthly.Mul(months)
	}
	g := GrowthFactor(monthlyRate, months)
	return monthly.Mul(g.Sub(one)).Div(monthlyRate).Mul(one.Add(monthlyRate))
}

// RequiredMonthlyInvestment inverts SIPFutureValue: the monthly contribution
// that grows to target over months at monthlyRate. ok is false when there is
// no accumulation window (months <= 0); the amount is then zero.
func RequiredMonthlyInvestment(target, monthlyRate, months decimal.Decimal) (amount decimal.Decimal, ok bool) {
	if !months.IsPositive() {
		return decimal.Zero, false
	}
	if monthlyRate.IsZero() {
		return target.Div(months), true
	}
	g := GrowthFactor(monthlyRate, months)
	denominator := g.Sub(one).Mul(one.Add(monthlyRate))
	if denominator.IsZero() {
		return target.Div(months), true
	}
	return target.Mul(monthlyRate).Div(denominator), true
}

// EMI is the equated monthly instalment of a reducing balance loan:
// A*r*(1+r)^m / ((1+r)^m - 1). A zero rate degrades to A/m.
func EMI(amount, monthlyRate decimal.Decimal, months int64) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	m := decimal.NewFromInt(months)
	if monthlyRate.IsZero() {
		return amount.Div(m)
	}
	g := powInt(one.Add(monthlyRate), months)
	return amount.Mul(monthlyRate).Mul(g).Div(g.Sub(one))
}

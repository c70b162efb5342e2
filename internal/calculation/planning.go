package calculation

import (
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

var postRetirementMonths = decimal.NewFromInt(domain.PostRetirementYears).Mul(monthsPerYear)

// inflate returns amount*(1+inflationPercent/100)^years.
func inflate(amount, inflationPercent, years decimal.Decimal) decimal.Decimal {
	return amount.Mul(GrowthFactor(inflationPercent.Div(hundred), years))
}

// Retirement sizes the corpus needed to fund PostRetirementYears of inflated
// monthly expenses and the monthly SIP that reaches it by retirement.
//
// Contributions are made at the start of each month, the SIPFutureValue
// convention, so MonthlyInvestmentRequired is target*r / (((1+r)^m - 1)*(1+r)).
// That is lower by a factor of (1+r) than the end-of-month figure
// target*r / ((1+r)^m - 1) some planners quote: 24,406.37 instead of
// 24,650.43 for ₹50,000 of expenses from age 30 to 60 at 6% inflation and 12%.
//
// When retirement age equals current age there is nothing to accumulate over:
// MonthlyInvestmentRequired is zero and ImmediateCorpus is set.
func Retirement(in domain.RetirementInput) domain.RetirementResult {
	years := in.RetirementAge.Sub(in.CurrentAge)
	futureExpenses := inflate(in.MonthlyExpenses, in.InflationRate, years)
	corpus := futureExpenses.Mul(postRetirementMonths)

	months := years.Mul(monthsPerYear)
	monthly, ok := RequiredMonthlyInvestment(corpus, MonthlyRate(in.ExpectedReturn), months)
	totalInvestment := decimal.Zero
	if ok {
		totalInvestment = monthly.Mul(months)
	}

	return domain.RetirementResult{
		YearsToRetirement:         years,
		FutureMonthlyExpenses:     futureExpenses,
		CorpusRequired:            corpus,
		MonthlyInvestmentRequired: monthly,
		TotalInvestment:           totalInvestment,
		PostRetirementYears:       domain.PostRetirementYears,
		ImmediateCorpus:           !ok,
	}
}

// Goal inflates a goal priced today and finds the monthly SIP that reaches it.
// Like Retirement it assumes start-of-month contributions, so the amount is
// the end-of-month figure divided by (1+r).
func Goal(in domain.GoalInput) domain.GoalResult {
	adjusted := inflate(in.GoalAmount, in.InflationRate, in.TimeToGoal)
	months := in.TimeToGoal.Mul(monthsPerYear)
	monthly, ok := RequiredMonthlyInvestment(adjusted, MonthlyRate(in.ExpectedReturn), months)

	totalInvestment := decimal.Zero
	if ok {
		totalInvestment = monthly.Mul(months)
	}
	return domain.GoalResult{
		InflationAdjustedGoal:     adjusted,
		MonthlyInvestmentRequired: monthly,
		TotalInvestment:           totalInvestment,
		TotalReturns:              adjusted.Sub(totalInvestment),
	}
}

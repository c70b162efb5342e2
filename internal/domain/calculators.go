package domain

import "github.com/shopspring/decimal"

// PostRetirementYears is the fixed number of years of post-retirement spending
// the retirement corpus has to fund.
const PostRetirementYears = 25

// CompoundInterestInput describes a lump sum compounding at a fixed rate.
// Rate is an annual percentage.
type CompoundInterestInput struct {
	Principal decimal.Decimal `yaml:"principal" json:"principal"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Years     decimal.Decimal `yaml:"years" json:"years"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
}

// CompoundInterestYear is the balance at the end of a whole year.
type CompoundInterestYear struct {
	Year     int             `yaml:"year" json:"year"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Interest decimal.Decimal `yaml:"interest" json:"interest"`
}

// CompoundInterestResult holds the headline figures for the exact duration and
// one breakdown row per whole year.
type CompoundInterestResult struct {
	Principal       decimal.Decimal        `yaml:"principal" json:"principal"`
	Interest        decimal.Decimal        `yaml:"interest" json:"interest"`
	Total           decimal.Decimal        `yaml:"total" json:"total"`
	YearlyBreakdown []CompoundInterestYear `yaml:"yearly_breakdown" json:"yearlyBreakdown"`
}

// HomeLoanInput describes a fixed-rate reducing balance loan. Tenure is in years.
type HomeLoanInput struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Rate   decimal.Decimal `yaml:"rate" json:"rate"`
	Tenure decimal.Decimal `yaml:"tenure" json:"tenure"`
}

// HomeLoanYear aggregates twelve months (fewer in a final partial year) of the
// amortization schedule. EMI is the total of instalments paid during the year.
type HomeLoanYear struct {
	Year      int             `yaml:"year" json:"year"`
	EMI       decimal.Decimal `yaml:"emi" json:"emi"`
	Principal decimal.Decimal `yaml:"principal" json:"principal"`
	Interest  decimal.Decimal `yaml:"interest" json:"interest"`
	Balance   decimal.Decimal `yaml:"balance" json:"balance"`
}

type HomeLoanResult struct {
	MonthlyEMI      decimal.Decimal `yaml:"monthly_emi" json:"monthlyEMI"`
	TotalAmount     decimal.Decimal `yaml:"total_amount" json:"totalAmount"`
	TotalInterest   decimal.Decimal `yaml:"total_interest" json:"totalInterest"`
	TotalMonths     int64           `yaml:"total_months" json:"totalMonths"`
	YearlyBreakdown []HomeLoanYear  `yaml:"yearly_breakdown" json:"yearlyBreakdown"`
}

// SIPInput describes a fixed monthly contribution. Rate is an annual percentage.
type SIPInput struct {
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthlyAmount"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	Years         decimal.Decimal `yaml:"years" json:"years"`
}

// SIPYear is the position as of the end of a year. Value is recomputed from
// the closed form for the months elapsed, not carried forward.
type SIPYear struct {
	Year     int             `yaml:"year" json:"year"`
	Invested decimal.Decimal `yaml:"invested" json:"invested"`
	Value    decimal.Decimal `yaml:"value" json:"value"`
	Returns  decimal.Decimal `yaml:"returns" json:"returns"`
}

type SIPResult struct {
	TotalInvestment decimal.Decimal `yaml:"total_investment" json:"totalInvestment"`
	FutureValue     decimal.Decimal `yaml:"future_value" json:"futureValue"`
	TotalReturns    decimal.Decimal `yaml:"total_returns" json:"totalReturns"`
	YearlyBreakdown []SIPYear       `yaml:"yearly_breakdown" json:"yearlyBreakdown"`
}

// RetirementInput describes the saver today. Rates are annual percentages.
type RetirementInput struct {
	CurrentAge      decimal.Decimal `yaml:"current_age" json:"currentAge"`
	RetirementAge   decimal.Decimal `yaml:"retirement_age" json:"retirementAge"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthlyExpenses"`
	InflationRate   decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	ExpectedReturn  decimal.Decimal `yaml:"expected_return" json:"expectedReturn"`
}

// RetirementResult. ImmediateCorpus is set when there is no accumulation
// window left (retirement age equals current age): the whole corpus is needed
// today and MonthlyInvestmentRequired is zero.
type RetirementResult struct {
	YearsToRetirement         decimal.Decimal `yaml:"years_to_retirement" json:"yearsToRetirement"`
	FutureMonthlyExpenses     decimal.Decimal `yaml:"future_monthly_expenses" json:"futureMonthlyExpenses"`
	CorpusRequired            decimal.Decimal `yaml:"corpus_required" json:"corpusRequired"`
	MonthlyInvestmentRequired decimal.Decimal `yaml:"monthly_investment_required" json:"monthlyInvestmentRequired"`
	TotalInvestment           decimal.Decimal `yaml:"total_investment" json:"totalInvestment"`
	PostRetirementYears       int             `yaml:"post_retirement_years" json:"postRetirementYears"`
	ImmediateCorpus           bool            `yaml:"immediate_corpus" json:"immediateCorpus"`
}

// GoalInput describes a future goal priced in today's rupees.
type GoalInput struct {
	GoalAmount     decimal.Decimal `yaml:"goal_amount" json:"goalAmount"`
	TimeToGoal     decimal.Decimal `yaml:"time_to_goal" json:"timeToGoal"`
	ExpectedReturn decimal.Decimal `yaml:"expected_return" json:"expectedReturn"`
	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
}

type GoalResult struct {
	InflationAdjustedGoal     decimal.Decimal `yaml:"inflation_adjusted_goal" json:"inflationAdjustedGoal"`
	MonthlyInvestmentRequired decimal.Decimal `yaml:"monthly_investment_required" json:"monthlyInvestmentRequired"`
	TotalInvestment           decimal.Decimal `yaml:"total_investment" json:"totalInvestment"`
	TotalReturns              decimal.Decimal `yaml:"total_returns" json:"totalReturns"`
}

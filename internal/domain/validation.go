package domain

import "github.com/shopspring/decimal"

const (
	// MaxYears bounds every duration so schedules stay within a few thousand
	// iterations.
	MaxYears = 100
	// MaxRatePercent bounds annual rates.
	MaxRatePercent = 1000
)

var (
	maxYears = decimal.NewFromInt(MaxYears)
	maxRate  = decimal.NewFromInt(MaxRatePercent)
	minYears = decimal.NewFromInt(1)
	twelve   = decimal.NewFromInt(12)
)

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid(field, "cannot be negative, got %s", v.String())
	}
	return nil
}

func rate(field string, v decimal.Decimal) error {
	if err := nonNegative(field, v); err != nil {
		return err
	}
	if v.GreaterThan(maxRate) {
		return invalid(field, "cannot exceed %d%%, got %s", MaxRatePercent, v.String())
	}
	return nil
}

func duration(field string, v decimal.Decimal) error {
	if v.LessThan(minYears) {
		return invalid(field, "must be at least 1 year, got %s", v.String())
	}
	if v.GreaterThan(maxYears) {
		return invalid(field, "cannot exceed %d years, got %s", MaxYears, v.String())
	}
	return nil
}

func wholeMonths(field string, v decimal.Decimal) error {
	if !v.Mul(twelve).Equal(v.Mul(twelve).Floor()) {
		return invalid(field, "must be a whole number of months, got %s years", v.String())
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the compound interest input.
func (in CompoundInterestInput) Validate() error {
	if _, ok := in.Frequency.PeriodsPerYear(); !ok {
		return invalid("frequency", "must be yearly, quarterly, monthly or daily, got %q", string(in.Frequency))
	}
	return firstError(
		nonNegative("principal", in.Principal),
		rate("rate", in.Rate),
		duration("years", in.Years),
	)
}

// Validate checks the home loan input. The tenure must cover whole months.
func (in HomeLoanInput) Validate() error {
	return firstError(
		nonNegative("amount", in.Amount),
		rate("rate", in.Rate),
		duration("tenure", in.Tenure),
		wholeMonths("tenure", in.Tenure),
	)
}

// Validate checks the SIP input. The duration must cover whole months.
func (in SIPInput) Validate() error {
	return firstError(
		nonNegative("monthlyAmount", in.MonthlyAmount),
		rate("rate", in.Rate),
		duration("years", in.Years),
		wholeMonths("years", in.Years),
	)
}

// Validate checks the retirement input. Retiring at the current age is
// allowed; retiring before it is not.
func (in RetirementInput) Validate() error {
	if !in.CurrentAge.IsPositive() {
		return invalid("currentAge", "must be positive, got %s", in.CurrentAge.String())
	}
	if !in.RetirementAge.IsPositive() {
		return invalid("retirementAge", "must be positive, got %s", in.RetirementAge.String())
	}
	if in.RetirementAge.LessThan(in.CurrentAge) {
		return invalid("retirementAge", "cannot be before current age (%s < %s)", in.RetirementAge.String(), in.CurrentAge.String())
	}
	if in.RetirementAge.Sub(in.CurrentAge).GreaterThan(maxYears) {
		return invalid("retirementAge", "cannot be more than %d years away", MaxYears)
	}
	return firstError(
		nonNegative("monthlyExpenses", in.MonthlyExpenses),
		rate("inflationRate", in.InflationRate),
		rate("expectedReturn", in.ExpectedReturn),
	)
}

// Validate checks the goal input.
func (in GoalInput) Validate() error {
	return firstError(
		nonNegative("goalAmount", in.GoalAmount),
		duration("timeToGoal", in.TimeToGoal),
		rate("expectedReturn", in.ExpectedReturn),
		rate("inflationRate", in.InflationRate),
	)
}

package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CalculatorType tags one of the five calculators.
type CalculatorType string

const (
	CalculatorCompoundInterest CalculatorType = "compound-interest"
	CalculatorHomeLoan         CalculatorType = "home-loan"
	CalculatorSIP              CalculatorType = "sip"
	CalculatorRetirement       CalculatorType = "retirement"
	CalculatorGoal             CalculatorType = "goal"
)

// calculatorAliases accepts the spellings used by older clients and the CLI.
var calculatorAliases = map[string]CalculatorType{
	"compound":          CalculatorCompoundInterest,
	"compound_interest": CalculatorCompoundInterest,
	"compoundinterest":  CalculatorCompoundInterest,
	"home_loan":         CalculatorHomeLoan,
	"homeloan":          CalculatorHomeLoan,
	"emi":               CalculatorHomeLoan,
	"goal-planning":     CalculatorGoal,
	"goal_planning":     CalculatorGoal,
}

// AllCalculatorTypes lists the calculators in display order.
func AllCalculatorTypes() []CalculatorType {
	return []CalculatorType{
		CalculatorCompoundInterest,
		CalculatorHomeLoan,
		CalculatorSIP,
		CalculatorRetirement,
		CalculatorGoal,
	}
}

// ParseCalculatorType resolves a tag or alias, case-insensitively.
func ParseCalculatorType(s string) (CalculatorType, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllCalculatorTypes() {
		if string(t) == n {
			return t, nil
		}
	}
	if t, ok := calculatorAliases[n]; ok {
		return t, nil
	}
	names := make([]string, 0, len(AllCalculatorTypes()))
	for _, t := range AllCalculatorTypes() {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return "", fmt.Errorf("%w: unknown calculator type %q (expected one of %s)", ErrInvalidInput, s, strings.Join(names, ", "))
}

// Title is the human readable calculator name.
func (t CalculatorType) Title() string {
	switch t {
	case CalculatorCompoundInterest:
		return "Compound Interest"
	case CalculatorHomeLoan:
		return "Home Loan EMI"
	case CalculatorSIP:
		return "SIP"
	case CalculatorRetirement:
		return "Retirement Planning"
	case CalculatorGoal:
		return "Goal Planning"
	default:
		return string(t)
	}
}

// Frequency is the compounding frequency of the compound interest calculator.
type Frequency string

const (
	FrequencyYearly    Frequency = "yearly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyDaily     Frequency = "daily"
)

var periodsPerYear = map[Frequency]int64{
	FrequencyYearly:    1,
	FrequencyQuarterly: 4,
	FrequencyMonthly:   12,
	FrequencyDaily:     365,
}

// PeriodsPerYear returns the number of compounding periods per year.
func (f Frequency) PeriodsPerYear() (int64, bool) {
	n, ok := periodsPerYear[f]
	return n, ok
}

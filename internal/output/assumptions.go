package output

import (
	"fmt"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// DefaultAssumptions lists the modelling conventions shared by every calculator.
var DefaultAssumptions = []string{
	"Rates are nominal annual percentages, held constant for the whole period",
	"Amounts are in rupees; no taxes, fees or exit loads are modelled",
}

var calculatorAssumptions = map[domain.CalculatorType][]string{
	domain.CalculatorCompoundInterest: {
		"Compound interest: daily compounding uses a 365-day year",
	},
	domain.CalculatorHomeLoan: {
		"Home loan: fixed EMI on a monthly reducing balance; the last instalment clears any rounding residue",
	},
	domain.CalculatorSIP: {
		"SIP: contributions are made at the start of each month and earn that month's return",
	},
	domain.CalculatorRetirement: {
		fmt.Sprintf("Retirement: the corpus funds %d years of expenses at retirement-day prices, without further growth", domain.PostRetirementYears),
		"Retirement: monthly investments follow the SIP convention",
	},
	domain.CalculatorGoal: {
		"Goal: the target is inflated to the goal date and funded by a monthly SIP",
	},
}

// GenerateAssumptions lists the defaults plus the conventions of each
// calculator present in the report, in first-seen order.
func GenerateAssumptions(report *domain.CalculationReport) []string {
	out := append([]string(nil), DefaultAssumptions...)
	seen := map[domain.CalculatorType]bool{}
	for _, nc := range report.Calculations {
		t := nc.Context.Type()
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, calculatorAssumptions[t]...)
	}
	return out
}

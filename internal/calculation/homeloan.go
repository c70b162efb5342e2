package calculation

import (
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HomeLoan computes the EMI and the yearly amortization schedule.
//
// Each month pays interest on the outstanding balance and the rest of the EMI
// against principal. The last scheduled month (or any month whose principal
// share would overshoot) pays off exactly the remaining balance, so the
// principal rows sum to the loan amount and the closing balance is zero.
func HomeLoan(in domain.HomeLoanInput) domain.HomeLoanResult {
	r := MonthlyRate(in.Rate)
	totalMonths := in.Tenure.Mul(monthsPerYear).Round(0).IntPart()
	if totalMonths <= 0 {
		return domain.HomeLoanResult{YearlyBreakdown: []domain.HomeLoanYear{}}
	}

	emi := EMI(in.Amount, r, totalMonths)
	totalAmount := emi.Mul(decimal.NewFromInt(totalMonths))

	years := int((totalMonths + 11) / 12)
	breakdown := make([]domain.HomeLoanYear, 0, years)
	balance := in.Amount
	var month int64
	for year := 1; year <= years; year++ {
		yearPrincipal := decimal.Zero
		yearInterest := decimal.Zero
		paid := int64(0)
		for m := 0; m < 12 && month < totalMonths && balance.IsPositive(); m++ {
			month++
			paid++
			interest := balance.Mul(r).Round(workingPrecision)
			principal := emi.Sub(interest)
			if month == totalMonths || principal.GreaterThan(balance) {
				principal = balance
			}
			yearPrincipal = yearPrincipal.Add(principal)
			yearInterest = yearInterest.Add(interest)
			balance = balance.Sub(principal)
		}
		breakdown = append(breakdown, domain.HomeLoanYear{
			Year:      year,
			EMI:       emi.Mul(decimal.NewFromInt(paid)),
			Principal: yearPrincipal,
			Interest:  yearInterest,
			Balance:   decimal.Max(decimal.Zero, balance),
		})
	}

	return domain.HomeLoanResult{
		MonthlyEMI:      emi,
		TotalAmount:     totalAmount,
		TotalInterest:   totalAmount.Sub(in.Amount),
		TotalMonths:     totalMonths,
		YearlyBreakdown: breakdown,
	}
}

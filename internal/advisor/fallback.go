package advisor

import (
	"context"
	"fmt"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
	money "github.com/rupeecalc/rupee-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FallbackClient answers without a language model. Advice is derived only
// from the attached calculation, so identical requests get identical replies.
type FallbackClient struct{}

// NewFallbackClient returns a FallbackClient.
func NewFallbackClient() FallbackClient { return FallbackClient{} }

func (FallbackClient) Advise(ctx context.Context, req AdviceRequest) (domain.Advice, error) {
	if err := ctx.Err(); err != nil {
		return domain.Advice{}, err
	}
	if !req.HasContext() {
		return generalAdvice(), nil
	}
	switch c := req.Context.Calculation.(type) {
	case *domain.CompoundInterestCalculation:
		return compoundAdvice(c), nil
	case *domain.HomeLoanCalculation:
		return homeLoanAdvice(c), nil
	case *domain.SIPCalculation:
		return sipAdvice(c), nil
	case *domain.RetirementCalculation:
		return retirementAdvice(c), nil
	case *domain.GoalCalculation:
		return goalAdvice(c), nil
	}
	return generalAdvice(), nil
}

func rupees(d decimal.Decimal) string { return money.NewMoneyFromDecimal(d).Format() }

func pct(d decimal.Decimal) string { return money.FormatPercentage(d, 1) }

func generalAdvice() domain.Advice {
	return domain.Advice{
		Advice: "Start with an emergency fund of six months of expenses, insure your family adequately, and then invest " +
			"regularly through SIPs in diversified equity funds for goals more than five years away. Use PPF and EPF " +
			"for stable long-term savings and plan for inflation of 6-8% a year.",
		Suggestions: []string{
			"Build an emergency fund covering six months of expenses",
			"Buy term life and health insurance before investing",
			"Use ELSS funds to save tax under Section 80C",
		},
		ActionItems: []string{
			"List your monthly expenses and fixed obligations",
			"Set up an SIP for each long-term goal",
			"Review your portfolio once a year",
		},
	}
}

func compoundAdvice(c *domain.CompoundInterestCalculation) domain.Advice {
	in := c.Inputs
	text := fmt.Sprintf("Investing %s at %s for %s years with %s compounding shows how time multiplies savings.",
		rupees(in.Principal), pct(in.Rate), in.Years.String(), in.Frequency)
	if r := c.Results; r != nil {
		text += fmt.Sprintf(" The deposit grows to %s, of which %s is interest.", rupees(r.Total), rupees(r.Interest))
	}
	text += " Remember that fixed deposit interest is taxed at your slab rate, so compare the post-tax return with inflation."
	return domain.Advice{
		Advice: text,
		Suggestions: []string{
			"Compare bank FD rates with small savings schemes such as NSC and PPF",
			"Consider tax-saving FDs or PPF for the 80C deduction",
			"Ladder deposits across maturities to keep liquidity",
		},
		ActionItems: []string{
			"Check the post-tax return against 6-8% inflation",
			"Submit Form 15G/15H if your income is below the taxable limit",
			"Nominate a beneficiary on every deposit",
		},
	}
}

func homeLoanAdvice(c *domain.HomeLoanCalculation) domain.Advice {
	in := c.Inputs
	text := fmt.Sprintf("A home loan of %s at %s over %s years", rupees(in.Amount), pct(in.Rate), in.Tenure.String())
	if r := c.Results; r != nil {
		text += fmt.Sprintf(" costs an EMI of %s and %s in total interest.", rupees(r.MonthlyEMI), rupees(r.TotalInterest))
	} else {
		text += " should keep the EMI within 40% of your take-home pay."
	}
	text += " Prepaying principal early in the tenure saves the most interest."
	return domain.Advice{
		Advice: text,
		Suggestions: []string{
			"Keep the EMI below 40% of monthly take-home income",
			"Claim interest under Section 24(b) and principal under Section 80C",
			"Use bonuses for part-prepayment to shorten the tenure",
		},
		ActionItems: []string{
			"Compare floating rates across at least three lenders",
			"Ask your lender about prepayment charges",
			"Buy a term plan that covers the outstanding loan",
		},
	}
}

func sipAdvice(c *domain.SIPCalculation) domain.Advice {
	in := c.Inputs
	text := fmt.Sprintf("A monthly SIP of %s for %s years at an expected %s", rupees(in.MonthlyAmount), in.Years.String(), pct(in.Rate))
	if r := c.Results; r != nil {
		text += fmt.Sprintf(" can grow to %s on a total investment of %s.", rupees(r.FutureValue), rupees(r.TotalInvestment))
	} else {
		text += " benefits from rupee cost averaging."
	}
	text += " Staying invested through market corrections matters more than timing entries."
	return domain.Advice{
		Advice: text,
		Suggestions: []string{
			"Increase the SIP amount by 10% every year with a step-up",
			"Spread SIPs across large-cap, flexi-cap and index funds",
			"Use ELSS for the tax-saving part of your SIPs",
		},
		ActionItems: []string{
			"Register an auto-debit mandate for the SIP date",
			"Review fund performance against its benchmark yearly",
			"Shift to debt funds as the goal date approaches",
		},
	}
}

func retirementAdvice(c *domain.RetirementCalculation) domain.Advice {
	in := c.Inputs
	text := fmt.Sprintf("Retiring at %s with monthly expenses of %s today", in.RetirementAge.String(), rupees(in.MonthlyExpenses))
	if r := c.Results; r != nil {
		if r.ImmediateCorpus {
			text += fmt.Sprintf(" needs a corpus of %s right away.", rupees(r.CorpusRequired))
		} else {
			text += fmt.Sprintf(" needs a corpus of %s, which means investing %s every month for %s years.",
				rupees(r.CorpusRequired), rupees(r.MonthlyInvestmentRequired), r.YearsToRetirement.String())
		}
	} else {
		text += " needs a corpus that keeps pace with inflation."
	}
	text += " EPF, PPF and NPS give a stable base while equity funds provide growth."
	return domain.Advice{
		Advice: text,
		Suggestions: []string{
			"Maximise EPF and VPF contributions",
			"Open an NPS account for the extra 80CCD(1B) deduction",
			"Keep a mix of equity and debt that de-risks near retirement",
		},
		ActionItems: []string{
			"Start or raise your retirement SIP this month",
			"Buy health insurance that continues after retirement",
			"Recalculate the corpus every two years",
		},
	}
}

func goalAdvice(c *domain.GoalCalculation) domain.Advice {
	in := c.Inputs
	text := fmt.Sprintf("A goal worth %s today due in %s years", rupees(in.GoalAmount), in.TimeToGoal.String())
	if r := c.Results; r != nil {
		text += fmt.Sprintf(" will cost about %s after inflation. Investing %s a month gets you there.",
			rupees(r.InflationAdjustedGoal), rupees(r.MonthlyInvestmentRequired))
	} else {
		text += " should be funded with a dedicated monthly investment."
	}
	text += " Match the asset mix to the horizon: equity for long goals, debt for short ones."
	return domain.Advice{
		Advice: text,
		Suggestions: []string{
			"Keep a separate folio for each goal",
			"Use debt or liquid funds for goals under three years",
			"Add lump sums from bonuses to the goal portfolio",
		},
		ActionItems: []string{
			"Set up the monthly SIP for this goal",
			"Track progress every six months",
			"Move gains to safer funds a year before the goal",
		},
	}
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/rupeecalc/rupee-calculator/internal/output"
	"github.com/rupeecalc/rupee-calculator/pkg/dateutil"
	money "github.com/rupeecalc/rupee-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalFlag is a pflag.Value over a decimal. Amount flags accept Indian
// grouping and the rupee sign ("₹50,00,000").
type decimalFlag struct {
	v      *decimal.Decimal
	amount bool
}

func (f decimalFlag) String() string {
	if f.v == nil {
		return "0"
	}
	return f.v.String()
}

func (f decimalFlag) Set(s string) error {
	if f.amount {
		m, err := money.ParseIndian(s)
		if err != nil {
			return err
		}
		*f.v = m.Decimal
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")))
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f.v = d
	return nil
}

func (f decimalFlag) Type() string {
	if f.amount {
		return "amount"
	}
	return "number"
}

func amountVar(cmd *cobra.Command, v *decimal.Decimal, name, usage string) {
	cmd.Flags().Var(decimalFlag{v: v, amount: true}, name, usage)
}

func numberVar(cmd *cobra.Command, v *decimal.Decimal, name string, def int64, usage string) {
	*v = decimal.NewFromInt(def)
	cmd.Flags().Var(decimalFlag{v: v}, name, usage)
}

type calcOptions struct {
	root   *rootOptions
	format string
	name   string
	now    func() time.Time
}

func newCalcCmd(root *rootOptions) *cobra.Command {
	opts := &calcOptions{root: root, now: time.Now}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a single calculator",
	}
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "console", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.PersistentFlags().StringVar(&opts.name, "name", "", "label shown in the report")

	cmd.AddCommand(
		newCompoundCmd(opts),
		newHomeLoanCmd(opts),
		newSIPCmd(opts),
		newRetirementCmd(opts),
		newGoalCmd(opts),
	)
	return cmd
}

// run evaluates calc and writes the formatted report to stdout.
func (o *calcOptions) run(cmd *cobra.Command, calc domain.Calculation) error {
	f, err := output.LookupFormatter(o.format)
	if err != nil {
		return err
	}
	name := o.name
	if name == "" {
		name = calc.Type().Title()
	}
	report, err := o.root.engine().RunAll(cmd.Context(), []domain.NamedCalculation{
		{Name: name, Context: domain.CalculationContext{Calculation: calc}},
	})
	if err != nil {
		return err
	}
	return output.WriteFormatted(cmd.OutOrStdout(), f, report)
}

func newCompoundCmd(opts *calcOptions) *cobra.Command {
	var in domain.CompoundInterestInput
	var frequency string
	cmd := &cobra.Command{
		Use:     "compound-interest",
		Aliases: []string{"compound", "fd"},
		Short:   "Growth of a lump sum at a compounded rate",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Frequency = domain.Frequency(strings.ToLower(frequency))
			return opts.run(cmd, &domain.CompoundInterestCalculation{Inputs: in})
		},
	}
	amountVar(cmd, &in.Principal, "principal", "amount invested")
	numberVar(cmd, &in.Rate, "rate", 8, "annual interest rate in percent")
	numberVar(cmd, &in.Years, "years", 5, "duration in years")
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyYearly), "compounding frequency (yearly, quarterly, monthly, daily)")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func newHomeLoanCmd(opts *calcOptions) *cobra.Command {
	var in domain.HomeLoanInput
	cmd := &cobra.Command{
		Use:     "home-loan",
		Aliases: []string{"emi", "loan"},
		Short:   "Monthly EMI and amortisation of a home loan",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, &domain.HomeLoanCalculation{Inputs: in})
		},
	}
	amountVar(cmd, &in.Amount, "amount", "loan amount")
	numberVar(cmd, &in.Rate, "rate", 8, "annual interest rate in percent")
	numberVar(cmd, &in.Tenure, "tenure", 20, "tenure in years")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newSIPCmd(opts *calcOptions) *cobra.Command {
	var in domain.SIPInput
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Future value of a monthly systematic investment plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, &domain.SIPCalculation{Inputs: in})
		},
	}
	amountVar(cmd, &in.MonthlyAmount, "monthly", "monthly investment")
	numberVar(cmd, &in.Rate, "rate", 12, "expected annual return in percent")
	numberVar(cmd, &in.Years, "years", 10, "duration in years")
	_ = cmd.MarkFlagRequired("monthly")
	return cmd
}

func newRetirementCmd(opts *calcOptions) *cobra.Command {
	var in domain.RetirementInput
	var birthDate string
	cmd := &cobra.Command{
		Use:   "retirement",
		Short: "Corpus and monthly investment needed to retire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if birthDate != "" {
				born, err := dateutil.ParseDate(birthDate)
				if err != nil {
					return err
				}
				in.CurrentAge = dateutil.AgeInYears(born, opts.now())
			}
			return opts.run(cmd, &domain.RetirementCalculation{Inputs: in})
		},
	}
	numberVar(cmd, &in.CurrentAge, "current-age", 30, "current age in years")
	numberVar(cmd, &in.RetirementAge, "retirement-age", 60, "planned retirement age")
	amountVar(cmd, &in.MonthlyExpenses, "monthly-expenses", "monthly expenses in today's rupees")
	numberVar(cmd, &in.InflationRate, "inflation", 6, "annual inflation in percent")
	numberVar(cmd, &in.ExpectedReturn, "return", 12, "expected annual return in percent")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "date of birth (YYYY-MM-DD or DD/MM/YYYY), instead of --current-age")
	cmd.MarkFlagsMutuallyExclusive("birth-date", "current-age")
	_ = cmd.MarkFlagRequired("monthly-expenses")
	return cmd
}

func newGoalCmd(opts *calcOptions) *cobra.Command {
	var in domain.GoalInput
	var targetDate string
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goal-planning"},
		Short:   "Monthly investment needed to reach a future goal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if targetDate != "" {
				due, err := dateutil.ParseDate(targetDate)
				if err != nil {
					return err
				}
				in.TimeToGoal = dateutil.YearsBetween(opts.now(), due)
			}
			return opts.run(cmd, &domain.GoalCalculation{Inputs: in})
		},
	}
	amountVar(cmd, &in.GoalAmount, "goal-amount", "goal cost in today's rupees")
	numberVar(cmd, &in.TimeToGoal, "years", 5, "years until the goal")
	numberVar(cmd, &in.ExpectedReturn, "return", 12, "expected annual return in percent")
	numberVar(cmd, &in.InflationRate, "inflation", 6, "annual inflation in percent")
	cmd.Flags().StringVar(&targetDate, "target-date", "", "date the money is needed (YYYY-MM-DD or DD/MM/YYYY), instead of --years")
	cmd.MarkFlagsMutuallyExclusive("target-date", "years")
	_ = cmd.MarkFlagRequired("goal-amount")
	return cmd
}

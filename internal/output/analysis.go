package output

import (
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ValueKind selects how a metric value is rendered.
type ValueKind int

const (
	KindMoney ValueKind = iota
	KindPercent
	KindYears
	KindCount
	KindFlag
	KindText
)

// Metric is one labelled input or result figure. Field is the stable machine
// name used by CSV output; Label is for people.
type Metric struct {
	Field string
	Label string
	Kind  ValueKind
	Value decimal.Decimal
	Text  string
}

// Column describes one breakdown column.
type Column struct {
	Field string
	Label string
	Kind  ValueKind
}

// BreakdownRow holds one year of a breakdown, values in column order.
type BreakdownRow struct {
	Year   int
	Values []decimal.Decimal
}

// BreakdownTable is the yearly breakdown of a calculation. Retirement and
// goal calculations have none.
type BreakdownTable struct {
	Columns []Column
	Rows    []BreakdownRow
}

func money(field, label string, v decimal.Decimal) Metric {
	return Metric{Field: field, Label: label, Kind: KindMoney, Value: v}
}

func percent(field, label string, v decimal.Decimal) Metric {
	return Metric{Field: field, Label: label, Kind: KindPercent, Value: v}
}

func years(field, label string, v decimal.Decimal) Metric {
	return Metric{Field: field, Label: label, Kind: KindYears, Value: v}
}

func flag(field, label string, v bool) Metric {
	d := decimal.Zero
	if v {
		d = decimal.NewFromInt(1)
	}
	return Metric{Field: field, Label: label, Kind: KindFlag, Value: d}
}

// InputMetrics lists the inputs of calc in display order.
func InputMetrics(calc domain.Calculation) []Metric {
	switch c := calc.(type) {
	case *domain.CompoundInterestCalculation:
		in := c.Inputs
		return []Metric{
			money("principal", "Principal", in.Principal),
			percent("rate", "Annual Rate", in.Rate),
			years("years", "Duration", in.Years),
			{Field: "frequency", Label: "Compounding", Kind: KindText, Text: string(in.Frequency)},
		}
	case *domain.HomeLoanCalculation:
		in := c.Inputs
		return []Metric{
			money("amount", "Loan Amount", in.Amount),
			percent("rate", "Interest Rate", in.Rate),
			years("tenure", "Tenure", in.Tenure),
		}
	case *domain.SIPCalculation:
		in := c.Inputs
		return []Metric{
			money("monthlyAmount", "Monthly Investment", in.MonthlyAmount),
			percent("rate", "Expected Return", in.Rate),
			years("years", "Duration", in.Years),
		}
	case *domain.RetirementCalculation:
		in := c.Inputs
		return []Metric{
			years("currentAge", "Current Age", in.CurrentAge),
			years("retirementAge", "Retirement Age", in.RetirementAge),
			money("monthlyExpenses", "Monthly Expenses", in.MonthlyExpenses),
			percent("inflationRate", "Inflation", in.InflationRate),
			percent("expectedReturn", "Expected Return", in.ExpectedReturn),
		}
	case *domain.GoalCalculation:
		in := c.Inputs
		return []Metric{
			money("goalAmount", "Goal (today's value)", in.GoalAmount),
			years("timeToGoal", "Time to Goal", in.TimeToGoal),
			percent("expectedReturn", "Expected Return", in.ExpectedReturn),
			percent("inflationRate", "Inflation", in.InflationRate),
		}
	}
	return nil
}

// ResultMetrics lists the headline results of calc, or nil when it has not
// been evaluated.
func ResultMetrics(calc domain.Calculation) []Metric {
	switch c := calc.(type) {
	case *domain.CompoundInterestCalculation:
		if r := c.Results; r != nil {
			return []Metric{
				money("principal", "Principal", r.Principal),
				money("interest", "Interest Earned", r.Interest),
				money("total", "Total Amount", r.Total),
			}
		}
	case *domain.HomeLoanCalculation:
		if r := c.Results; r != nil {
			return []Metric{
				money("monthlyEMI", "Monthly EMI", r.MonthlyEMI),
				money("totalInterest", "Total Interest", r.TotalInterest),
				money("totalAmount", "Total Amount Payable", r.TotalAmount),
				{Field: "totalMonths", Label: "Instalments", Kind: KindCount, Value: decimal.NewFromInt(r.TotalMonths)},
			}
		}
	case *domain.SIPCalculation:
		if r := c.Results; r != nil {
			return []Metric{
				money("totalInvestment", "Total Investment", r.TotalInvestment),
				money("totalReturns", "Total Returns", r.TotalReturns),
				money("futureValue", "Future Value", r.FutureValue),
			}
		}
	case *domain.RetirementCalculation:
		if r := c.Results; r != nil {
			return []Metric{
				years("yearsToRetirement", "Years to Retirement", r.YearsToRetirement),
				money("futureMonthlyExpenses", "Monthly Expenses at Retirement", r.FutureMonthlyExpenses),
				money("corpusRequired", "Corpus Required", r.CorpusRequired),
				money("monthlyInvestmentRequired", "Monthly Investment Required", r.MonthlyInvestmentRequired),
				money("totalInvestment", "Total Investment", r.TotalInvestment),
				{Field: "postRetirementYears", Label: "Years Funded", Kind: KindCount, Value: decimal.NewFromInt(int64(r.PostRetirementYears))},
				flag("immediateCorpus", "Corpus Needed Now", r.ImmediateCorpus),
			}
		}
	case *domain.GoalCalculation:
		if r := c.Results; r != nil {
			return []Metric{
				money("inflationAdjustedGoal", "Inflation-adjusted Goal", r.InflationAdjustedGoal),
				money("monthlyInvestmentRequired", "Monthly Investment Required", r.MonthlyInvestmentRequired),
				money("totalInvestment", "Total Investment", r.TotalInvestment),
				money("totalReturns", "Total Returns", r.TotalReturns),
			}
		}
	}
	return nil
}

// Breakdown extracts the yearly breakdown of an evaluated calculation.
func Breakdown(calc domain.Calculation) BreakdownTable {
	switch c := calc.(type) {
	case *domain.CompoundInterestCalculation:
		if c.Results == nil {
			break
		}
		t := BreakdownTable{Columns: []Column{
			{"amount", "Amount", KindMoney},
			{"interest", "Interest", KindMoney},
		}}
		for _, y := range c.Results.YearlyBreakdown {
			t.Rows = append(t.Rows, BreakdownRow{Year: y.Year, Values: []decimal.Decimal{y.Amount, y.Interest}})
		}
		return t
	case *domain.HomeLoanCalculation:
		if c.Results == nil {
			break
		}
		t := BreakdownTable{Columns: []Column{
			{"emi", "EMI Paid", KindMoney},
			{"principal", "Principal", KindMoney},
			{"interest", "Interest", KindMoney},
			{"balance", "Balance", KindMoney},
		}}
		for _, y := range c.Results.YearlyBreakdown {
			t.Rows = append(t.Rows, BreakdownRow{Year: y.Year, Values: []decimal.Decimal{y.EMI, y.Principal, y.Interest, y.Balance}})
		}
		return t
	case *domain.SIPCalculation:
		if c.Results == nil {
			break
		}
		t := BreakdownTable{Columns: []Column{
			{"invested", "Invested", KindMoney},
			{"value", "Value", KindMoney},
			{"returns", "Returns", KindMoney},
		}}
		for _, y := range c.Results.YearlyBreakdown {
			t.Rows = append(t.Rows, BreakdownRow{Year: y.Year, Values: []decimal.Decimal{y.Invested, y.Value, y.Returns}})
		}
		return t
	}
	return BreakdownTable{}
}

// Render formats a metric value for people.
func Render(kind ValueKind, v decimal.Decimal) string {
	switch kind {
	case KindMoney:
		return FormatCurrency(v)
	case KindPercent:
		return FormatPercentage(v)
	case KindYears:
		return v.String() + " yrs"
	case KindFlag:
		if v.IsZero() {
			return "no"
		}
		return "yes"
	default:
		return v.String()
	}
}

// RenderMetric formats m for people.
func RenderMetric(m Metric) string {
	if m.Kind == KindText {
		return m.Text
	}
	return Render(m.Kind, m.Value)
}

// RawMetric formats m for machines: two decimals for money, plain otherwise.
func RawMetric(m Metric) string {
	if m.Kind == KindText {
		return m.Text
	}
	return Raw(m.Kind, m.Value)
}

// Raw formats a value for machines.
func Raw(kind ValueKind, v decimal.Decimal) string {
	switch kind {
	case KindMoney:
		return v.StringFixed(2)
	case KindFlag:
		return boolToString(!v.IsZero())
	default:
		return v.String()
	}
}

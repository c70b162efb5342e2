package calculation

import (
	"context"
	"fmt"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// CalculationEngine validates calculator inputs and runs the pure calculators.
// It holds no per-call state and is safe for concurrent use.
type CalculationEngine struct {
	Debug  bool // log headline figures of every calculation
	Logger Logger
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) log() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

func (ce *CalculationEngine) debugf(format string, args ...any) {
	if ce.Debug {
		ce.log().Debugf(format, args...)
	}
}

// CalculateCompoundInterest validates the input and runs CompoundInterest.
func (ce *CalculationEngine) CalculateCompoundInterest(in domain.CompoundInterestInput) (domain.CompoundInterestResult, error) {
	if err := in.Validate(); err != nil {
		return domain.CompoundInterestResult{}, fmt.Errorf("compound interest: %w", err)
	}
	res := CompoundInterest(in)
	ce.debugf("compound interest: principal=%s rate=%s years=%s frequency=%s total=%s",
		in.Principal.StringFixed(2), in.Rate.String(), in.Years.String(), in.Frequency, res.Total.StringFixed(2))
	return res, nil
}

// CalculateHomeLoan validates the input and runs HomeLoan.
func (ce *CalculationEngine) CalculateHomeLoan(in domain.HomeLoanInput) (domain.HomeLoanResult, error) {
	if err := in.Validate(); err != nil {
		return domain.HomeLoanResult{}, fmt.Errorf("home loan: %w", err)
	}
	res := HomeLoan(in)
	ce.debugf("home loan: amount=%s rate=%s tenure=%s emi=%s months=%d",
		in.Amount.StringFixed(2), in.Rate.String(), in.Tenure.String(), res.MonthlyEMI.StringFixed(2), res.TotalMonths)
	return res, nil
}

// CalculateSIP validates the input and runs SIP.
func (ce *CalculationEngine) CalculateSIP(in domain.SIPInput) (domain.SIPResult, error) {
	if err := in.Validate(); err != nil {
		return domain.SIPResult{}, fmt.Errorf("sip: %w", err)
	}
	res := SIP(in)
	ce.debugf("sip: monthly=%s rate=%s years=%s future_value=%s",
		in.MonthlyAmount.StringFixed(2), in.Rate.String(), in.Years.String(), res.FutureValue.StringFixed(2))
	return res, nil
}

// CalculateRetirement validates the input and runs Retirement.
func (ce *CalculationEngine) CalculateRetirement(in domain.RetirementInput) (domain.RetirementResult, error) {
	if err := in.Validate(); err != nil {
		return domain.RetirementResult{}, fmt.Errorf("retirement: %w", err)
	}
	res := Retirement(in)
	if res.ImmediateCorpus {
		ce.log().Warnf("retirement: no accumulation window at age %s, corpus %s needed now",
			in.CurrentAge.String(), res.CorpusRequired.StringFixed(2))
	}
	ce.debugf("retirement: years=%s corpus=%s monthly=%s",
		res.YearsToRetirement.String(), res.CorpusRequired.StringFixed(2), res.MonthlyInvestmentRequired.StringFixed(2))
	return res, nil
}

// CalculateGoal validates the input and runs Goal.
func (ce *CalculationEngine) CalculateGoal(in domain.GoalInput) (domain.GoalResult, error) {
	if err := in.Validate(); err != nil {
		return domain.GoalResult{}, fmt.Errorf("goal: %w", err)
	}
	res := Goal(in)
	ce.debugf("goal: adjusted=%s monthly=%s",
		res.InflationAdjustedGoal.StringFixed(2), res.MonthlyInvestmentRequired.StringFixed(2))
	return res, nil
}

// Run computes the results for a tagged calculation. Any results already
// attached to the request are replaced.
func (ce *CalculationEngine) Run(ctx context.Context, req domain.CalculationContext) (domain.CalculationContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.CalculationContext{}, err
	}
	switch c := req.Calculation.(type) {
	case *domain.CompoundInterestCalculation:
		res, err := ce.CalculateCompoundInterest(c.Inputs)
		if err != nil {
			return domain.CalculationContext{}, err
		}
		return domain.CalculationContext{Calculation: &domain.CompoundInterestCalculation{Inputs: c.Inputs, Results: &res}}, nil
	case *domain.HomeLoanCalculation:
		res, err := ce.CalculateHomeLoan(c.Inputs)
		if err != nil {
			return domain.CalculationContext{}, err
		}
		return domain.CalculationContext{Calculation: &domain.HomeLoanCalculation{Inputs: c.Inputs, Results: &res}}, nil
	case *domain.SIPCalculation:
		res, err := ce.CalculateSIP(c.Inputs)
		if err != nil {
			return domain.CalculationContext{}, err
		}
		return domain.CalculationContext{Calculation: &domain.SIPCalculation{Inputs: c.Inputs, Results: &res}}, nil
	case *domain.RetirementCalculation:
		res, err := ce.CalculateRetirement(c.Inputs)
		if err != nil {
			return domain.CalculationContext{}, err
		}
		return domain.CalculationContext{Calculation: &domain.RetirementCalculation{Inputs: c.Inputs, Results: &res}}, nil
	case *domain.GoalCalculation:
		res, err := ce.CalculateGoal(c.Inputs)
		if err != nil {
			return domain.CalculationContext{}, err
		}
		return domain.CalculationContext{Calculation: &domain.GoalCalculation{Inputs: c.Inputs, Results: &res}}, nil
	case nil:
		return domain.CalculationContext{}, fmt.Errorf("%w: empty calculation", domain.ErrInvalidInput)
	default:
		return domain.CalculationContext{}, fmt.Errorf("%w: unsupported calculation %T", domain.ErrInvalidInput, c)
	}
}

// RunAll runs every named calculation and collects a report. It stops at the
// first failure.
func (ce *CalculationEngine) RunAll(ctx context.Context, requests []domain.NamedCalculation) (*domain.CalculationReport, error) {
	report := &domain.CalculationReport{Calculations: make([]domain.NamedCalculation, 0, len(requests))}
	for i, req := range requests {
		out, err := ce.Run(ctx, req.Context)
		if err != nil {
			name := req.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("calculation %s failed: %w", name, err)
		}
		report.Calculations = append(report.Calculations, domain.NamedCalculation{Name: req.Name, Context: out})
	}
	ce.log().Infof("ran %d calculations", len(report.Calculations))
	return report, nil
}

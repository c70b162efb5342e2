package domain

import "fmt"

// RequestFile is a batch of named calculation requests, usually loaded from
// YAML by the config package.
type RequestFile struct {
	Requests []CalculationRequest `yaml:"requests" json:"requests"`
}

// CalculationRequest names a calculator and carries its input. Exactly one of
// the input blocks must be set; Calculator may be omitted when the block
// makes the choice unambiguous.
type CalculationRequest struct {
	Name             string                 `yaml:"name" json:"name"`
	Calculator       string                 `yaml:"calculator,omitempty" json:"calculator,omitempty"`
	CompoundInterest *CompoundInterestInput `yaml:"compound_interest,omitempty" json:"compoundInterest,omitempty"`
	HomeLoan         *HomeLoanInput         `yaml:"home_loan,omitempty" json:"homeLoan,omitempty"`
	SIP              *SIPInput              `yaml:"sip,omitempty" json:"sip,omitempty"`
	Retirement       *RetirementInput       `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	Goal             *GoalInput             `yaml:"goal,omitempty" json:"goal,omitempty"`
}

// Context converts the request into an unevaluated calculation context.
func (r CalculationRequest) Context() (CalculationContext, error) {
	var blocks []Calculation
	if r.CompoundInterest != nil {
		blocks = append(blocks, &CompoundInterestCalculation{Inputs: *r.CompoundInterest})
	}
	if r.HomeLoan != nil {
		blocks = append(blocks, &HomeLoanCalculation{Inputs: *r.HomeLoan})
	}
	if r.SIP != nil {
		blocks = append(blocks, &SIPCalculation{Inputs: *r.SIP})
	}
	if r.Retirement != nil {
		blocks = append(blocks, &RetirementCalculation{Inputs: *r.Retirement})
	}
	if r.Goal != nil {
		blocks = append(blocks, &GoalCalculation{Inputs: *r.Goal})
	}

	switch len(blocks) {
	case 0:
		return CalculationContext{}, fmt.Errorf("%w: no calculator input given", ErrInvalidInput)
	case 1:
	default:
		return CalculationContext{}, fmt.Errorf("%w: %d calculator inputs given, expected exactly one", ErrInvalidInput, len(blocks))
	}

	calc := blocks[0]
	if r.Calculator != "" {
		t, err := ParseCalculatorType(r.Calculator)
		if err != nil {
			return CalculationContext{}, err
		}
		if t != calc.Type() {
			return CalculationContext{}, fmt.Errorf("%w: calculator %q does not match the %s input block", ErrInvalidInput, r.Calculator, calc.Type())
		}
	}
	return CalculationContext{Calculation: calc}, nil
}

// RequestFor builds a request carrying calc's inputs, the inverse of Context.
func RequestFor(name string, calc Calculation) CalculationRequest {
	r := CalculationRequest{Name: name, Calculator: string(calc.Type())}
	switch c := calc.(type) {
	case *CompoundInterestCalculation:
		in := c.Inputs
		r.CompoundInterest = &in
	case *HomeLoanCalculation:
		in := c.Inputs
		r.HomeLoan = &in
	case *SIPCalculation:
		in := c.Inputs
		r.SIP = &in
	case *RetirementCalculation:
		in := c.Inputs
		r.Retirement = &in
	case *GoalCalculation:
		in := c.Inputs
		r.Goal = &in
	}
	return r
}

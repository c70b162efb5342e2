package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Calculation is one variant of the calculation context union. Each variant
// pairs a calculator's input with its (optional) result.
type Calculation interface {
	Type() CalculatorType
	Validate() error
	HasResults() bool
	inputs() any
	results() any
	decode(inputs, results json.RawMessage) error
}

type CompoundInterestCalculation struct {
	Inputs  CompoundInterestInput
	Results *CompoundInterestResult
}

type HomeLoanCalculation struct {
	Inputs  HomeLoanInput
	Results *HomeLoanResult
}

type SIPCalculation struct {
	Inputs  SIPInput
	Results *SIPResult
}

type RetirementCalculation struct {
	Inputs  RetirementInput
	Results *RetirementResult
}

type GoalCalculation struct {
	Inputs  GoalInput
	Results *GoalResult
}

func (c *CompoundInterestCalculation) Type() CalculatorType { return CalculatorCompoundInterest }
func (c *HomeLoanCalculation) Type() CalculatorType         { return CalculatorHomeLoan }
func (c *SIPCalculation) Type() CalculatorType              { return CalculatorSIP }
func (c *RetirementCalculation) Type() CalculatorType       { return CalculatorRetirement }
func (c *GoalCalculation) Type() CalculatorType             { return CalculatorGoal }

func (c *CompoundInterestCalculation) Validate() error { return c.Inputs.Validate() }
func (c *HomeLoanCalculation) Validate() error         { return c.Inputs.Validate() }
func (c *SIPCalculation) Validate() error              { return c.Inputs.Validate() }
func (c *RetirementCalculation) Validate() error       { return c.Inputs.Validate() }
func (c *GoalCalculation) Validate() error             { return c.Inputs.Validate() }

func (c *CompoundInterestCalculation) HasResults() bool { return c.Results != nil }
func (c *HomeLoanCalculation) HasResults() bool         { return c.Results != nil }
func (c *SIPCalculation) HasResults() bool              { return c.Results != nil }
func (c *RetirementCalculation) HasResults() bool       { return c.Results != nil }
func (c *GoalCalculation) HasResults() bool             { return c.Results != nil }

func (c *CompoundInterestCalculation) inputs() any { return c.Inputs }
func (c *HomeLoanCalculation) inputs() any         { return c.Inputs }
func (c *SIPCalculation) inputs() any              { return c.Inputs }
func (c *RetirementCalculation) inputs() any       { return c.Inputs }
func (c *GoalCalculation) inputs() any             { return c.Inputs }

// results returns an untyped nil when no result is attached so that callers
// can rely on a plain nil check.
func (c *CompoundInterestCalculation) results() any {
	if c.Results == nil {
		return nil
	}
	return c.Results
}

func (c *HomeLoanCalculation) results() any {
	if c.Results == nil {
		return nil
	}
	return c.Results
}

func (c *SIPCalculation) results() any {
	if c.Results == nil {
		return nil
	}
	return c.Results
}

func (c *RetirementCalculation) results() any {
	if c.Results == nil {
		return nil
	}
	return c.Results
}

func (c *GoalCalculation) results() any {
	if c.Results == nil {
		return nil
	}
	return c.Results
}

func (c *CompoundInterestCalculation) decode(in, out json.RawMessage) error {
	return decodePair(in, &c.Inputs, out, &c.Results)
}

func (c *HomeLoanCalculation) decode(in, out json.RawMessage) error {
	return decodePair(in, &c.Inputs, out, &c.Results)
}

func (c *SIPCalculation) decode(in, out json.RawMessage) error {
	return decodePair(in, &c.Inputs, out, &c.Results)
}

func (c *RetirementCalculation) decode(in, out json.RawMessage) error {
	return decodePair(in, &c.Inputs, out, &c.Results)
}

func (c *GoalCalculation) decode(in, out json.RawMessage) error {
	return decodePair(in, &c.Inputs, out, &c.Results)
}

func decodePair[I any, R any](in json.RawMessage, input *I, out json.RawMessage, result **R) error {
	if isEmptyJSON(in) {
		return fmt.Errorf("%w: inputs are required", ErrInvalidInput)
	}
	if err := json.Unmarshal(in, input); err != nil {
		return fmt.Errorf("%w: inputs: %v", ErrInvalidInput, err)
	}
	if isEmptyJSON(out) {
		*result = nil
		return nil
	}
	var r R
	if err := json.Unmarshal(out, &r); err != nil {
		return fmt.Errorf("%w: results: %v", ErrInvalidInput, err)
	}
	*result = &r
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// NewCalculation returns an empty variant for the calculator type.
func NewCalculation(t CalculatorType) (Calculation, error) {
	switch t {
	case CalculatorCompoundInterest:
		return &CompoundInterestCalculation{}, nil
	case CalculatorHomeLoan:
		return &HomeLoanCalculation{}, nil
	case CalculatorSIP:
		return &SIPCalculation{}, nil
	case CalculatorRetirement:
		return &RetirementCalculation{}, nil
	case CalculatorGoal:
		return &GoalCalculation{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown calculator type %q", ErrInvalidInput, string(t))
	}
}

// CalculationContext carries one calculator's inputs and results between the
// engine, the advisory prompt builder and storage. On the wire it is
// {"calculatorType", "inputs", "results"}.
type CalculationContext struct {
	Calculation Calculation
}

// Type returns the calculator type, or "" for an empty context.
func (c CalculationContext) Type() CalculatorType {
	if c.Calculation == nil {
		return ""
	}
	return c.Calculation.Type()
}

// InputsJSON encodes the inputs deterministically (struct field order).
func (c CalculationContext) InputsJSON() (json.RawMessage, error) {
	if c.Calculation == nil {
		return nil, fmt.Errorf("%w: empty calculation context", ErrInvalidInput)
	}
	return json.Marshal(c.Calculation.inputs())
}

// ResultsJSON encodes the results, or returns nil when none are attached.
func (c CalculationContext) ResultsJSON() (json.RawMessage, error) {
	if c.Calculation == nil {
		return nil, fmt.Errorf("%w: empty calculation context", ErrInvalidInput)
	}
	r := c.Calculation.results()
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

type contextEnvelope struct {
	CalculatorType CalculatorType  `json:"calculatorType"`
	Inputs         json.RawMessage `json:"inputs"`
	Results        json.RawMessage `json:"results,omitempty"`
}

func (c CalculationContext) MarshalJSON() ([]byte, error) {
	in, err := c.InputsJSON()
	if err != nil {
		return nil, err
	}
	out, err := c.ResultsJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(contextEnvelope{CalculatorType: c.Type(), Inputs: in, Results: out})
}

func (c *CalculationContext) UnmarshalJSON(data []byte) error {
	var env struct {
		CalculatorType string          `json:"calculatorType"`
		Inputs         json.RawMessage `json:"inputs"`
		Results        json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	calc, err := DecodeCalculation(env.CalculatorType, env.Inputs, env.Results)
	if err != nil {
		return err
	}
	c.Calculation = calc
	return nil
}

// MarshalYAML renders the same envelope as the JSON form.
func (c CalculationContext) MarshalYAML() (interface{}, error) {
	if c.Calculation == nil {
		return nil, fmt.Errorf("%w: empty calculation context", ErrInvalidInput)
	}
	return struct {
		CalculatorType CalculatorType `yaml:"calculator_type"`
		Inputs         any            `yaml:"inputs"`
		Results        any            `yaml:"results,omitempty"`
	}{c.Type(), c.Calculation.inputs(), c.Calculation.results()}, nil
}

// DecodeCalculation builds the variant named by calculatorType from raw
// inputs and (optional) results.
func DecodeCalculation(calculatorType string, inputs, results json.RawMessage) (Calculation, error) {
	t, err := ParseCalculatorType(calculatorType)
	if err != nil {
		return nil, err
	}
	calc, err := NewCalculation(t)
	if err != nil {
		return nil, err
	}
	if err := calc.decode(inputs, results); err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	return calc, nil
}

// NamedCalculation is a calculation request or result with a label, as used
// by batch runs and reports.
type NamedCalculation struct {
	Name    string             `json:"name" yaml:"name"`
	Context CalculationContext `json:"context" yaml:"context"`
}

// CalculationReport is the unit handed to output formatters.
type CalculationReport struct {
	Calculations []NamedCalculation `json:"calculations" yaml:"calculations"`
}

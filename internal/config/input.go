package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request file from YAML (JSON is accepted as a YAML subset)
func (ip *InputParser) LoadFromFile(filename string) (*domain.RequestFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a request file held in memory
func (ip *InputParser) Parse(data []byte) (*domain.RequestFile, error) {
	var file domain.RequestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRequests(&file); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &file, nil
}

// ValidateRequests checks every request names exactly one calculator and
// carries valid inputs. Names must be unique.
func (ip *InputParser) ValidateRequests(file *domain.RequestFile) error {
	if len(file.Requests) == 0 {
		return fmt.Errorf("%w: no requests provided", domain.ErrInvalidInput)
	}

	seen := make(map[string]int, len(file.Requests))
	for i, req := range file.Requests {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return fmt.Errorf("%w: request %d has no name", domain.ErrInvalidInput, i)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("%w: request %d reuses name %q from request %d", domain.ErrInvalidInput, i, name, prev)
		}
		seen[name] = i

		ctx, err := req.Context()
		if err != nil {
			return fmt.Errorf("request %q: %w", name, err)
		}
		if err := ctx.Calculation.Validate(); err != nil {
			return fmt.Errorf("request %q: %w", name, err)
		}
	}

	return nil
}

// NamedCalculations converts a validated file into engine requests, in file order
func (ip *InputParser) NamedCalculations(file *domain.RequestFile) ([]domain.NamedCalculation, error) {
	out := make([]domain.NamedCalculation, 0, len(file.Requests))
	for _, req := range file.Requests {
		ctx, err := req.Context()
		if err != nil {
			return nil, fmt.Errorf("request %q: %w", req.Name, err)
		}
		out = append(out, domain.NamedCalculation{Name: strings.TrimSpace(req.Name), Context: ctx})
	}
	return out, nil
}

// SaveToFile writes the request file as YAML
func (ip *InputParser) SaveToFile(file *domain.RequestFile, filename string) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example request file covering every calculator
func (ip *InputParser) CreateExampleConfiguration() *domain.RequestFile {
	return &domain.RequestFile{
		Requests: []domain.CalculationRequest{
			{
				Name:       "Fixed deposit, quarterly compounding",
				Calculator: string(domain.CalculatorCompoundInterest),
				CompoundInterest: &domain.CompoundInterestInput{
					Principal: decimal.NewFromInt(100000),
					Rate:      decimal.NewFromInt(12),
					Years:     decimal.NewFromInt(10),
					Frequency: domain.FrequencyQuarterly,
				},
			},
			{
				Name:       "Home loan 50L over 20 years",
				Calculator: string(domain.CalculatorHomeLoan),
				HomeLoan: &domain.HomeLoanInput{
					Amount: decimal.NewFromInt(5000000),
					Rate:   decimal.NewFromFloat(8.5),
					Tenure: decimal.NewFromInt(20),
				},
			},
			{
				Name:       "Equity SIP",
				Calculator: string(domain.CalculatorSIP),
				SIP: &domain.SIPInput{
					MonthlyAmount: decimal.NewFromInt(10000),
					Rate:          decimal.NewFromInt(12),
					Years:         decimal.NewFromInt(15),
				},
			},
			{
				Name:       "Retire at 60",
				Calculator: string(domain.CalculatorRetirement),
				Retirement: &domain.RetirementInput{
					CurrentAge:      decimal.NewFromInt(30),
					RetirementAge:   decimal.NewFromInt(60),
					MonthlyExpenses: decimal.NewFromInt(50000),
					InflationRate:   decimal.NewFromInt(6),
					ExpectedReturn:  decimal.NewFromInt(12),
				},
			},
			{
				Name:       "Child education",
				Calculator: string(domain.CalculatorGoal),
				Goal: &domain.GoalInput{
					GoalAmount:     decimal.NewFromInt(1000000),
					TimeToGoal:     decimal.NewFromInt(5),
					ExpectedReturn: decimal.NewFromInt(12),
					InflationRate:  decimal.NewFromInt(6),
				},
			},
		},
	}
}

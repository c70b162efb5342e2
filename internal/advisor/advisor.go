// Package advisor obtains structured financial advice for a chat question,
// optionally grounded in the calculator the user is looking at.
package advisor

import (
	"context"
	"fmt"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// DefaultAdvice is returned when a provider reply carries no advice text.
const DefaultAdvice = "I'd be happy to help with your financial planning question."

// SystemPrompt instructs the model to answer as an Indian financial planner in
// a fixed JSON shape.
const SystemPrompt = `You are an expert financial advisor specializing in Indian financial planning. You provide personalized advice on investments, loans, retirement planning, and financial goals. Always:

1. Use Indian Rupees (₹) in your responses
2. Consider Indian financial instruments (SIP, PPF, ELSS, EPF, etc.)
3. Reference Indian tax laws and financial regulations
4. Provide practical, actionable advice
5. Consider inflation rates typical in India (6-8%)
6. Suggest diversified portfolios suitable for Indian investors

Respond with JSON in this exact format:
{
  "advice": "detailed financial advice string",
  "suggestions": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "actionItems": ["action 1", "action 2", "action 3"]
}`

// AdviceRequest is a user question plus the calculator state it refers to.
type AdviceRequest struct {
	Question string
	Context  *domain.CalculationContext
}

// HasContext reports whether the request carries a usable calculation.
func (r AdviceRequest) HasContext() bool {
	return r.Context != nil && r.Context.Calculation != nil
}

// Client produces advice for a question.
type Client interface {
	Advise(ctx context.Context, req AdviceRequest) (domain.Advice, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req AdviceRequest) (domain.Advice, error)

func (f ClientFunc) Advise(ctx context.Context, req AdviceRequest) (domain.Advice, error) {
	return f(ctx, req)
}

// BuildPrompt assembles the user prompt. When a calculation is attached the
// question is followed by its calculator type, inputs and results as JSON.
func BuildPrompt(req AdviceRequest) (string, error) {
	prompt := req.Question
	if !req.HasContext() {
		return prompt, nil
	}
	in, err := req.Context.InputsJSON()
	if err != nil {
		return "", fmt.Errorf("encode context inputs: %w", err)
	}
	out, err := req.Context.ResultsJSON()
	if err != nil {
		return "", fmt.Errorf("encode context results: %w", err)
	}
	results := "null"
	if out != nil {
		results = string(out)
	}
	prompt += fmt.Sprintf("\n\nContext: I'm using a %s calculator with these inputs: %s and got these results: %s",
		req.Context.Type(), in, results)
	return prompt, nil
}

// withDefaults fills in the fields a provider left out.
func withDefaults(a domain.Advice) domain.Advice {
	if a.Advice == "" {
		a.Advice = DefaultAdvice
	}
	if a.Suggestions == nil {
		a.Suggestions = []string{}
	}
	if a.ActionItems == nil {
		a.ActionItems = []string{}
	}
	return a
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrAdvisorUnavailable, fmt.Sprintf(format, args...))
}

package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationRequestContext(t *testing.T) {
	sip := &SIPInput{MonthlyAmount: decimal.NewFromInt(10000), Rate: decimal.NewFromInt(12), Years: decimal.NewFromInt(15)}

	ctx, err := CalculationRequest{Name: "sip", SIP: sip}.Context()
	require.NoError(t, err)
	assert.Equal(t, CalculatorSIP, ctx.Type())

	ctx, err = CalculationRequest{Name: "sip", Calculator: "SIP", SIP: sip}.Context()
	require.NoError(t, err)
	assert.Equal(t, CalculatorSIP, ctx.Type())
}

func TestCalculationRequestContextErrors(t *testing.T) {
	sip := &SIPInput{}
	goal := &GoalInput{}

	cases := map[string]CalculationRequest{
		"no block":      {Name: "empty"},
		"two blocks":    {Name: "both", SIP: sip, Goal: goal},
		"mismatch":      {Name: "mismatch", Calculator: "goal", SIP: sip},
		"unknown label": {Name: "unknown", Calculator: "lumpsum", SIP: sip},
	}
	for name, req := range cases {
		_, err := req.Context()
		assert.True(t, errors.Is(err, ErrInvalidInput), "%s: %v", name, err)
	}
}

func TestRequestForRoundTrip(t *testing.T) {
	in := HomeLoanInput{Amount: decimal.NewFromInt(5000000), Rate: decimal.NewFromFloat(8.5), Tenure: decimal.NewFromInt(20)}
	req := RequestFor("loan", &HomeLoanCalculation{Inputs: in})

	assert.Equal(t, "home-loan", req.Calculator)
	require.NotNil(t, req.HomeLoan)

	ctx, err := req.Context()
	require.NoError(t, err)
	got := ctx.Calculation.(*HomeLoanCalculation)
	assert.True(t, got.Inputs.Amount.Equal(in.Amount))
	assert.Nil(t, got.Results)
}

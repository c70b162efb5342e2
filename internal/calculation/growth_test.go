package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPowIntMatchesRepeatedMultiplication(t *testing.T) {
	base := dec(1.0075)
	want := one
	for i := 0; i < 37; i++ {
		want = want.Mul(base)
	}
	assertRelClose(t, want, powInt(base, 37), 1e-15)
	assert.True(t, powInt(base, 0).Equal(one))
	assertRelClose(t, one.Div(want), powInt(base, -37), 1e-14)
}

func TestPowFractionalExponent(t *testing.T) {
	// 1.21^0.5 = 1.1
	assertRelClose(t, dec(1.1), pow(dec(1.21), dec(0.5)), 1e-12)
	// 1.21^2.5 = 1.4641 * 1.1
	assertRelClose(t, dec(1.61051), pow(dec(1.21), dec(2.5)), 1e-12)
}

func TestEMIZeroRateAndZeroMonths(t *testing.T) {
	assert.True(t, EMI(dec(120000), decimal.Zero, 12).Equal(dec(10000)))
	assert.True(t, EMI(dec(120000), dec(0.01), 0).IsZero())
}

func TestRequiredMonthlyInvestmentWithoutWindow(t *testing.T) {
	amount, ok := RequiredMonthlyInvestment(dec(1000000), dec(0.01), decimal.Zero)
	assert.False(t, ok)
	assert.True(t, amount.IsZero())

	amount, ok = RequiredMonthlyInvestment(dec(1000000), dec(0.01), dec(-12))
	assert.False(t, ok)
	assert.True(t, amount.IsZero())
}

func TestSIPFutureValueSingleMonth(t *testing.T) {
	// one deposit compounds for one month under the annuity-due convention
	assert.True(t, SIPFutureValue(dec(1000), dec(0.01), dec(1)).Equal(dec(1010)))
}

package output

import (
	"testing"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCoverEveryCalculator(t *testing.T) {
	for _, typ := range domain.AllCalculatorTypes() {
		calc, err := domain.NewCalculation(typ)
		assert.NoError(t, err)
		assert.NotEmpty(t, InputMetrics(calc), typ)
		assert.Nil(t, ResultMetrics(calc), "%s has no results yet", typ)
		assert.Empty(t, Breakdown(calc).Rows, typ)
	}
}

func TestRender(t *testing.T) {
	v := decimal.NewFromFloat(1234567.4)
	assert.Equal(t, "₹12,34,567", Render(KindMoney, v))
	assert.Equal(t, "8.50%", Render(KindPercent, decimal.NewFromFloat(8.5)))
	assert.Equal(t, "2.5 yrs", Render(KindYears, decimal.NewFromFloat(2.5)))
	assert.Equal(t, "240", Render(KindCount, decimal.NewFromInt(240)))
	assert.Equal(t, "yes", Render(KindFlag, decimal.NewFromInt(1)))
	assert.Equal(t, "no", Render(KindFlag, decimal.Zero))

	assert.Equal(t, "1234567.40", Raw(KindMoney, v))
	assert.Equal(t, "true", Raw(KindFlag, decimal.NewFromInt(1)))
	assert.Equal(t, "daily", RawMetric(Metric{Kind: KindText, Text: "daily"}))
}

func TestGenerateAssumptionsFollowsReport(t *testing.T) {
	report := &domain.CalculationReport{Calculations: []domain.NamedCalculation{
		{Name: "a", Context: domain.CalculationContext{Calculation: &domain.SIPCalculation{}}},
		{Name: "b", Context: domain.CalculationContext{Calculation: &domain.SIPCalculation{}}},
	}}
	got := GenerateAssumptions(report)
	assert.Len(t, got, len(DefaultAssumptions)+1)
	assert.Contains(t, got[len(got)-1], "SIP")
}

package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// CSVSummarizer emits one row per input and result figure, in long format so
// different calculators share a header.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.CalculationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Name", "Calculator", "Section", "Field", "Value"}); err != nil {
		return nil, err
	}
	for _, nc := range report.Calculations {
		calc := nc.Context.Calculation
		if calc == nil {
			continue
		}
		sections := []struct {
			name    string
			metrics []Metric
		}{
			{"input", InputMetrics(calc)},
			{"result", ResultMetrics(calc)},
		}
		for _, sec := range sections {
			for _, m := range sec.metrics {
				if err := w.Write([]string{nc.Name, string(calc.Type()), sec.name, m.Field, RawMetric(m)}); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

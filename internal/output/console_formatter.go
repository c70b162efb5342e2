package output

import (
	"bytes"
	"fmt"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// ConsoleFormatter provides a concise one-block-per-calculation summary with
// amounts in Cr/L/K shorthand.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CALCULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, nc := range report.Calculations {
		calc := nc.Context.Calculation
		if calc == nil {
			return nil, fmt.Errorf("calculation %q has no context", nc.Name)
		}
		fmt.Fprintf(&buf, "%s [%s]\n", nc.Name, calc.Type())
		results := ResultMetrics(calc)
		if results == nil {
			fmt.Fprintln(&buf, "  not calculated")
			continue
		}
		for _, m := range results {
			value := RenderMetric(m)
			if m.Kind == KindMoney {
				value = FormatCompact(m.Value)
			}
			fmt.Fprintf(&buf, "  %s: %s\n", m.Label, value)
		}
	}
	return buf.Bytes(), nil
}

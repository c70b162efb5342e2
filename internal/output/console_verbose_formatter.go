package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders every calculation with inputs, results and
// the yearly breakdown.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "RUPEE CALCULATOR REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	for i, nc := range report.Calculations {
		calc := nc.Context.Calculation
		if calc == nil {
			return nil, fmt.Errorf("calculation %q has no context", nc.Name)
		}
		fmt.Fprintln(&buf)
		heading := fmt.Sprintf("%d. %s (%s)", i+1, nc.Name, calc.Type().Title())
		fmt.Fprintln(&buf, heading)
		fmt.Fprintln(&buf, strings.Repeat("-", len([]rune(heading))))

		fmt.Fprintln(&buf, "INPUTS:")
		writeMetrics(&buf, InputMetrics(calc))

		results := ResultMetrics(calc)
		if results == nil {
			fmt.Fprintln(&buf, "RESULTS: not calculated")
			continue
		}
		fmt.Fprintln(&buf, "RESULTS:")
		writeMetrics(&buf, results)

		if table := Breakdown(calc); len(table.Rows) > 0 {
			fmt.Fprintln(&buf, "YEARLY BREAKDOWN:")
			writeBreakdown(&buf, table)
		}
	}
	return buf.Bytes(), nil
}

func writeMetrics(w io.Writer, metrics []Metric) {
	for _, m := range metrics {
		fmt.Fprintf(w, "  %-32s %s\n", m.Label+":", RenderMetric(m))
	}
}

func writeBreakdown(w io.Writer, t BreakdownTable) {
	fmt.Fprintf(w, "  %4s", "Year")
	for _, col := range t.Columns {
		fmt.Fprintf(w, " %16s", col.Label)
	}
	fmt.Fprintln(w)
	for _, row := range t.Rows {
		fmt.Fprintf(w, "  %4d", row.Year)
		for i, v := range row.Values {
			fmt.Fprintf(w, " %16s", Render(t.Columns[i].Kind, v))
		}
		fmt.Fprintln(w)
	}
}

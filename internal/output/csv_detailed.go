package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// CSVDetailedExporter provides the yearly breakdown per calculation, one row
// per year and column.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.CalculationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Name", "Calculator", "Year", "Field", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, nc := range report.Calculations {
		calc := nc.Context.Calculation
		if calc == nil {
			continue
		}
		table := Breakdown(calc)
		for _, row := range table.Rows {
			for i, v := range row.Values {
				col := table.Columns[i]
				rec := []string{nc.Name, string(calc.Type()), intToString(row.Year), col.Field, Raw(col.Kind, v)}
				if err := w.Write(rec); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

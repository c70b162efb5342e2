package output

import "github.com/rupeecalc/rupee-calculator/internal/domain"

// GenerateReport saves the report in the named format ("all" writes the
// console and detailed CSV forms) under dir and returns the files written.
func GenerateReport(report *domain.CalculationReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := SaveFormatted(dir, f, report)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	name, err := SaveFormatted(dir, f, report)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"metric": RenderMetric,
	"render": Render,
}).Parse(htmlTemplateSource))

type htmlSection struct {
	Index     int
	Name      string
	Title     string
	Type      domain.CalculatorType
	Inputs    []Metric
	Results   []Metric
	Breakdown BreakdownTable
}

func (h HTMLFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer
	sections := make([]htmlSection, 0, len(report.Calculations))
	for i, nc := range report.Calculations {
		calc := nc.Context.Calculation
		if calc == nil {
			continue
		}
		sections = append(sections, htmlSection{
			Index:     i + 1,
			Name:      nc.Name,
			Title:     calc.Type().Title(),
			Type:      calc.Type(),
			Inputs:    InputMetrics(calc),
			Results:   ResultMetrics(calc),
			Breakdown: Breakdown(calc),
		})
	}

	data := struct {
		Sections    []htmlSection
		Assumptions []string
	}{sections, GenerateAssumptions(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

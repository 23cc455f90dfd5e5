package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/export"
)

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type row struct {
	Name  string
	Value string
}

type view struct {
	Report domain.Report
	Window string
	Rows   []row
}

func (c *Reporter) Handle(report domain.Report) error {
	tmpl := `
{{.Report.Title}} [{{.Report.Status}}]
Type: {{.Report.Type}}
Window: {{.Window}}
{{if .Report.GeneratedAt}}Generated At: {{.Report.GeneratedAt.Format "2006-01-02 15:04:05"}}
{{end}}
{{range .Rows}}- {{.Name}}: {{.Value}}
{{end}}`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	headers, values := export.Flatten(report.Data)
	rows := make([]row, 0, len(headers))
	for i, header := range headers {
		rows = append(rows, row{Name: header, Value: values[i]})
	}

	return t.Execute(c.writer, view{
		Report: report,
		Window: windowLabel(report),
		Rows:   rows,
	})
}

func windowLabel(report domain.Report) string {
	if report.StartDate == nil && report.EndDate == nil {
		return "all time"
	}
	start, end := "open", "open"
	if report.StartDate != nil {
		start = report.StartDate.Format("2006-01-02")
	}
	if report.EndDate != nil {
		end = report.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", start, end)
}

package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/report"
)

// Export is a rendered CSV attachment.
type Export struct {
	Filename string
	Content  []byte
}

// Exporter renders GENERATED reports as CSV. It only ever reads the report
// store; the result shape is opaque to it.
type Exporter struct {
	reports report.Store
}

func NewExporter(reports report.Store) *Exporter {
	return &Exporter{reports: reports}
}

// CSV loads a report and flattens its data into a metadata preamble plus a
// single header/value row pair. Non-GENERATED reports are rejected.
func (e *Exporter) CSV(ctx context.Context, id string) (Export, error) {
	rep, err := e.reports.Get(ctx, id)
	if err != nil {
		return Export{}, err
	}

	if rep.Status != domain.ReportStatusGenerated || rep.Data == nil || rep.GeneratedAt == nil {
		return Export{}, fmt.Errorf("report %s has status %s: %w",
			rep.ID, rep.Status, domain.ErrNotGenerated)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	preamble := [][]string{
		{"Report Type", string(rep.Type)},
		{"Report Title", rep.Title},
		{"Generated At", rep.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Date Range", dateRange(rep)},
		{""},
	}
	if err := w.WriteAll(preamble); err != nil {
		return Export{}, fmt.Errorf("write preamble: %w", err)
	}

	headers, values := Flatten(rep.Data)
	if len(headers) > 0 {
		if err := w.WriteAll([][]string{headers, values}); err != nil {
			return Export{}, fmt.Errorf("write rows: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, fmt.Errorf("flush csv: %w", err)
	}

	return Export{
		Filename: Filename(rep.Title, time.Now().UTC()),
		Content:  buf.Bytes(),
	}, nil
}

func dateRange(rep domain.Report) string {
	if rep.StartDate == nil && rep.EndDate == nil {
		return "All time"
	}
	return fmt.Sprintf("%s - %s", formatBound(rep.StartDate), formatBound(rep.EndDate))
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format("2006-01-02")
}

// Filename derives an attachment name from the report title: non-alphanumeric
// characters stripped, lower-cased, timestamp suffix against collisions.
func Filename(title string, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "report"
	}
	return fmt.Sprintf("%s_%s.csv", name, now.Format("20060102150405"))
}

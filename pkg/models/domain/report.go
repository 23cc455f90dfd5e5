package domain

import (
	"fmt"
	"time"
)

type ReportType string

const (
	ReportTypeAttendance     ReportType = "ATTENDANCE"
	ReportTypeFinancial      ReportType = "FINANCIAL"
	ReportTypeSessionSummary ReportType = "SESSION_SUMMARY"
	ReportTypePerformance    ReportType = "PERFORMANCE"
	ReportTypeCustom         ReportType = "CUSTOM"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusGenerated ReportStatus = "GENERATED"
	ReportStatusFailed    ReportStatus = "FAILED"
)

// Filters is the opaque filter bag attached to a report request. Each
// generator reads only the keys it understands; the bag is stored verbatim
// for reproducibility.
type Filters map[string]any

// Report is a persisted snapshot of computed analytics plus the request
// parameters that produced it. Rows are append-only: re-generation writes a
// new row, never an update.
type Report struct {
	ID          string
	Type        ReportType
	Title       string
	Description string
	Status      ReportStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Filters     Filters
	Data        map[string]any
	GeneratedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultTitle derives a display title from the report type and window when
// the caller did not supply one.
func DefaultTitle(reportType ReportType, start, end *time.Time) string {
	title := fmt.Sprintf("%s Report", reportType)
	if start != nil && end != nil {
		title = fmt.Sprintf("%s (%s - %s)", title,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return title
}

// String returns a filter value as a string, with ok reporting whether the
// key was present and non-empty.
func (f Filters) String(key string) (string, bool) {
	v, ok := f[key].(string)
	return v, ok && v != ""
}

// Bool reads a boolean flag from the bag; absent or non-boolean keys are
// false.
func (f Filters) Bool(key string) bool {
	v, _ := f[key].(bool)
	return v
}

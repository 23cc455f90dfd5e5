package api

import "time"

type CreateReportRequest struct {
	Type        string         `json:"type" validate:"required,oneof=ATTENDANCE FINANCIAL SESSION_SUMMARY PERFORMANCE CUSTOM"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	StartDate   *time.Time     `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	Filters     map[string]any `json:"filters"`
}

// GenerateReportRequest deliberately does not constrain Type at the
// transport layer: an unknown type must reach the lifecycle manager so the
// attempt is recorded as a FAILED report before the error comes back.
type GenerateReportRequest struct {
	Type      string         `json:"type" validate:"required"`
	Title     string         `json:"title"`
	StartDate *time.Time     `json:"startDate"`
	EndDate   *time.Time     `json:"endDate"`
	Filters   map[string]any `json:"filters"`
}

type Report struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	StartDate   *time.Time     `json:"startDate,omitempty"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	Filters     map[string]any `json:"filters,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	GeneratedAt *time.Time     `json:"generatedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ReportPage struct {
	Data  []Report `json:"data"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
}

type Ack struct {
	Message string `json:"message"`
}

type Error struct {
	Error string `json:"error"`
}

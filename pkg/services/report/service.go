package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/services/report/generators"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/report"
)

type CreateParams struct {
	Type        domain.ReportType
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Filters     domain.Filters
}

type GenerateParams struct {
	Type      domain.ReportType
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	Filters   domain.Filters
}

// Service drives the report lifecycle: PENDING placeholders via Create,
// GENERATED/FAILED snapshots via Generate, plus list/get/delete.
type Service interface {
	Create(ctx context.Context, params CreateParams) (domain.Report, error)
	Generate(ctx context.Context, params GenerateParams) (domain.Report, error)
	List(ctx context.Context, page, limit int, reportType *domain.ReportType) ([]domain.Report, int, error)
	Get(ctx context.Context, id string) (domain.Report, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	reports  report.Store
	registry generators.Registry
}

func NewService(reports report.Store, registry generators.Registry) Service {
	return &service{
		reports:  reports,
		registry: registry,
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (domain.Report, error) {
	if _, err := s.registry.Get(params.Type); err != nil {
		return domain.Report{}, err
	}

	return s.reports.Create(ctx, domain.Report{
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		Status:      domain.ReportStatusPending,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Filters:     params.Filters,
	})
}

// Generate computes a snapshot and persists it. Any failure - bad date
// ordering, unknown type, generator error - is persisted as a FAILED report
// first and then returned to the caller, so a failed attempt leaves an audit
// row AND surfaces synchronously.
func (s *service) Generate(ctx context.Context, params GenerateParams) (domain.Report, error) {
	data, err := s.compute(ctx, params)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("type", string(params.Type)).
			Msg("report generation failed")
		s.persistFailure(ctx, params, err)
		return domain.Report{}, err
	}

	title := params.Title
	if title == "" {
		title = domain.DefaultTitle(params.Type, params.StartDate, params.EndDate)
	}

	now := time.Now().UTC()
	generated, err := s.reports.Create(ctx, domain.Report{
		Type:        params.Type,
		Title:       title,
		Status:      domain.ReportStatusGenerated,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Filters:     params.Filters,
		Data:        data,
		GeneratedAt: &now,
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("persist generated report: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("id", generated.ID).
		Str("type", string(generated.Type)).
		Msg("report generated")
	return generated, nil
}

func (s *service) compute(ctx context.Context, params GenerateParams) (map[string]any, error) {
	if params.StartDate != nil && params.EndDate != nil && params.StartDate.After(*params.EndDate) {
		return nil, fmt.Errorf("start date %s is after end date %s: %w",
			params.StartDate.Format("2006-01-02"),
			params.EndDate.Format("2006-01-02"),
			domain.ErrValidation)
	}

	generator, err := s.registry.Get(params.Type)
	if err != nil {
		return nil, err
	}

	window := aggregate.NewWindow(params.StartDate, params.EndDate)
	data, err := generator.Generate(ctx, window, params.Filters)
	if err != nil {
		return nil, fmt.Errorf("generate %s report: %w", params.Type, err)
	}
	return data, nil
}

// persistFailure writes the FAILED audit row. It never masks the original
// error: a failing write is only logged.
func (s *service) persistFailure(ctx context.Context, params GenerateParams, cause error) {
	title := params.Title
	if title == "" {
		title = domain.DefaultTitle(params.Type, params.StartDate, params.EndDate)
	}

	_, err := s.reports.Create(ctx, domain.Report{
		Type:      params.Type,
		Title:     title + " (Failed)",
		Status:    domain.ReportStatusFailed,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Filters:   params.Filters,
		Data:      map[string]any{"error": cause.Error()},
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("type", string(params.Type)).
			Msg("failed to persist FAILED report")
	}
}

func (s *service) List(ctx context.Context, page, limit int, reportType *domain.ReportType) ([]domain.Report, int, error) {
	return s.reports.List(ctx, page, limit, reportType)
}

func (s *service) Get(ctx context.Context, id string) (domain.Report, error) {
	return s.reports.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("id", id).Msg("report deleted")
	return nil
}

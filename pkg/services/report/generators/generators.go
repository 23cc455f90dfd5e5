package generators

import (
	"context"
	"fmt"
	"sync"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

// Generator computes the nested analytics result for one report type. It is
// read-only: the only side effects are reads of the operational tables.
type Generator interface {
	Generate(ctx context.Context, window aggregate.Window, filters domain.Filters) (map[string]any, error)
}

// Registry maps report types to their generators.
type Registry interface {
	Register(reportType domain.ReportType, generator Generator) error
	Get(reportType domain.ReportType) (Generator, error)
}

type registry struct {
	mu         sync.RWMutex
	generators map[domain.ReportType]Generator
}

func NewRegistry() Registry {
	return &registry{
		generators: make(map[domain.ReportType]Generator),
	}
}

// NewDefaultRegistry wires the five built-in generators against the given
// record store.
func NewDefaultRegistry(store records.Store) Registry {
	r := NewRegistry()
	r.Register(domain.ReportTypeAttendance, NewAttendanceGenerator(store))
	r.Register(domain.ReportTypeFinancial, NewFinancialGenerator(store))
	r.Register(domain.ReportTypeSessionSummary, NewSessionSummaryGenerator(store))
	r.Register(domain.ReportTypePerformance, NewPerformanceGenerator(store))
	r.Register(domain.ReportTypeCustom, NewCustomGenerator(store))
	return r
}

func (r *registry) Register(reportType domain.ReportType, generator Generator) error {
	if reportType == "" {
		return fmt.Errorf("report type cannot be empty")
	}
	if generator == nil {
		return fmt.Errorf("generator cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[reportType]; exists {
		return fmt.Errorf("report type %q is already registered", reportType)
	}

	r.generators[reportType] = generator
	return nil
}

func (r *registry) Get(reportType domain.ReportType) (Generator, error) {
	r.mu.RLock()
	generator, exists := r.generators[reportType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report type %q: %w", reportType, domain.ErrValidation)
	}
	return generator, nil
}

// asAny widens a tally for embedding into the schema-less result document.
func asAny(counts map[string]int) map[string]any {
	out := make(map[string]any, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func userNames(users []domain.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = fmt.Sprintf("%s (%s)", u.Name, u.Email)
	}
	return names
}

func locationNames(locations []domain.Location) map[string]string {
	names := make(map[string]string, len(locations))
	for _, l := range locations {
		names[l.ID] = l.Name
	}
	return names
}

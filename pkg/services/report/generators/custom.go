package generators

import (
	"context"
	"fmt"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

// CustomGenerator counts whichever record collections the caller asked for
// via the include* flags. Sections the caller did not request are absent
// from the result, and the applied filter bag is echoed for traceability.
type CustomGenerator struct {
	records records.Store
}

func NewCustomGenerator(store records.Store) *CustomGenerator {
	return &CustomGenerator{records: store}
}

func (g *CustomGenerator) Generate(ctx context.Context, window aggregate.Window, filters domain.Filters) (map[string]any, error) {
	result := map[string]any{
		"filters":   map[string]any(filters),
		"dateRange": window.DateRange(),
	}

	if filters.Bool("includeSessions") {
		sessions, err := g.records.Sessions(ctx, records.SessionQuery{})
		if err != nil {
			return nil, fmt.Errorf("count sessions: %w", err)
		}
		count := 0
		for _, s := range sessions {
			if window.Contains(s.Date) {
				count++
			}
		}
		result["totalSessions"] = count
	}

	if filters.Bool("includeInvoices") {
		invoices, err := g.records.Invoices(ctx, records.InvoiceQuery{})
		if err != nil {
			return nil, fmt.Errorf("count invoices: %w", err)
		}
		count := 0
		for _, inv := range invoices {
			if window.Contains(inv.CreatedAt) {
				count++
			}
		}
		result["totalInvoices"] = count
	}

	if filters.Bool("includeUsers") {
		query := records.UserQuery{}
		if v, ok := filters.String("role"); ok {
			query.Role = v
		}
		users, err := g.records.Users(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		result["totalUsers"] = len(users)
	}

	if filters.Bool("includeKids") {
		query := records.KidQuery{}
		if v, ok := filters.String("sessionType"); ok {
			query.SessionType = v
		}
		kids, err := g.records.ApprovedKids(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("count kids: %w", err)
		}
		result["totalKids"] = len(kids)
	}

	return result, nil
}

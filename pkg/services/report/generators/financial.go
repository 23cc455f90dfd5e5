package generators

import (
	"context"
	"fmt"
	"sort"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

// FinancialGenerator totals invoices in the window by status and derives a
// per-month payment series. Invoices are matched on creation time; the trend
// series groups on payment time.
type FinancialGenerator struct {
	records records.Store
}

func NewFinancialGenerator(store records.Store) *FinancialGenerator {
	return &FinancialGenerator{records: store}
}

func (g *FinancialGenerator) Generate(ctx context.Context, window aggregate.Window, filters domain.Filters) (map[string]any, error) {
	query := records.InvoiceQuery{}
	if v, ok := filters.String("parentId"); ok {
		query.ParentID = v
	}
	if v, ok := filters.String("coachId"); ok {
		query.CoachID = v
	}
	if v, ok := filters.String("type"); ok {
		query.Type = v
	}

	invoices, err := g.records.Invoices(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	var (
		totalRevenue  float64
		pendingAmount float64
		overdueAmount float64
		parentRevenue float64
		payoutRevenue float64
	)
	type trend struct {
		total float64
		count int
	}
	trends := make(map[string]*trend)

	for _, inv := range invoices {
		if !window.Contains(inv.CreatedAt) {
			continue
		}
		switch inv.Status {
		case domain.InvoiceStatusPaid:
			totalRevenue += inv.Amount
			if inv.Type == domain.InvoiceTypeCoachPayout {
				payoutRevenue += inv.Amount
			} else {
				parentRevenue += inv.Amount
			}
		case domain.InvoiceStatusPending:
			pendingAmount += inv.Amount
		case domain.InvoiceStatusOverdue:
			overdueAmount += inv.Amount
		}

		if inv.PaymentDate != nil {
			month := inv.PaymentDate.Format("2006-01")
			if trends[month] == nil {
				trends[month] = &trend{}
			}
			trends[month].total += inv.Amount
			trends[month].count++
		}
	}

	months := make([]string, 0, len(trends))
	for month := range trends {
		months = append(months, month)
	}
	sort.Strings(months)

	paymentTrends := make([]any, 0, len(months))
	for _, month := range months {
		paymentTrends = append(paymentTrends, map[string]any{
			"month": month,
			"total": trends[month].total,
			"count": trends[month].count,
		})
	}

	return map[string]any{
		"totalRevenue":  totalRevenue,
		"pendingAmount": pendingAmount,
		"overdueAmount": overdueAmount,
		"revenueByType": map[string]any{
			"parentInvoices": parentRevenue,
			"coachPayouts":   payoutRevenue,
		},
		"paymentTrends": paymentTrends,
		"dateRange":     window.DateRange(),
	}, nil
}

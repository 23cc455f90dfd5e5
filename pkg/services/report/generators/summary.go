package generators

import (
	"context"
	"fmt"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

// SessionSummaryGenerator breaks session counts down by status, type, coach
// and location for a window.
type SessionSummaryGenerator struct {
	records records.Store
}

func NewSessionSummaryGenerator(store records.Store) *SessionSummaryGenerator {
	return &SessionSummaryGenerator{records: store}
}

func (g *SessionSummaryGenerator) Generate(ctx context.Context, window aggregate.Window, filters domain.Filters) (map[string]any, error) {
	query := records.SessionQuery{}
	if v, ok := filters.String("locationId"); ok {
		query.LocationID = v
	}
	if v, ok := filters.String("coachId"); ok {
		query.CoachID = v
	}

	sessions, err := g.records.Sessions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	matched := make([]domain.Session, 0, len(sessions))
	freeSessions := 0
	for _, s := range sessions {
		if !window.Contains(s.Date) {
			continue
		}
		matched = append(matched, s)
		if s.IsFree {
			freeSessions++
		}
	}

	users, err := g.records.Users(ctx, records.UserQuery{})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	locations, err := g.records.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}

	coachNames := userNames(users)
	locNames := locationNames(locations)

	return map[string]any{
		"totalSessions": len(matched),
		"freeSessions":  freeSessions,
		"sessionsByStatus": asAny(aggregate.CountBy(matched, func(s domain.Session) string {
			return string(s.Status)
		})),
		"sessionsByType": asAny(aggregate.CountBy(matched, func(s domain.Session) string {
			return s.Type
		})),
		"sessionsByCoach": asAny(aggregate.CountBy(matched, func(s domain.Session) string {
			return aggregate.Resolve(s.CoachID, coachNames)
		})),
		"sessionsByLocation": asAny(aggregate.CountBy(matched, func(s domain.Session) string {
			return aggregate.Resolve(s.LocationID, locNames)
		})),
		"dateRange": window.DateRange(),
	}, nil
}

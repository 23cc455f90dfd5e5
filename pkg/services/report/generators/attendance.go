package generators

import (
	"context"
	"fmt"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

// AttendanceGenerator reports session completion over a window. Sessions
// still SCHEDULED at window end are bucketed as no-shows; that is a policy
// choice, not a true no-show signal.
type AttendanceGenerator struct {
	records records.Store
}

func NewAttendanceGenerator(store records.Store) *AttendanceGenerator {
	return &AttendanceGenerator{records: store}
}

func (g *AttendanceGenerator) Generate(ctx context.Context, window aggregate.Window, filters domain.Filters) (map[string]any, error) {
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
	for _, s := range sessions {
		if window.Contains(s.Date) {
			matched = append(matched, s)
		}
	}

	byStatus := aggregate.CountBy(matched, func(s domain.Session) string {
		return string(s.Status)
	})
	total := len(matched)
	completed := byStatus[string(domain.SessionStatusCompleted)]
	cancelled := byStatus[string(domain.SessionStatusCancelled)]

	locations, err := g.records.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	names := locationNames(locations)

	return map[string]any{
		"totalSessions":     total,
		"completedSessions": completed,
		"cancelledSessions": cancelled,
		"noShowSessions":    total - completed - cancelled,
		"attendanceRate":    aggregate.Rate(completed, total),
		"sessionsByType": asAny(aggregate.CountBy(matched, func(s domain.Session) string {
			return s.Type
		})),
		"sessionsByLocation": asAny(aggregate.CountBy(matched, func(s domain.Session) string {
			return aggregate.Resolve(s.LocationID, names)
		})),
		"dateRange": window.DateRange(),
	}, nil
}

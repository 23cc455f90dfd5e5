package generators

import (
	"context"
	"fmt"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

// PerformanceGenerator aggregates milestone and achievement progress across
// approved kid records. The window does not apply here; progress is
// cumulative.
type PerformanceGenerator struct {
	records records.Store
}

func NewPerformanceGenerator(store records.Store) *PerformanceGenerator {
	return &PerformanceGenerator{records: store}
}

func (g *PerformanceGenerator) Generate(ctx context.Context, window aggregate.Window, filters domain.Filters) (map[string]any, error) {
	query := records.KidQuery{}
	if v, ok := filters.String("sessionType"); ok {
		query.SessionType = v
	}

	kids, err := g.records.ApprovedKids(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load kids: %w", err)
	}

	var (
		withMilestones    int
		withAchievements  int
		milestonesTotal   int
		achievementsTotal int
	)
	for _, kid := range kids {
		if len(kid.Milestones) > 0 {
			withMilestones++
		}
		if len(kid.Achievements) > 0 {
			withAchievements++
		}
		milestonesTotal += len(kid.Milestones)
		achievementsTotal += len(kid.Achievements)
	}

	return map[string]any{
		"totalKids":            len(kids),
		"kidsWithMilestones":   withMilestones,
		"kidsWithAchievements": withAchievements,
		"averageMilestones":    aggregate.Average(milestonesTotal, len(kids)),
		"averageAchievements":  aggregate.Average(achievementsTotal, len(kids)),
		"kidsBySessionType": asAny(aggregate.CountBy(kids, func(k domain.Kid) string {
			return k.SessionType
		})),
		"dateRange": window.DateRange(),
	}, nil
}

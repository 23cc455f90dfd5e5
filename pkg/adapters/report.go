package adapters

import (
	"github.com/coravel-fit/report-engine/pkg/models/api"
	"github.com/coravel-fit/report-engine/pkg/models/domain"
)

func MapReportDomainToApi(r domain.Report) api.Report {
	return api.Report{
		ID:          r.ID,
		Type:        string(r.Type),
		Title:       r.Title,
		Description: r.Description,
		Status:      string(r.Status),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Filters:     r.Filters,
		Data:        r.Data,
		GeneratedAt: r.GeneratedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func MapReportsDomainToApi(reports []domain.Report) []api.Report {
	res := make([]api.Report, 0, len(reports))
	for _, r := range reports {
		res = append(res, MapReportDomainToApi(r))
	}
	return res
}

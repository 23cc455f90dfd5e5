package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/coravel-fit/report-engine/pkg/adapters"
	"github.com/coravel-fit/report-engine/pkg/models/api"
	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/export"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	service  reportsvc.Service
	exporter *export.Exporter
	validate *validator.Validate
}

func NewHandler(service reportsvc.Service, exporter *export.Exporter) *Handler {
	return &Handler{
		service:  service,
		exporter: exporter,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	var reportType *domain.ReportType
	if t := r.URL.Query().Get("type"); t != "" {
		rt := domain.ReportType(t)
		reportType = &rt
	}

	reports, total, err := h.service.List(ctx, page, limit, reportType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.ReportPage{
		Data:  adapters.MapReportsDomainToApi(reports),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateReportRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.service.Create(r.Context(), reportsvc.CreateParams{
		Type:        domain.ReportType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Filters:     req.Filters,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateReportRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.service.Generate(r.Context(), reportsvc.GenerateParams{
		Type:      domain.ReportType(req.Type),
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Filters:   req.Filters,
	})
	if err != nil {
		// A FAILED audit row was already written by the service; the caller
		// still gets the error.
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.Ack{Message: "report deleted"})
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.exporter.CSV(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write csv body")
	}
}

func (h *Handler) decode(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return fmt.Errorf("invalid request body: %w", domain.ErrValidation)
	}
	if err := h.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}
	return nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotGenerated):
		status = http.StatusPreconditionFailed
	}

	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

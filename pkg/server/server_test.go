package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coravel-fit/report-engine/pkg/models/api"
	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/export"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Create(ctx context.Context, params reportsvc.CreateParams) (domain.Report, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *mockReportService) Generate(ctx context.Context, params reportsvc.GenerateParams) (domain.Report, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *mockReportService) List(ctx context.Context, page, limit int, reportType *domain.ReportType) ([]domain.Report, int, error) {
	args := m.Called(ctx, page, limit, reportType)
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *mockReportService) Get(ctx context.Context, id string) (domain.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *mockReportService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type stubReportStore struct{}

func (stubReportStore) Create(_ context.Context, r domain.Report) (domain.Report, error) {
	return r, nil
}

func (stubReportStore) List(context.Context, int, int, *domain.ReportType) ([]domain.Report, int, error) {
	return nil, 0, nil
}

func (stubReportStore) Get(context.Context, string) (domain.Report, error) {
	return domain.Report{}, domain.ErrNotFound
}

func (stubReportStore) Delete(context.Context, string) error { return nil }

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	mockSvc := new(mockReportService)

	config := Config{
		Addr:       ":8080",
		AdminToken: "operator-token",
		Dependencies: Dependencies{
			Reports:  mockSvc,
			Exporter: export.NewExporter(stubReportStore{}),
		},
	}
	router := ConfigureRouter(logger, config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	get := func(path, token string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, testServer.URL+path, nil)
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("requests without the operator token are rejected", func(t *testing.T) {
		resp := get("/api/v1/reports", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"unauthorized"}`, string(body))

		mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		resp := get("/api/v1/reports", "guessed")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("list reports", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 1, 10, (*domain.ReportType)(nil)).
			Return([]domain.Report{{
				ID:     "r1",
				Type:   domain.ReportTypeAttendance,
				Status: domain.ReportStatusGenerated,
			}}, 1, nil).Once()

		resp := get("/api/v1/reports", "operator-token")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var page api.ReportPage
		require.NoError(t, json.Unmarshal(body, &page))
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "ATTENDANCE", page.Data[0].Type)
	})

	t.Run("missing export id maps to 404", func(t *testing.T) {
		resp := get("/api/v1/reports/missing/export/csv", "operator-token")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

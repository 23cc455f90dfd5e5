package generators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/services/report/aggregate"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

type fakeRecordStore struct {
	sessions  []domain.Session
	invoices  []domain.Invoice
	kids      []domain.Kid
	users     []domain.User
	locations []domain.Location
	err       error

	sessionQuery records.SessionQuery
	invoiceQuery records.InvoiceQuery
	kidQuery     records.KidQuery
	userQuery    records.UserQuery
}

func (f *fakeRecordStore) Sessions(_ context.Context, q records.SessionQuery) ([]domain.Session, error) {
	f.sessionQuery = q
	return f.sessions, f.err
}

func (f *fakeRecordStore) Invoices(_ context.Context, q records.InvoiceQuery) ([]domain.Invoice, error) {
	f.invoiceQuery = q
	return f.invoices, f.err
}

func (f *fakeRecordStore) ApprovedKids(_ context.Context, q records.KidQuery) ([]domain.Kid, error) {
	f.kidQuery = q
	return f.kids, f.err
}

func (f *fakeRecordStore) Users(_ context.Context, q records.UserQuery) ([]domain.User, error) {
	f.userQuery = q
	return f.users, f.err
}

func (f *fakeRecordStore) Locations(_ context.Context) ([]domain.Location, error) {
	return f.locations, f.err
}

func window(start, end time.Time) aggregate.Window {
	return aggregate.NewWindow(&start, &end)
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
}

func sessionsFixture(completed, cancelled, scheduled int) []domain.Session {
	sessions := make([]domain.Session, 0, completed+cancelled+scheduled)
	add := func(n int, status domain.SessionStatus) {
		for i := 0; i < n; i++ {
			sessions = append(sessions, domain.Session{
				ID:         string(status) + string(rune('0'+i)),
				Type:       "GROUP",
				Status:     status,
				Date:       day(10),
				LocationID: "loc1",
				CoachID:    "coach1",
			})
		}
	}
	add(completed, domain.SessionStatusCompleted)
	add(cancelled, domain.SessionStatusCancelled)
	add(scheduled, domain.SessionStatusScheduled)
	return sessions
}

func TestAttendanceGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("10 sessions, 6 completed, 2 cancelled, 2 scheduled", func(t *testing.T) {
		store := &fakeRecordStore{
			sessions:  sessionsFixture(6, 2, 2),
			locations: []domain.Location{{ID: "loc1", Name: "Main Gym"}},
		}
		g := NewAttendanceGenerator(store)

		result, err := g.Generate(ctx, window(day(1), day(31)), nil)
		require.NoError(t, err)

		assert.Equal(t, 10, result["totalSessions"])
		assert.Equal(t, 6, result["completedSessions"])
		assert.Equal(t, 2, result["cancelledSessions"])
		assert.Equal(t, 2, result["noShowSessions"])
		assert.Equal(t, 60.0, result["attendanceRate"])
		assert.Equal(t, map[string]any{"Main Gym": 10}, result["sessionsByLocation"])
	})

	t.Run("rate is zero for an empty window", func(t *testing.T) {
		store := &fakeRecordStore{sessions: sessionsFixture(6, 2, 2)}
		g := NewAttendanceGenerator(store)

		// Window well before any session.
		result, err := g.Generate(ctx, window(day(1).AddDate(-1, 0, 0), day(2).AddDate(-1, 0, 0)), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, result["totalSessions"])
		assert.Equal(t, 0.0, result["attendanceRate"])
	})

	t.Run("unknown location falls back", func(t *testing.T) {
		store := &fakeRecordStore{sessions: sessionsFixture(1, 0, 0)}
		g := NewAttendanceGenerator(store)

		result, err := g.Generate(ctx, aggregate.NewWindow(nil, nil), nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"Unknown": 1}, result["sessionsByLocation"])
	})

	t.Run("filters are passed through to the store", func(t *testing.T) {
		store := &fakeRecordStore{}
		g := NewAttendanceGenerator(store)

		_, err := g.Generate(ctx, aggregate.NewWindow(nil, nil),
			domain.Filters{"locationId": "loc1", "coachId": "coach1", "noise": 42})
		require.NoError(t, err)
		assert.Equal(t, records.SessionQuery{LocationID: "loc1", CoachID: "coach1"}, store.sessionQuery)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := &fakeRecordStore{err: errors.New("connection reset")}
		g := NewAttendanceGenerator(store)

		_, err := g.Generate(ctx, aggregate.NewWindow(nil, nil), nil)
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestFinancialGenerator(t *testing.T) {
	ctx := context.Background()
	paid := day(5)

	t.Run("status buckets stay disjoint", func(t *testing.T) {
		store := &fakeRecordStore{invoices: []domain.Invoice{
			{ID: "i1", Type: domain.InvoiceTypeParent, Status: domain.InvoiceStatusPaid, Amount: 150, CreatedAt: day(5), PaymentDate: &paid},
			{ID: "i2", Type: domain.InvoiceTypeParent, Status: domain.InvoiceStatusPending, Amount: 50, CreatedAt: day(6)},
		}}
		g := NewFinancialGenerator(store)

		result, err := g.Generate(ctx, window(day(1), day(31)), nil)
		require.NoError(t, err)

		assert.Equal(t, 150.0, result["totalRevenue"])
		assert.Equal(t, 50.0, result["pendingAmount"])
		assert.Equal(t, 0.0, result["overdueAmount"])
	})

	t.Run("paid revenue splits by invoice type", func(t *testing.T) {
		store := &fakeRecordStore{invoices: []domain.Invoice{
			{ID: "i1", Type: domain.InvoiceTypeParent, Status: domain.InvoiceStatusPaid, Amount: 100, CreatedAt: day(5), PaymentDate: &paid},
			{ID: "i2", Type: domain.InvoiceTypeCoachPayout, Status: domain.InvoiceStatusPaid, Amount: 40, CreatedAt: day(6), PaymentDate: &paid},
		}}
		g := NewFinancialGenerator(store)

		result, err := g.Generate(ctx, aggregate.NewWindow(nil, nil), nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"parentInvoices": 100.0, "coachPayouts": 40.0}, result["revenueByType"])
	})

	t.Run("payment trends are sorted by month", func(t *testing.T) {
		feb := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
		jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		store := &fakeRecordStore{invoices: []domain.Invoice{
			{ID: "i1", Status: domain.InvoiceStatusPaid, Amount: 30, CreatedAt: feb, PaymentDate: &feb},
			{ID: "i2", Status: domain.InvoiceStatusPaid, Amount: 10, CreatedAt: jan, PaymentDate: &jan},
			{ID: "i3", Status: domain.InvoiceStatusPaid, Amount: 20, CreatedAt: jan, PaymentDate: &jan},
		}}
		g := NewFinancialGenerator(store)

		result, err := g.Generate(ctx, aggregate.NewWindow(nil, nil), nil)
		require.NoError(t, err)

		trends, ok := result["paymentTrends"].([]any)
		require.True(t, ok)
		require.Len(t, trends, 2)
		assert.Equal(t, map[string]any{"month": "2025-01", "total": 30.0, "count": 2}, trends[0])
		assert.Equal(t, map[string]any{"month": "2025-02", "total": 30.0, "count": 1}, trends[1])
	})

	t.Run("invoices outside the window are ignored", func(t *testing.T) {
		store := &fakeRecordStore{invoices: []domain.Invoice{
			{ID: "i1", Status: domain.InvoiceStatusPaid, Amount: 150, CreatedAt: day(5), PaymentDate: &paid},
			{ID: "i2", Status: domain.InvoiceStatusPaid, Amount: 999, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		}}
		g := NewFinancialGenerator(store)

		result, err := g.Generate(ctx, window(day(1), day(31)), nil)
		require.NoError(t, err)
		assert.Equal(t, 150.0, result["totalRevenue"])
	})
}

func TestSessionSummaryGenerator(t *testing.T) {
	ctx := context.Background()

	sessions := sessionsFixture(2, 1, 0)
	sessions[0].IsFree = true
	store := &fakeRecordStore{
		sessions:  sessions,
		users:     []domain.User{{ID: "coach1", Name: "Dana", Email: "dana@club.fit", Role: "coach"}},
		locations: []domain.Location{{ID: "loc1", Name: "Main Gym"}},
	}
	g := NewSessionSummaryGenerator(store)

	result, err := g.Generate(ctx, window(day(1), day(31)), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result["totalSessions"])
	assert.Equal(t, 1, result["freeSessions"])
	assert.Equal(t, map[string]any{"COMPLETED": 2, "CANCELLED": 1}, result["sessionsByStatus"])
	assert.Equal(t, map[string]any{"Dana (dana@club.fit)": 3}, result["sessionsByCoach"])
	assert.Equal(t, map[string]any{"Main Gym": 3}, result["sessionsByLocation"])
}

func TestPerformanceGenerator(t *testing.T) {
	ctx := context.Background()

	store := &fakeRecordStore{kids: []domain.Kid{
		{ID: "k1", SessionType: "GROUP", Approved: true, Milestones: []string{"roll", "kick"}, Achievements: []string{"belt"}},
		{ID: "k2", SessionType: "PRIVATE", Approved: true, Milestones: []string{"roll"}},
		{ID: "k3", SessionType: "GROUP", Approved: true},
	}}
	g := NewPerformanceGenerator(store)

	result, err := g.Generate(ctx, aggregate.NewWindow(nil, nil), domain.Filters{"sessionType": "GROUP"})
	require.NoError(t, err)

	assert.Equal(t, records.KidQuery{SessionType: "GROUP"}, store.kidQuery)
	assert.Equal(t, 3, result["totalKids"])
	assert.Equal(t, 2, result["kidsWithMilestones"])
	assert.Equal(t, 1, result["kidsWithAchievements"])
	assert.Equal(t, 1.0, result["averageMilestones"])
	assert.Equal(t, 0.33, result["averageAchievements"])
	assert.Equal(t, map[string]any{"GROUP": 2, "PRIVATE": 1}, result["kidsBySessionType"])
}

func TestPerformanceGenerator_NoKids(t *testing.T) {
	g := NewPerformanceGenerator(&fakeRecordStore{})

	result, err := g.Generate(context.Background(), aggregate.NewWindow(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result["totalKids"])
	assert.Equal(t, 0.0, result["averageMilestones"])
	assert.Equal(t, 0.0, result["averageAchievements"])
}

func TestCustomGenerator(t *testing.T) {
	ctx := context.Background()

	store := &fakeRecordStore{
		sessions: sessionsFixture(1, 0, 1),
		invoices: []domain.Invoice{{ID: "i1", CreatedAt: day(5)}},
		users:    []domain.User{{ID: "u1", Role: "admin"}},
		kids:     []domain.Kid{{ID: "k1", Approved: true}},
	}
	g := NewCustomGenerator(store)

	t.Run("only requested sections are present", func(t *testing.T) {
		filters := domain.Filters{"includeSessions": true, "includeKids": true}
		result, err := g.Generate(ctx, window(day(1), day(31)), filters)
		require.NoError(t, err)

		assert.Equal(t, 2, result["totalSessions"])
		assert.Equal(t, 1, result["totalKids"])
		assert.NotContains(t, result, "totalInvoices")
		assert.NotContains(t, result, "totalUsers")
		assert.Equal(t, map[string]any(filters), result["filters"])
	})

	t.Run("user role filter applies", func(t *testing.T) {
		_, err := g.Generate(ctx, aggregate.NewWindow(nil, nil),
			domain.Filters{"includeUsers": true, "role": "admin"})
		require.NoError(t, err)
		assert.Equal(t, records.UserQuery{Role: "admin"}, store.userQuery)
	})

	t.Run("no flags yields only filters and date range", func(t *testing.T) {
		result, err := g.Generate(ctx, aggregate.NewWindow(nil, nil), domain.Filters{})
		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Contains(t, result, "filters")
		assert.Contains(t, result, "dateRange")
	})
}

func TestRegistry(t *testing.T) {
	registry := NewDefaultRegistry(&fakeRecordStore{})

	for _, reportType := range []domain.ReportType{
		domain.ReportTypeAttendance,
		domain.ReportTypeFinancial,
		domain.ReportTypeSessionSummary,
		domain.ReportTypePerformance,
		domain.ReportTypeCustom,
	} {
		g, err := registry.Get(reportType)
		require.NoError(t, err, reportType)
		assert.NotNil(t, g)
	}

	_, err := registry.Get("WEEKLY_DIGEST")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

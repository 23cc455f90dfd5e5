package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	"github.com/coravel-fit/report-engine/pkg/store/postgres"
)

// Store persists report snapshots. Rows are append-only: there is no update
// operation, re-generation always inserts a new row.
type Store interface {
	Create(ctx context.Context, report domain.Report) (domain.Report, error)
	List(ctx context.Context, page, limit int, reportType *domain.ReportType) ([]domain.Report, int, error)
	Get(ctx context.Context, id string) (domain.Report, error)
	Delete(ctx context.Context, id string) error
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

const insertQuery = `
	INSERT INTO reports (
		id, type, title, description, status, start_date, end_date,
		filters, data, generated_at, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)`

func (s *reportStore) Create(ctx context.Context, report domain.Report) (domain.Report, error) {
	now := time.Now().UTC()
	report.ID = uuid.NewString()
	report.CreatedAt = now
	report.UpdatedAt = now

	filters, err := json.Marshal(report.Filters)
	if err != nil {
		return domain.Report{}, fmt.Errorf("marshal filters: %w", err)
	}
	data, err := json.Marshal(report.Data)
	if err != nil {
		return domain.Report{}, fmt.Errorf("marshal data: %w", err)
	}

	tx := postgres.GetTransaction(ctx)
	var stmt *sql.Stmt
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, insertQuery)
	} else {
		stmt, err = tx.PrepareContext(ctx, insertQuery)
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		report.ID,
		report.Type,
		report.Title,
		report.Description,
		report.Status,
		report.StartDate,
		report.EndDate,
		filters,
		data,
		report.GeneratedAt,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return domain.Report{}, fmt.Errorf("insert report: %w", err)
	}

	return report, nil
}

const selectColumns = `
	id, type, title, description, status, start_date, end_date,
	filters, data, generated_at, created_at, updated_at`

func (s *reportStore) List(ctx context.Context, page, limit int, reportType *domain.ReportType) ([]domain.Report, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where := ""
	args := []any{}
	if reportType != nil {
		where = "WHERE type = $1"
		args = append(args, *reportType)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reports %s", where)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		selectColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports, err := scanReportRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *reportStore) Get(ctx context.Context, id string) (domain.Report, error) {
	query := fmt.Sprintf("SELECT %s FROM reports WHERE id = $1", selectColumns)

	report, err := scanReport(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return domain.Report{}, fmt.Errorf("report %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("get report: %w", err)
	}
	return report, nil
}

func (s *reportStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("report %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (domain.Report, error) {
	var (
		r           domain.Report
		description sql.NullString
		startDate   sql.NullTime
		endDate     sql.NullTime
		generatedAt sql.NullTime
		filters     []byte
		data        []byte
	)

	err := row.Scan(
		&r.ID, &r.Type, &r.Title, &description, &r.Status,
		&startDate, &endDate, &filters, &data, &generatedAt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return domain.Report{}, err
	}

	r.Description = description.String
	if startDate.Valid {
		t := startDate.Time
		r.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		r.EndDate = &t
	}
	if generatedAt.Valid {
		t := generatedAt.Time
		r.GeneratedAt = &t
	}
	if len(filters) > 0 {
		if err := json.Unmarshal(filters, &r.Filters); err != nil {
			return domain.Report{}, fmt.Errorf("unmarshal filters: %w", err)
		}
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.Data); err != nil {
			return domain.Report{}, fmt.Errorf("unmarshal data: %w", err)
		}
	}

	return r, nil
}

func scanReportRows(rows *sql.Rows) ([]domain.Report, error) {
	reports := make([]domain.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

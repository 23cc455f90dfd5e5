package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// ReportsTableSchema bootstraps the one table this engine owns. The
// operational tables (sessions, invoices, kids, users, locations) belong to
// the CRUD surface and are never created here.
const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY,
		type VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL,
		start_date TIMESTAMPTZ NULL,
		end_date TIMESTAMPTZ NULL,
		filters JSONB,
		data JSONB,
		generated_at TIMESTAMPTZ NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
`

const ReportsTypeIndex = `
	CREATE INDEX IF NOT EXISTS reports_type_created_at_idx
	ON reports (type, created_at DESC);
`

var bootQueries = []string{
	ReportsTableSchema,
	ReportsTypeIndex,
}

type Settings struct {
	DSN string
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("postgres", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply boot query: %w", err)
		}
	}

	return db, nil
}

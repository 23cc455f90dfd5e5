package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
)

// SessionQuery narrows a session scan. Zero fields apply no restriction;
// windowing happens in the generators, not here.
type SessionQuery struct {
	LocationID string
	CoachID    string
}

type InvoiceQuery struct {
	ParentID string
	CoachID  string
	Type     string
}

type KidQuery struct {
	SessionType string
}

type UserQuery struct {
	Role string
}

// Store gives read-only access to the operational tables owned by the CRUD
// surface. Generators never write through it.
type Store interface {
	Sessions(ctx context.Context, q SessionQuery) ([]domain.Session, error)
	Invoices(ctx context.Context, q InvoiceQuery) ([]domain.Invoice, error)
	ApprovedKids(ctx context.Context, q KidQuery) ([]domain.Kid, error)
	Users(ctx context.Context, q UserQuery) ([]domain.User, error)
	Locations(ctx context.Context) ([]domain.Location, error)
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{db: db}, nil
}

func (s *recordStore) Sessions(ctx context.Context, q SessionQuery) ([]domain.Session, error) {
	query := `
		SELECT id, type, status, date, location_id, coach_id, is_free
		FROM sessions`
	where, args := buildWhere(map[string]string{
		"location_id": q.LocationID,
		"coach_id":    q.CoachID,
	})
	rows, err := s.db.QueryContext(ctx, query+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var sess domain.Session
		err := rows.Scan(&sess.ID, &sess.Type, &sess.Status, &sess.Date,
			&sess.LocationID, &sess.CoachID, &sess.IsFree)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *recordStore) Invoices(ctx context.Context, q InvoiceQuery) ([]domain.Invoice, error) {
	query := `
		SELECT id, type, status, amount, parent_id, coach_id, created_at, payment_date
		FROM invoices`
	where, args := buildWhere(map[string]string{
		"parent_id": q.ParentID,
		"coach_id":  q.CoachID,
		"type":      q.Type,
	})
	rows, err := s.db.QueryContext(ctx, query+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var (
			inv         domain.Invoice
			paymentDate sql.NullTime
		)
		err := rows.Scan(&inv.ID, &inv.Type, &inv.Status, &inv.Amount,
			&inv.ParentID, &inv.CoachID, &inv.CreatedAt, &paymentDate)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if paymentDate.Valid {
			t := paymentDate.Time
			inv.PaymentDate = &t
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *recordStore) ApprovedKids(ctx context.Context, q KidQuery) ([]domain.Kid, error) {
	query := `
		SELECT id, session_type, approved, milestones, achievements
		FROM kids
		WHERE approved = TRUE`
	args := []any{}
	if q.SessionType != "" {
		query += " AND session_type = $1"
		args = append(args, q.SessionType)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query kids: %w", err)
	}
	defer rows.Close()

	kids := make([]domain.Kid, 0)
	for rows.Next() {
		var kid domain.Kid
		err := rows.Scan(&kid.ID, &kid.SessionType, &kid.Approved,
			pq.Array(&kid.Milestones), pq.Array(&kid.Achievements))
		if err != nil {
			return nil, fmt.Errorf("scan kid: %w", err)
		}
		kids = append(kids, kid)
	}
	return kids, rows.Err()
}

func (s *recordStore) Users(ctx context.Context, q UserQuery) ([]domain.User, error) {
	query := `
		SELECT id, name, email, role
		FROM users`
	where, args := buildWhere(map[string]string{"role": q.Role})

	rows, err := s.db.QueryContext(ctx, query+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *recordStore) Locations(ctx context.Context) ([]domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM locations")
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// buildWhere assembles an equality-only WHERE clause from the non-empty
// columns, keeping the iteration order stable for predictable SQL.
func buildWhere(columns map[string]string) (string, []any) {
	ordered := []string{"location_id", "coach_id", "parent_id", "type", "role"}

	clause := ""
	args := []any{}
	for _, col := range ordered {
		value, ok := columns[col]
		if !ok || value == "" {
			continue
		}
		if clause == "" {
			clause = " WHERE "
		} else {
			clause += " AND "
		}
		clause += fmt.Sprintf("%s = $%d", col, len(args)+1)
		args = append(args, value)
	}
	return clause, args
}

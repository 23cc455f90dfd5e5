package domain

import "time"

// Operational records read by the generators. These tables are owned by the
// CRUD surface; the engine only ever reads them.

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

type Session struct {
	ID         string
	Type       string
	Status     SessionStatus
	Date       time.Time
	LocationID string
	CoachID    string
	IsFree     bool
}

type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

type InvoiceType string

const (
	InvoiceTypeParent      InvoiceType = "PARENT_INVOICE"
	InvoiceTypeCoachPayout InvoiceType = "COACH_PAYOUT"
)

type Invoice struct {
	ID          string
	Type        InvoiceType
	Status      InvoiceStatus
	Amount      float64
	ParentID    string
	CoachID     string
	CreatedAt   time.Time
	PaymentDate *time.Time
}

type Kid struct {
	ID           string
	SessionType  string
	Approved     bool
	Milestones   []string
	Achievements []string
}

type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type Location struct {
	ID   string
	Name string
}

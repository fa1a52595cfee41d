package invoices

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses. An invoice starts as a draft, is approved into PENDING,
// and is then paid or cancelled. The background overdue scan moves PENDING
// invoices past their due date to OVERDUE; payment is still possible from
// there.
const (
	StatusDraft     = "DRAFT"
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusOverdue   = "OVERDUE"
	StatusCancelled = "CANCELLED"
)

// Invoice is a receivable issued to a client.
type Invoice struct {
	ID         uuid.UUID  `json:"id"`
	ClientID   uuid.UUID  `json:"client_id"`
	ClientName string     `json:"client_name,omitempty"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

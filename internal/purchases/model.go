package purchases

import (
	"time"

	"github.com/google/uuid"
)

// Purchase statuses. Purchases are recorded as PENDING and wait for an
// approver's decision.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Purchase is an outgoing expense awaiting approval.
type Purchase struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

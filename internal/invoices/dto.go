package invoices

import (
	"time"

	"github.com/google/uuid"
)

type CreateInvoiceRequest struct {
	ClientID uuid.UUID  `json:"client_id" validate:"required"`
	Amount   float64    `json:"amount" validate:"required,gt=0"`
	DueAt    *time.Time `json:"due_at,omitempty"`
}

type UpdateInvoiceRequest struct {
	Amount *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	DueAt  *time.Time `json:"due_at,omitempty"`
}

type ListInvoicesRequest struct {
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Limit    int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset   int        `json:"offset" validate:"gte=0"`
}

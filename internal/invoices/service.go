package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Service wraps invoice business rules, including the status lifecycle.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new draft invoice.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	inv := Invoice{
		ID:       uuid.New(),
		ClientID: req.ClientID,
		Amount:   req.Amount,
		Status:   StatusDraft,
		DueAt:    req.DueAt,
	}
	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return created, nil
}

// Update changes amount or due date. Only drafts are editable; approved
// invoices are immutable apart from status transitions.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be edited", shared.ErrValidation)
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.DueAt != nil {
		existing.DueAt = req.DueAt
	}
	return s.repo.Update(ctx, *existing)
}

// Approve moves a draft into the receivable pipeline.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.SetStatus(ctx, id, []string{StatusDraft}, StatusPending)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: only draft invoices can be approved", shared.ErrValidation)
		}
		return nil, err
	}
	return inv, nil
}

// Pay settles a pending or overdue invoice.
func (s *Service) Pay(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.SetStatus(ctx, id, []string{StatusPending, StatusOverdue}, StatusPaid)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: invoice is not payable", shared.ErrValidation)
		}
		return nil, err
	}
	return inv, nil
}

// Cancel voids an invoice in any state except paid.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.SetStatus(ctx, id,
		[]string{StatusDraft, StatusPending, StatusOverdue}, StatusCancelled)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: paid invoices cannot be cancelled", shared.ErrValidation)
		}
		return nil, err
	}
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// MarkOverdue runs the overdue sweep as of the given instant.
func (s *Service) MarkOverdue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	return s.repo.MarkOverdue(ctx, asOf)
}

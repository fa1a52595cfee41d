package purchases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Service wraps purchase business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	return s.repo.Get(ctx, id)
}

// Create records a new pending purchase.
func (s *Service) Create(ctx context.Context, req CreatePurchaseRequest) (*Purchase, error) {
	p := Purchase{
		ID:          uuid.New(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Status:      StatusPending,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}
	return created, nil
}

// Approve settles a pending purchase. Decisions are final: approved and
// rejected purchases cannot change state again.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	p, err := s.repo.SetStatus(ctx, id, StatusPending, StatusApproved)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: only pending purchases can be approved", shared.ErrValidation)
		}
		return nil, err
	}
	return p, nil
}

// Reject declines a pending purchase.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	p, err := s.repo.SetStatus(ctx, id, StatusPending, StatusRejected)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			return nil, fmt.Errorf("%w: only pending purchases can be rejected", shared.ErrValidation)
		}
		return nil, err
	}
	return p, nil
}

package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type mockRepo struct {
	purchases map[uuid.UUID]*Purchase
}

func newMockRepo() *mockRepo {
	return &mockRepo{purchases: map[uuid.UUID]*Purchase{}}
}

func (m *mockRepo) List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error) {
	var out []Purchase
	for _, p := range m.purchases {
		if req.Status != nil && p.Status != *req.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	p, ok := m.purchases[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepo) Create(ctx context.Context, p Purchase) (*Purchase, error) {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.purchases[p.ID] = &p
	copied := p
	return &copied, nil
}

func (m *mockRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to string) (*Purchase, error) {
	p, ok := m.purchases[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if p.Status != from {
		return nil, shared.ErrValidation
	}
	p.Status = to
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func seedPurchase(t *testing.T, svc *Service) *Purchase {
	t.Helper()
	p, err := svc.Create(context.Background(), CreatePurchaseRequest{
		Description: "  Office chairs ",
		Amount:      499.90,
	})
	require.NoError(t, err)
	return p
}

func TestCreateStartsPending(t *testing.T) {
	svc := NewService(newMockRepo())
	p := seedPurchase(t, svc)
	require.Equal(t, StatusPending, p.Status)
	require.Equal(t, "Office chairs", p.Description)
}

func TestApprovePending(t *testing.T) {
	svc := NewService(newMockRepo())
	p := seedPurchase(t, svc)

	approved, err := svc.Approve(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)
}

func TestRejectPending(t *testing.T) {
	svc := NewService(newMockRepo())
	p := seedPurchase(t, svc)

	rejected, err := svc.Reject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, rejected.Status)
}

func TestDecisionsAreFinal(t *testing.T) {
	svc := NewService(newMockRepo())

	approved := seedPurchase(t, svc)
	_, err := svc.Approve(context.Background(), approved.ID)
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), approved.ID)
	require.ErrorIs(t, err, shared.ErrValidation)
	_, err = svc.Approve(context.Background(), approved.ID)
	require.ErrorIs(t, err, shared.ErrValidation)

	rejected := seedPurchase(t, svc)
	_, err = svc.Reject(context.Background(), rejected.ID)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), rejected.ID)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestApproveUnknownPurchase(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Approve(context.Background(), uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

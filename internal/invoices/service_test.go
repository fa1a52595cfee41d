package invoices

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type mockRepo struct {
	invoices map[uuid.UUID]*Invoice
}

func newMockRepo() *mockRepo {
	return &mockRepo{invoices: map[uuid.UUID]*Invoice{}}
}

func (m *mockRepo) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		if req.Status != nil && inv.Status != *req.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (m *mockRepo) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	m.invoices[inv.ID] = &inv
	copied := inv
	return &copied, nil
}

func (m *mockRepo) Update(ctx context.Context, inv Invoice) (*Invoice, error) {
	if _, ok := m.invoices[inv.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	inv.UpdatedAt = time.Now()
	m.invoices[inv.ID] = &inv
	copied := inv
	return &copied, nil
}

func (m *mockRepo) SetStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if !slices.Contains(from, inv.Status) {
		return nil, shared.ErrValidation
	}
	inv.Status = to
	inv.UpdatedAt = time.Now()
	copied := *inv
	return &copied, nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.invoices[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *mockRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, inv := range m.invoices {
		if inv.Status == StatusPending && inv.DueAt != nil && inv.DueAt.Before(asOf) {
			inv.Status = StatusOverdue
			ids = append(ids, inv.ID)
		}
	}
	return ids, nil
}

func seedInvoice(t *testing.T, svc *Service, due *time.Time) *Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: uuid.New(),
		Amount:   150.00,
		DueAt:    due,
	})
	require.NoError(t, err)
	return inv
}

func TestCreateStartsAsDraft(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := seedInvoice(t, svc, nil)
	require.Equal(t, StatusDraft, inv.Status)
}

func TestLifecycleDraftToPaid(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := seedInvoice(t, svc, nil)

	approved, err := svc.Approve(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, approved.Status)

	paid, err := svc.Pay(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, paid.Status)
}

func TestOnlyDraftsAreEditable(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := seedInvoice(t, svc, nil)

	amount := 200.00
	_, err := svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{Amount: &amount})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), inv.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{Amount: &amount})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestApproveRequiresDraft(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := seedInvoice(t, svc, nil)

	_, err := svc.Approve(context.Background(), inv.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), inv.ID)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestPayRequiresPendingOrOverdue(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := seedInvoice(t, svc, nil)

	_, err := svc.Pay(context.Background(), inv.ID)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestPaidInvoicesCannotBeCancelled(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := seedInvoice(t, svc, nil)

	_, err := svc.Approve(context.Background(), inv.ID)
	require.NoError(t, err)
	_, err = svc.Pay(context.Background(), inv.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), inv.ID)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestOverdueSweepMovesPendingPastDue(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	now := time.Now()

	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	late := seedInvoice(t, svc, &past)
	onTime := seedInvoice(t, svc, &future)
	draft := seedInvoice(t, svc, &past)

	for _, id := range []uuid.UUID{late.ID, onTime.ID} {
		_, err := svc.Approve(context.Background(), id)
		require.NoError(t, err)
	}

	ids, err := svc.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{late.ID}, ids)

	got, err := svc.Get(context.Background(), late.ID)
	require.NoError(t, err)
	require.Equal(t, StatusOverdue, got.Status)

	// Drafts past due are untouched; the sweep only looks at pending.
	got, err = svc.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Equal(t, StatusDraft, got.Status)
}

func TestOverdueInvoiceIsStillPayable(t *testing.T) {
	svc := NewService(newMockRepo())
	now := time.Now()
	past := now.Add(-time.Hour)

	inv := seedInvoice(t, svc, &past)
	_, err := svc.Approve(context.Background(), inv.ID)
	require.NoError(t, err)

	_, err = svc.MarkOverdue(context.Background(), now)
	require.NoError(t, err)

	paid, err := svc.Pay(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, paid.Status)
}

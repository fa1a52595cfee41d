package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/invoices"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubInvoiceRepo struct {
	markedAsOf time.Time
	marked     []uuid.UUID
}

func (s *stubInvoiceRepo) List(ctx context.Context, req invoices.ListInvoicesRequest) ([]invoices.Invoice, int, error) {
	return nil, 0, nil
}

func (s *stubInvoiceRepo) Get(ctx context.Context, id uuid.UUID) (*invoices.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) Create(ctx context.Context, inv invoices.Invoice) (*invoices.Invoice, error) {
	return &inv, nil
}

func (s *stubInvoiceRepo) Update(ctx context.Context, inv invoices.Invoice) (*invoices.Invoice, error) {
	return &inv, nil
}

func (s *stubInvoiceRepo) SetStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*invoices.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubInvoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	s.markedAsOf = asOf
	return s.marked, nil
}

func TestOverdueScanHandlerUsesPayloadInstant(t *testing.T) {
	repo := &stubInvoiceRepo{marked: []uuid.UUID{uuid.New()}}
	handler := NewOverdueScanHandler(invoices.NewService(repo), slog.Default(), nil)

	asOf := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewOverdueScanTask(OverdueScanPayload{AsOf: asOf})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, asOf, repo.markedAsOf)
}

func TestOverdueScanHandlerDefaultsToNow(t *testing.T) {
	repo := &stubInvoiceRepo{}
	handler := NewOverdueScanHandler(invoices.NewService(repo), slog.Default(), nil)

	task, err := NewOverdueScanTask(OverdueScanPayload{})
	require.NoError(t, err)

	before := time.Now().UTC()
	require.NoError(t, handler(context.Background(), task))
	require.False(t, repo.markedAsOf.Before(before))
}

func TestOverdueScanHandlerRejectsMalformedPayload(t *testing.T) {
	repo := &stubInvoiceRepo{}
	handler := NewOverdueScanHandler(invoices.NewService(repo), slog.Default(), nil)

	task := asynq.NewTask(TaskInvoicesOverdueScan, []byte("{not json"))
	require.Error(t, handler(context.Background(), task))
	require.True(t, repo.markedAsOf.IsZero())
}

func TestOverdueScanTaskRoundTrip(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewOverdueScanTask(OverdueScanPayload{AsOf: asOf})
	require.NoError(t, err)
	require.Equal(t, TaskInvoicesOverdueScan, task.Type())

	var decoded OverdueScanPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	require.Equal(t, asOf, decoded.AsOf)
}

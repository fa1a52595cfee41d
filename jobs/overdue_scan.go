package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/invoices"
	jobmetrics "github.com/meridian-erp/meridian-erp/internal/jobs"
)

// NewOverdueScanHandler returns the Asynq handler for the overdue invoice
// sweep. metrics may be nil.
func NewOverdueScanHandler(svc *invoices.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		tracker := metrics.Track(TaskInvoicesOverdueScan)
		var payload OverdueScanPayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &payload); err != nil {
				return tracker.End(fmt.Errorf("decode overdue scan payload: %w", err))
			}
		}
		asOf := payload.AsOf
		if asOf.IsZero() {
			asOf = time.Now().UTC()
		}
		ids, err := svc.MarkOverdue(ctx, asOf)
		if err != nil {
			logger.Error("overdue scan", slog.Any("error", err))
			return tracker.End(err)
		}
		if len(ids) > 0 {
			metrics.AddOverdueInvoices(len(ids))
			logger.Info("invoices marked overdue",
				slog.Int("count", len(ids)),
				slog.Time("as_of", asOf))
		}
		return tracker.End(nil)
	}
}

package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInvoicesOverdueScan moves pending invoices past their due date to
	// OVERDUE.
	TaskInvoicesOverdueScan = "invoices:overdue_scan"
)

// OverdueScanPayload carries the reference instant for the sweep. A zero AsOf
// means "now" at processing time.
type OverdueScanPayload struct {
	AsOf time.Time `json:"as_of,omitempty"`
}

// NewOverdueScanTask constructs the overdue-scan task.
func NewOverdueScanTask(payload OverdueScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoicesOverdueScan, data), nil
}

package invoices

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/platform/db"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Repository defines persistence for invoices.
type Repository interface {
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Create(ctx context.Context, inv Invoice) (*Invoice, error)
	Update(ctx context.Context, inv Invoice) (*Invoice, error)
	SetStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkOverdue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectInvoice = `
	SELECT i.id, i.client_id, c.name, i.amount, i.status, i.due_at, i.created_at, i.updated_at
	FROM invoices i
	JOIN clients c ON c.id = i.client_id`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.ClientID, &inv.ClientName, &inv.Amount, &inv.Status,
		&inv.DueAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	var clientID *uuid.UUID
	if req.ClientID != nil {
		clientID = req.ClientID
	}
	var status *string
	if req.Status != nil {
		status = req.Status
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM invoices i
		 WHERE ($1::uuid IS NULL OR i.client_id = $1)
		   AND ($2::text IS NULL OR i.status = $2)`, clientID, status).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, selectInvoice+`
		 WHERE ($1::uuid IS NULL OR i.client_id = $1)
		   AND ($2::text IS NULL OR i.status = $2)
		 ORDER BY i.created_at DESC
		 LIMIT $3 OFFSET $4`, clientID, status, limit, req.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.ClientName, &inv.Amount, &inv.Status,
			&inv.DueAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, selectInvoice+` WHERE i.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO invoices (id, client_id, amount, status, due_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.ClientID, inv.Amount, inv.Status, inv.DueAt)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, inv.ID)
}

func (r *repository) Update(ctx context.Context, inv Invoice) (*Invoice, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET amount = $2, due_at = $3, updated_at = now() WHERE id = $1`,
		inv.ID, inv.Amount, inv.DueAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.ErrNotFound
	}
	return r.Get(ctx, inv.ID)
}

// SetStatus transitions an invoice to the target status, guarded by the
// allowed source statuses. The guarded update and the disambiguating read
// run in one transaction so a concurrent transition cannot slip between
// them. A zero-row update means the invoice was missing or in a disallowed
// state.
func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*Invoice, error) {
	var inv *Invoice
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE invoices SET status = $3, updated_at = now()
			 WHERE id = $1 AND status = ANY($2)`, id, from, to)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return shared.ErrNotFound
			}
			return shared.ErrValidation
		}
		inv, err = scanInvoice(tx.QueryRow(ctx, selectInvoice+` WHERE i.id = $1`, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MarkOverdue flips every PENDING invoice past its due date to OVERDUE and
// returns the affected IDs. Used by the background scan.
func (r *repository) MarkOverdue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE invoices SET status = $1, updated_at = now()
		 WHERE status = $2 AND due_at IS NOT NULL AND due_at < $3
		 RETURNING id`, StatusOverdue, StatusPending, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

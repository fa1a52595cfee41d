package purchases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Repository defines persistence for purchases.
type Repository interface {
	List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Purchase, error)
	Create(ctx context.Context, p Purchase) (*Purchase, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, to string) (*Purchase, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, req ListPurchasesRequest) ([]Purchase, int, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	var status *string
	if req.Status != nil {
		status = req.Status
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM purchases WHERE ($1::text IS NULL OR status = $1)`, status).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, description, amount, status, created_at, updated_at
		 FROM purchases
		 WHERE ($1::text IS NULL OR status = $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, status, limit, req.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.Description, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	var p Purchase
	err := r.pool.QueryRow(ctx,
		`SELECT id, description, amount, status, created_at, updated_at
		 FROM purchases WHERE id = $1`, id).
		Scan(&p.ID, &p.Description, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Purchase) (*Purchase, error) {
	var created Purchase
	err := r.pool.QueryRow(ctx,
		`INSERT INTO purchases (id, description, amount, status) VALUES ($1, $2, $3, $4)
		 RETURNING id, description, amount, status, created_at, updated_at`,
		p.ID, p.Description, p.Amount, p.Status).
		Scan(&created.ID, &created.Description, &created.Amount, &created.Status,
			&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// SetStatus transitions a purchase, guarded by the expected source status.
func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, from, to string) (*Purchase, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE purchases SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, shared.ErrValidation
	}
	return r.Get(ctx, id)
}

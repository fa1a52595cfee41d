package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Repository defines persistence for clients.
type Repository interface {
	List(ctx context.Context, req ListClientsRequest) ([]Client, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	Create(ctx context.Context, client Client) (*Client, error)
	Update(ctx context.Context, client Client) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const foreignKeyViolation = "23503"

func (r *repository) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	search := ""
	if req.Search != nil {
		search = *req.Search
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM clients WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`, search).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, tax_id, email, created_at, updated_at
		 FROM clients
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		 ORDER BY name
		 LIMIT $2 OFFSET $3`, search, limit, req.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, tax_id, email, created_at, updated_at FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, client Client) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx,
		`INSERT INTO clients (id, name, tax_id, email) VALUES ($1, $2, $3, $4)
		 RETURNING id, name, tax_id, email, created_at, updated_at`,
		client.ID, client.Name, client.TaxID, client.Email).
		Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, client Client) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx,
		`UPDATE clients SET name = $2, tax_id = $3, email = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, tax_id, email, created_at, updated_at`,
		client.ID, client.Name, client.TaxID, client.Email).
		Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a client. Clients referenced by invoices cannot be removed;
// the FK violation surfaces as a conflict.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: client has invoices", shared.ErrAlreadyExists)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

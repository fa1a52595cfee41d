package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const uniqueViolation = "23505"

func (r *PGRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachRoles(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	slice := []User{u}
	if err := r.attachRoles(ctx, slice); err != nil {
		return nil, err
	}
	return &slice[0], nil
}

func (r *PGRepository) Create(ctx context.Context, u *User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		u.ID, u.Email, u.Name, u.PasswordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *PGRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET name = $2, updated_at = now()
		WHERE id = $1`, id, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// attachRoles fills Roles (with permission slugs) for the given users in two
// queries regardless of how many users are being listed.
func (r *PGRepository) attachRoles(ctx context.Context, users []User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(users))
	index := make(map[uuid.UUID]int, len(users))
	for i := range users {
		users[i].Roles = []rbac.Role{}
		ids = append(ids, users[i].ID)
		index[users[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ur.user_id, r.id, r.name, r.created_at, r.updated_at, p.slug
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE ur.user_id = ANY($1)
		ORDER BY ur.user_id, r.name, p.slug`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	type key struct {
		user uuid.UUID
		role int64
	}
	seen := make(map[key]int)
	for rows.Next() {
		var (
			userID uuid.UUID
			role   rbac.Role
			slug   *string
		)
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt, &slug); err != nil {
			return err
		}
		i, ok := index[userID]
		if !ok {
			continue
		}
		k := key{user: userID, role: role.ID}
		j, ok := seen[k]
		if !ok {
			role.Permissions = []rbac.Permission{}
			users[i].Roles = append(users[i].Roles, role)
			j = len(users[i].Roles) - 1
			seen[k] = j
		}
		if slug != nil {
			users[i].Roles[j].Permissions = append(users[i].Roles[j].Permissions, rbac.Permission{Slug: *slug})
		}
	}
	return rows.Err()
}

package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	// FindByEmailWithPermissions fetches a user by normalized email with the
	// full two-level join loaded: roles and each role's permissions. Login
	// needs both levels so the resolver sees the complete graph.
	FindByEmailWithPermissions(ctx context.Context, email string) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmailWithPermissions fetches the user row, then the role/permission
// graph in a single joined query. Emails are stored lower-cased, so the
// lookup is an exact match on the normalized value.
func (r *PGRepository) FindByEmailWithPermissions(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.name, r.created_at, r.updated_at, p.id, p.slug, p.description
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 LEFT JOIN role_permissions rp ON rp.role_id = r.id
		 LEFT JOIN permissions p ON p.id = rp.permission_id
		 WHERE ur.user_id = $1
		 ORDER BY r.name, p.slug`, user.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*rbac.Role)
	var order []int64
	for rows.Next() {
		var role rbac.Role
		var permID *int64
		var permSlug, permDesc *string
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt,
			&permID, &permSlug, &permDesc); err != nil {
			return nil, err
		}
		existing, ok := byID[role.ID]
		if !ok {
			byID[role.ID] = &role
			order = append(order, role.ID)
			existing = &role
		}
		if permID != nil {
			existing.Permissions = append(existing.Permissions, rbac.Permission{
				ID:          *permID,
				Slug:        *permSlug,
				Description: *permDesc,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	user.Roles = make([]rbac.Role, 0, len(order))
	for _, id := range order {
		user.Roles = append(user.Roles, *byID[id])
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)

package rbac

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Service orchestrates administration of the role-permission graph.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles ordered by name.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole fetches a role with its permissions.
func (s *Service) GetRole(ctx context.Context, id int64) (Role, error) {
	return s.repo.GetRole(ctx, id)
}

// CreateRole inserts a new role with a unique name.
func (s *Service) CreateRole(ctx context.Context, name string) (Role, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrValidation)
	}
	return s.repo.CreateRole(ctx, name)
}

// UpdateRole renames an existing role.
func (s *Service) UpdateRole(ctx context.Context, id int64, name string) (Role, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrValidation)
	}
	return s.repo.UpdateRole(ctx, id, name)
}

// DeleteRole removes a role. Users holding only this role are left with an
// empty permission set; already-issued tokens are unaffected until expiry.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	return s.repo.DeleteRole(ctx, id)
}

// ListPermissions returns the persisted permission catalog.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// SetRolePermissions replaces a role's permission set with the given slugs.
// Every slug must be a member of the closed catalog.
func (s *Service) SetRolePermissions(ctx context.Context, roleID int64, slugs []string) error {
	for _, slug := range slugs {
		if !Known(slug) {
			return fmt.Errorf("%w: unknown permission %q", shared.ErrValidation, slug)
		}
	}
	if _, err := s.repo.GetRole(ctx, roleID); err != nil {
		return err
	}

	all, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return err
	}
	bySlug := make(map[string]int64, len(all))
	for _, p := range all {
		bySlug[p.Slug] = p.ID
	}

	current, err := s.repo.RolePermissions(ctx, roleID)
	if err != nil {
		return err
	}
	existing := make(map[int64]struct{}, len(current))
	for _, p := range current {
		existing[p.ID] = struct{}{}
	}

	keep := make(map[int64]struct{}, len(slugs))
	for _, slug := range slugs {
		id, ok := bySlug[slug]
		if !ok {
			return fmt.Errorf("%w: permission %q not seeded", shared.ErrValidation, slug)
		}
		keep[id] = struct{}{}
		if _, ok := existing[id]; !ok {
			if err := s.repo.AttachPermission(ctx, roleID, id); err != nil {
				return err
			}
		}
	}
	for id := range existing {
		if _, ok := keep[id]; !ok {
			if err := s.repo.DetachPermission(ctx, roleID, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssignRole assigns a role to a user.
func (s *Service) AssignRole(ctx context.Context, userID uuid.UUID, roleID int64) error {
	if _, err := s.repo.GetRole(ctx, roleID); err != nil {
		return err
	}
	return s.repo.AssignRoleToUser(ctx, userID, roleID)
}

// RemoveRole removes a role from a user.
func (s *Service) RemoveRole(ctx context.Context, userID uuid.UUID, roleID int64) error {
	return s.repo.RemoveRoleFromUser(ctx, userID, roleID)
}

package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type mockRepo struct {
	roles       map[int64]*Role
	permissions map[string]Permission
	rolePerms   map[int64]map[int64]struct{}
	userRoles   map[uuid.UUID]map[int64]struct{}
	nextRoleID  int64
	nextPermID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		roles:       make(map[int64]*Role),
		permissions: make(map[string]Permission),
		rolePerms:   make(map[int64]map[int64]struct{}),
		userRoles:   make(map[uuid.UUID]map[int64]struct{}),
		nextRoleID:  1,
		nextPermID:  1,
	}
}

func (m *mockRepo) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	for _, r := range m.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRepo) GetRole(ctx context.Context, id int64) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	role := *r
	perms, _ := m.RolePermissions(ctx, id)
	role.Permissions = perms
	return role, nil
}

func (m *mockRepo) GetRoleByName(ctx context.Context, name string) (Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return *r, nil
		}
	}
	return Role{}, shared.ErrNotFound
}

func (m *mockRepo) CreateRole(ctx context.Context, name string) (Role, error) {
	if _, err := m.GetRoleByName(ctx, name); err == nil {
		return Role{}, shared.ErrAlreadyExists
	}
	role := Role{ID: m.nextRoleID, Name: name}
	m.roles[role.ID] = &role
	m.rolePerms[role.ID] = make(map[int64]struct{})
	m.nextRoleID++
	return role, nil
}

func (m *mockRepo) UpdateRole(ctx context.Context, id int64, name string) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	r.Name = name
	return *r, nil
}

func (m *mockRepo) DeleteRole(ctx context.Context, id int64) error {
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.roles, id)
	delete(m.rolePerms, id)
	for _, assigned := range m.userRoles {
		delete(assigned, id)
	}
	return nil
}

func (m *mockRepo) ListPermissions(ctx context.Context) ([]Permission, error) {
	var out []Permission
	for _, p := range m.permissions {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepo) EnsurePermission(ctx context.Context, slug, description string) (Permission, error) {
	if p, ok := m.permissions[slug]; ok {
		p.Description = description
		m.permissions[slug] = p
		return p, nil
	}
	p := Permission{ID: m.nextPermID, Slug: slug, Description: description}
	m.permissions[slug] = p
	m.nextPermID++
	return p, nil
}

func (m *mockRepo) RolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	var out []Permission
	for _, p := range m.permissions {
		if _, ok := m.rolePerms[roleID][p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) AttachPermission(ctx context.Context, roleID, permissionID int64) error {
	m.rolePerms[roleID][permissionID] = struct{}{}
	return nil
}

func (m *mockRepo) DetachPermission(ctx context.Context, roleID, permissionID int64) error {
	delete(m.rolePerms[roleID], permissionID)
	return nil
}

func (m *mockRepo) AssignRoleToUser(ctx context.Context, userID uuid.UUID, roleID int64) error {
	if m.userRoles[userID] == nil {
		m.userRoles[userID] = make(map[int64]struct{})
	}
	m.userRoles[userID][roleID] = struct{}{}
	return nil
}

func (m *mockRepo) RemoveRoleFromUser(ctx context.Context, userID uuid.UUID, roleID int64) error {
	delete(m.userRoles[userID], roleID)
	return nil
}

var _ Repository = (*mockRepo)(nil)

func seedCatalog(t *testing.T, repo *mockRepo) {
	t.Helper()
	for _, entry := range Catalog() {
		_, err := repo.EnsurePermission(context.Background(), entry.Slug, entry.Description)
		require.NoError(t, err)
	}
}

func TestCreateRoleNormalizesAndValidatesName(t *testing.T) {
	svc := NewService(newMockRepo())

	role, err := svc.CreateRole(context.Background(), "  Manager ")
	require.NoError(t, err)
	assert.Equal(t, "manager", role.Name)

	_, err = svc.CreateRole(context.Background(), "   ")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.CreateRole(context.Background(), "admin")
	require.NoError(t, err)
	_, err = svc.CreateRole(context.Background(), "admin")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestSetRolePermissionsReplacesSet(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(t, repo)
	svc := NewService(repo)

	role, err := svc.CreateRole(context.Background(), "sales")
	require.NoError(t, err)

	require.NoError(t, svc.SetRolePermissions(context.Background(), role.ID,
		[]string{PermClientsRead, PermInvoicesRead}))

	loaded, err := svc.GetRole(context.Background(), role.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{PermClientsRead, PermInvoicesRead},
		EffectivePermissions([]Role{loaded}))

	// Replacement detaches what is no longer listed.
	require.NoError(t, svc.SetRolePermissions(context.Background(), role.ID,
		[]string{PermInvoicesRead, PermInvoicesApprove}))

	loaded, err = svc.GetRole(context.Background(), role.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{PermInvoicesRead, PermInvoicesApprove},
		EffectivePermissions([]Role{loaded}))
}

func TestSetRolePermissionsRejectsUnknownSlug(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(t, repo)
	svc := NewService(repo)

	role, err := svc.CreateRole(context.Background(), "sales")
	require.NoError(t, err)

	err = svc.SetRolePermissions(context.Background(), role.ID, []string{"invoices:teleport"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAssignRoleRequiresExistingRole(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.AssignRole(context.Background(), uuid.New(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func role(name string, slugs ...string) Role {
	perms := make([]Permission, len(slugs))
	for i, s := range slugs {
		perms[i] = Permission{ID: int64(i + 1), Slug: s}
	}
	return Role{Name: name, Permissions: perms}
}

func TestEffectivePermissionsUnionsRoles(t *testing.T) {
	roles := []Role{
		role("sales", PermClientsRead, PermClientsCreate, PermInvoicesRead, PermInvoicesCreate),
		role("accountant", PermInvoicesRead, PermInvoicesCreate, PermPurchasesRead, PermPurchasesCreate),
	}

	got := EffectivePermissions(roles)

	assert.ElementsMatch(t, []string{
		PermClientsRead, PermClientsCreate,
		PermInvoicesRead, PermInvoicesCreate,
		PermPurchasesRead, PermPurchasesCreate,
	}, got)
}

func TestEffectivePermissionsDeduplicates(t *testing.T) {
	roles := []Role{
		role("a", PermInvoicesRead),
		role("b", PermInvoicesRead),
	}

	got := EffectivePermissions(roles)

	assert.Equal(t, []string{PermInvoicesRead}, got)
}

func TestEffectivePermissionsEmptyInputs(t *testing.T) {
	assert.Empty(t, EffectivePermissions(nil))
	assert.Empty(t, EffectivePermissions([]Role{{Name: "shell"}}))
}

func TestEffectivePermissionsSortedAndStable(t *testing.T) {
	roles := []Role{role("admin", PermUsersManage, PermClientsRead, PermInvoicesApprove)}

	first := EffectivePermissions(roles)
	second := EffectivePermissions(roles)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{PermClientsRead, PermInvoicesApprove, PermUsersManage}, first)
}

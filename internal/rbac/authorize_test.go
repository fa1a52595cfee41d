package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeEmptyRequiredAlwaysAllows(t *testing.T) {
	assert.True(t, Authorize(nil, nil))
	assert.True(t, Authorize([]string{PermClientsRead}, nil))
	assert.True(t, Authorize(nil, []string{}))
}

func TestAuthorizeAllOfSemantics(t *testing.T) {
	granted := []string{PermClientsRead, PermClientsDelete}

	assert.True(t, Authorize(granted, []string{PermClientsDelete}))
	assert.True(t, Authorize(granted, []string{PermClientsRead, PermClientsDelete}))

	// One missing permission denies the whole operation.
	assert.False(t, Authorize([]string{PermClientsRead}, []string{PermClientsDelete}))
	assert.False(t, Authorize(granted, []string{PermClientsRead, PermInvoicesApprove}))
}

func TestAuthorizeNilGrantedFailsClosed(t *testing.T) {
	assert.False(t, Authorize(nil, []string{PermInvoicesRead}))
}

func TestAuthorizeSalesRoleScenario(t *testing.T) {
	granted := EffectivePermissions([]Role{
		role("sales", PermClientsRead, PermClientsCreate, PermInvoicesRead, PermInvoicesCreate),
	})

	assert.False(t, Authorize(granted, []string{PermInvoicesApprove}))
	assert.True(t, Authorize(granted, []string{PermClientsRead}))
}

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *User {
	return &User{
		ID:    uuid.New(),
		Email: "sales@test.local",
		Name:  "Sales User",
	}
}

func newIssuerVerifier(t *testing.T, ttl time.Duration) (*TokenIssuer, *TokenVerifier) {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, ttl)
	require.NoError(t, err)
	verifier, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)
	return issuer, verifier
}

func TestTokenRoundTripPreservesIdentityAndPermissions(t *testing.T) {
	issuer, verifier := newIssuerVerifier(t, time.Hour)
	user := testUser()
	perms := []string{rbac.PermClientsRead, rbac.PermInvoicesRead}

	raw, err := issuer.Issue(user, perms)
	require.NoError(t, err)

	ac, err := verifier.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ac.UserID)
	assert.Equal(t, user.Email, ac.Email)
	assert.Equal(t, perms, ac.Permissions)
}

func TestTokenEmptyPermissionSetRoundTrips(t *testing.T) {
	issuer, verifier := newIssuerVerifier(t, time.Hour)

	raw, err := issuer.Issue(testUser(), nil)
	require.NoError(t, err)

	ac, err := verifier.Verify(raw)
	require.NoError(t, err)
	assert.Empty(t, ac.Permissions)
}

func TestTokenExpiredFailsUnauthenticated(t *testing.T) {
	issuer, verifier := newIssuerVerifier(t, time.Minute)

	raw, err := issuer.Issue(testUser(), []string{rbac.PermClientsRead})
	require.NoError(t, err)

	// Move the verifier clock past expiry; the signature is still valid.
	verifier.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestTokenTamperedSignatureFails(t *testing.T) {
	issuer, verifier := newIssuerVerifier(t, time.Hour)

	raw, err := issuer.Issue(testUser(), []string{rbac.PermClientsRead})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = verifier.Verify(tampered)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestTokenTamperedPayloadFails(t *testing.T) {
	issuer, verifier := newIssuerVerifier(t, time.Hour)

	raw, err := issuer.Issue(testUser(), []string{rbac.PermClientsRead})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = verifier.Verify(tampered)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestTokenWrongSecretFails(t *testing.T) {
	issuer, _ := newIssuerVerifier(t, time.Hour)
	other, err := NewTokenVerifier("another-secret-another-secret!!!")
	require.NoError(t, err)

	raw, err := issuer.Issue(testUser(), nil)
	require.NoError(t, err)

	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestTokenMalformedFails(t *testing.T) {
	_, verifier := newIssuerVerifier(t, time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifier.Verify(raw)
		if !errors.Is(err, shared.ErrUnauthenticated) {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", raw, err)
		}
	}
}

func TestNewTokenIssuerRejectsMisconfiguration(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer(testSecret, 0)
	assert.Error(t, err)

	_, err = NewTokenVerifier("")
	assert.Error(t, err)
}

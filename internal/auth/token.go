package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Claims is the signed token payload: subject identity plus the permission
// snapshot resolved at issue time. The snapshot does not observe later role
// changes; it holds until the token expires or the user logs in again.
type Claims struct {
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed, time-bound access tokens. The signing secret is
// fixed at construction and never mutated afterwards.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs an issuer. An empty secret is a configuration
// error surfaced at startup, never per request.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the user embedding the given permission snapshot.
func (i *TokenIssuer) Issue(user *User, permissions []string) (string, error) {
	now := i.now().UTC()
	if permissions == nil {
		permissions = []string{}
	}
	claims := Claims{
		Email:       user.Email,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// TokenVerifier validates inbound tokens. Verification is a pure in-memory
// computation: signature and expiry only, no database access and no
// re-resolution of permissions.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewTokenVerifier constructs a verifier sharing the issuer's secret.
func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	return &TokenVerifier{secret: []byte(secret), now: time.Now}, nil
}

// Verify checks signature and expiry and reconstructs the request identity.
// Every failure mode (malformed, bad signature, expired) collapses to
// ErrUnauthenticated.
func (v *TokenVerifier) Verify(raw string) (*shared.AuthContext, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid {
		return nil, shared.ErrUnauthenticated
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, shared.ErrUnauthenticated
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	return &shared.AuthContext{
		UserID:      userID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
	}, nil
}

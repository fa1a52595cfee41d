package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Service wraps authentication business rules: credential verification and
// token issuance.
type Service struct {
	repo     Repository
	issuer   *TokenIssuer
	throttle *LoginThrottle
}

// NewService constructs a new Service. throttle may be nil, which disables
// failed-attempt limiting.
func NewService(repo Repository, issuer *TokenIssuer, throttle *LoginThrottle) *Service {
	return &Service{repo: repo, issuer: issuer, throttle: throttle}
}

// LoginResult is the successful login response payload.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// NormalizeEmail lower-cases and trims an email address. Emails are stored
// normalized, making lookups effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate validates email/password credentials and returns the user
// with the role/permission graph loaded. Unknown email and wrong password
// both return ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmailWithPermissions(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and mints an access token embedding the resolved
// permission snapshot. remoteIP feeds the failed-attempt throttle.
func (s *Service) Login(ctx context.Context, email, password, remoteIP string) (*LoginResult, error) {
	email = NormalizeEmail(email)

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, remoteIP, email)
		if err == nil && !allowed {
			// Over the limit: same generic failure, no DB hit.
			return nil, shared.ErrInvalidCredentials
		}
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if s.throttle != nil {
			s.throttle.RecordFailure(ctx, remoteIP, email)
		}
		return nil, err
	}
	if s.throttle != nil {
		s.throttle.Reset(ctx, remoteIP, email)
	}

	permissions := rbac.EffectivePermissions(user.Roles)
	token, err := s.issuer.Issue(user, permissions)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		User: UserSummary{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Permissions: permissions,
		},
	}, nil
}

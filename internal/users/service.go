package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-erp/meridian-erp/internal/auth"
	"github.com/meridian-erp/meridian-erp/internal/rbac"
)

type Service struct {
	repo   Repository
	rbac   *rbac.Service
	logger *slog.Logger
}

func NewService(repo Repository, rbacSvc *rbac.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, rbac: rbacSvc, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		ID:           uuid.New(),
		Email:        auth.NormalizeEmail(req.Email),
		Name:         req.Name,
		PasswordHash: string(hash),
		Roles:        []rbac.Role{},
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	if req.Name != nil {
		if err := s.repo.UpdateName(ctx, id, *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
		s.logger.Info("user password changed", "user_id", id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AssignRole grants a role to a user. The new permissions take effect on the
// user's next login; tokens already issued keep their snapshot.
func (s *Service) AssignRole(ctx context.Context, userID uuid.UUID, roleID int64) (*User, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.rbac.AssignRole(ctx, userID, roleID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) RemoveRole(ctx context.Context, userID uuid.UUID, roleID int64) (*User, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.rbac.RemoveRole(ctx, userID, roleID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

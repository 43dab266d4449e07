package user

import (
	"context"

	"github.com/simp-lee/cmsbase/internal/domain"
)

// Service defines the admin-facing read operations over accounts.
// Account creation goes through the auth module's registration flow.
type Service interface {
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error)
}

// userService implements Service.
type userService struct {
	repo domain.UserRepository
}

// NewService creates a new user Service with the given repository.
func NewService(repo domain.UserRepository) Service {
	return &userService{repo: repo}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, req)
}

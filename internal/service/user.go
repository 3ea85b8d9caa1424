package service

import (
	"context"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/store"
)

type UserService struct {
	Store store.Store
}

// List returns every registered user, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// ListStaff returns all users holding the staff role, newest first.
func (s *UserService) ListStaff(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsersByRole(ctx, domain.RoleStaff)
}

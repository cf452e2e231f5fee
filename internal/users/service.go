// Package users implements the administrative user-management operations.
package users

import (
	"context"
	"fmt"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
)

// Service owns admin-facing user CRUD. Role gating happens in the middleware,
// not here; the service assumes the caller is already authorized.
type Service struct {
	store storage.UserStore
}

// NewService constructs the user service.
func NewService(store storage.UserStore) *Service {
	return &Service{store: store}
}

// List returns all users without password hashes.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// Get returns one user without the password hash.
func (s *Service) Get(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

// Create adds a user with an admin-chosen role, defaulting to the regular
// role. Duplicate emails surface as storage.ErrAlreadyExists; the store's
// unique constraint is the authority.
func (s *Service) Create(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, models.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

// Update applies the non-nil fields of req to the user. A new password is
// re-hashed before storage.
func (s *Service) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	updated, err := s.store.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	return updated.Sanitized(), nil
}

// Delete removes the user and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

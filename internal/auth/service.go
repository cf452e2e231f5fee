// Package auth implements credential verification, token issuance and
// verification, and the login/register/profile orchestration on top of them.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords, so
// login failures never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service orchestrates authentication against the user store.
type Service struct {
	users  storage.UserStore
	tokens *TokenManager
}

// NewService constructs the auth service.
func NewService(users storage.UserStore, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Verify checks an email/password pair and returns the matching user record,
// hash included, for internal use. Callers must sanitize before exposure.
func (s *Service) Verify(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if !CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials and, on success, issues a token and returns the
// uniform auth response with the sanitized user.
func (s *Service) Login(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return s.respond(user)
}

// Register hashes the password, creates the user with the default role, and
// logs the new user in. A duplicate email surfaces as storage.ErrAlreadyExists
// and no token is issued.
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         models.RoleUser,
		PasswordHash: hash,
	})
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return s.respond(user)
}

// Profile fetches a user by id and returns it without the password hash.
func (s *Service) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

func (s *Service) respond(user models.User) (dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        user.Sanitized(),
	}, nil
}

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
	"github.com/dvegac/tasks-be/internal/storage/memory"
)

func newService() (*auth.Service, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", 24*time.Hour)
	return auth.NewService(memory.New(), tokens), tokens
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, tokens := newService()

	registered, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		Name:     "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, int64(86400), registered.ExpiresIn)
	assert.Equal(t, "a@x.com", registered.User.Email)
	assert.Equal(t, models.RoleUser, registered.User.Role)
	assert.Empty(t, registered.User.PasswordHash)

	loggedIn, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	claims, err := tokens.Verify(loggedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	req := dto.RegisterRequest{Email: "a@x.com", Password: "secret1", Name: "A"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestLoginFailureIsUniform(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPass := svc.Login(ctx, "a@x.com", "wrong")
	_, unknown := svc.Login(ctx, "nobody@x.com", "anything")
	assert.ErrorIs(t, wrongPass, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	registered, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	user, err := svc.Profile(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Profile(ctx, "missing-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestVerifyReturnsFullRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	user, err := svc.Verify(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	// Internal callers get the hash; sanitizing is their job.
	assert.NotEmpty(t, user.PasswordHash)
}

package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvegac/tasks-be/internal/models"
)

func TestUsersRequireAdminRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, userToken := env.seedUser(t, "a@x.com", "secret1", models.RoleUser)
	_, adminToken := env.seedUser(t, "root@x.com", "secret1", models.RoleAdmin)

	status, _ := env.doJSON(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.doJSON(t, http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, list := env.doJSONList(t, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 2)
	for _, u := range list {
		assert.NotContains(t, u, "passwordHash")
	}
}

func TestAdminUserCrud(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "root@x.com", "secret1", models.RoleAdmin)

	status, created := env.doJSON(t, http.MethodPost, "/users", adminToken, map[string]string{
		"email": "b@x.com", "password": "secret1", "name": "B",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.RoleUser, created["role"])
	path := fmt.Sprintf("/users/%s", created["id"])

	status, _ = env.doJSON(t, http.MethodPost, "/users", adminToken, map[string]string{
		"email": "b@x.com", "password": "secret1", "name": "B again",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, got := env.doJSON(t, http.MethodGet, path, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "b@x.com", got["email"])

	status, updated := env.doJSON(t, http.MethodPatch, path, adminToken, map[string]string{
		"name": "Updated", "role": models.RoleAdmin,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Updated", updated["name"])
	assert.Equal(t, models.RoleAdmin, updated["role"])

	status, _ = env.doJSON(t, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.doJSON(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminUserValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "root@x.com", "secret1", models.RoleAdmin)

	status, _ := env.doJSON(t, http.MethodPost, "/users", adminToken, map[string]string{
		"email": "b@x.com", "password": "secret1", "name": "B", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.doJSON(t, http.MethodPatch, "/users/some-id", adminToken, map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.doJSON(t, http.MethodPatch, "/users/missing-id", adminToken, map[string]string{
		"name": "X",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

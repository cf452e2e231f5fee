package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/models"
)

func TestTaskCreateSetsOwnerFromToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user, token := env.seedUser(t, "a@x.com", "secret1", models.RoleUser)

	// A client-supplied owner id must be ignored.
	status, body := env.doJSON(t, http.MethodPost, "/tasks", token, map[string]string{
		"title":       "buy milk",
		"description": "2 liters",
		"userId":      "attacker",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, user.ID, body["userId"])
	assert.Equal(t, "pending", body["status"])
}

func TestTaskCrossOwnerAccess(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, ownerToken := env.seedUser(t, "owner@x.com", "secret1", models.RoleUser)
	_, otherToken := env.seedUser(t, "other@x.com", "secret1", models.RoleUser)

	status, task := env.doJSON(t, http.MethodPost, "/tasks", ownerToken, map[string]string{
		"title": "mine", "description": "d",
	})
	require.Equal(t, http.StatusCreated, status)
	path := fmt.Sprintf("/tasks/%s", task["id"])

	// Read, update, and delete are all Forbidden for a non-owner.
	status, _ = env.doJSON(t, http.MethodGet, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = env.doJSON(t, http.MethodPatch, path, otherToken, map[string]string{"title": "hijacked"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = env.doJSON(t, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The owner still sees the unmodified task.
	status, got := env.doJSON(t, http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "mine", got["title"])
}

func TestTaskNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, token := env.seedUser(t, "a@x.com", "secret1", models.RoleUser)

	status, _ := env.doJSON(t, http.MethodGet, "/tasks/missing-id", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.doJSON(t, http.MethodDelete, "/tasks/missing-id", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTaskListFilters(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, token := env.seedUser(t, "a@x.com", "secret1", models.RoleUser)
	_, otherToken := env.seedUser(t, "b@x.com", "secret1", models.RoleUser)

	for _, payload := range []map[string]string{
		{"title": "Complete report", "description": "d"},
		{"title": "water plants", "description": "d", "status": "completed"},
	} {
		status, _ := env.doJSON(t, http.MethodPost, "/tasks", token, payload)
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := env.doJSON(t, http.MethodPost, "/tasks", otherToken, map[string]string{
		"title": "complete something else", "description": "d",
	})
	require.Equal(t, http.StatusCreated, status)

	// Listing only ever returns the caller's rows.
	status, list := env.doJSONList(t, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 2)

	status, list = env.doJSONList(t, http.MethodGet, "/tasks?title=complete", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "Complete report", list[0]["title"])

	status, list = env.doJSONList(t, http.MethodGet, "/tasks?status=completed", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "water plants", list[0]["title"])

	status, _ = env.doJSON(t, http.MethodGet, "/tasks?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTaskUpdateAndDelete(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, token := env.seedUser(t, "a@x.com", "secret1", models.RoleUser)

	status, task := env.doJSON(t, http.MethodPost, "/tasks", token, map[string]string{
		"title": "t", "description": "d",
	})
	require.Equal(t, http.StatusCreated, status)
	path := fmt.Sprintf("/tasks/%s", task["id"])

	status, updated := env.doJSON(t, http.MethodPatch, path, token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "t", updated["title"])

	status, deleted := env.doJSON(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, task["id"], deleted["id"])

	status, _ = env.doJSON(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExpiredTokenOnProtectedRoutes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user, _ := env.seedUser(t, "a@x.com", "secret1", models.RoleUser)

	expired, err := auth.NewTokenManager(testSecret, -time.Minute).Issue(user)
	require.NoError(t, err)

	for _, path := range []string{"/tasks", "/auth/profile", "/users"} {
		status, _ := env.doJSON(t, http.MethodGet, path, expired, nil)
		assert.Equal(t, http.StatusUnauthorized, status, "path %s", path)
	}
}

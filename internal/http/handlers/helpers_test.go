package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/config"
	"github.com/dvegac/tasks-be/internal/logging"
	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/server"
	"github.com/dvegac/tasks-be/internal/storage/memory"
)

const testSecret = "test-secret"

type testEnv struct {
	ts     *httptest.Server
	store  *memory.Store
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Port:        "0",
		JWTSecret:   testSecret,
		JWTTTL:      24 * time.Hour,
		CORSOrigins: []string{"*"},
		Env:         "test",
	}
	store := memory.New()
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	srv := server.New(cfg, log, store)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{
		ts:     ts,
		store:  store,
		tokens: auth.NewTokenManager(testSecret, 24*time.Hour),
	}
}

// seedUser inserts a user directly into the store and returns it together
// with a valid token.
func (e *testEnv) seedUser(t *testing.T, email, password, role string) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user, err := e.store.CreateUser(t.Context(), models.User{
		Email:        email,
		Name:         "seeded",
		Role:         role,
		PasswordHash: hash,
	})
	require.NoError(t, err)

	token, err := e.tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

// doJSON issues a request with an optional bearer token and JSON body and
// decodes the response body into a generic map.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	status, raw := e.do(t, method, path, token, body)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return status, out
}

// doJSONList is doJSON for endpoints returning a JSON array.
func (e *testEnv) doJSONList(t *testing.T, method, path, token string, body any) (int, []map[string]any) {
	t.Helper()

	status, raw := e.do(t, method, path, token, body)
	out := []map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

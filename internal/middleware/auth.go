package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/http/respond"
	"github.com/dvegac/tasks-be/internal/logging"
)

type contextKey int

const claimsKey contextKey = iota

// ClaimsFrom extracts the authenticated claims attached by Authenticate.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// Authenticate gates a route on a valid bearer token. On success the decoded
// claims are attached to the request context; every failure is a uniform 401
// so clients cannot probe whether a token was expired or malformed.
func Authenticate(tokens *auth.TokenManager, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				// The wrapped detail stays in the logs only.
				log.Warn(r.Context(), "token rejected", "path", r.URL.Path, "reason", err.Error())
				respond.Error(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates a route on the authenticated role being a member of the
// allowed set. It must run after Authenticate.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if !slices.Contains(roles, claims.Role) {
				respond.Error(w, r, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

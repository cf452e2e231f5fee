package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/dvegac/tasks-be/internal/http/respond"
	"github.com/dvegac/tasks-be/internal/logging"
)

// Recover converts panics into a generic 500 response. The panic value and
// stack trace are logged server-side; the stack is omitted in production.
func Recover(log logging.Logger, production bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				args := []any{"method", r.Method, "path", r.URL.Path, "panic", rec}
				if !production {
					args = append(args, "stack", string(debug.Stack()))
				}
				log.Error(r.Context(), "request panicked", args...)
				respond.Error(w, r, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dvegac/tasks-be/internal/http/respond"
)

// Pinger probes backing-store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service status and database reachability.
type HealthHandler struct {
	db        Pinger
	startedAt time.Time
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(db Pinger, startedAt time.Time) *HealthHandler {
	return &HealthHandler{db: db, startedAt: startedAt}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	if err := h.db.Ping(r.Context()); err != nil {
		body["status"] = "error"
		body["database"] = "disconnected"
		respond.JSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ok"
	body["database"] = "connected"
	respond.JSON(w, http.StatusOK, body)
}

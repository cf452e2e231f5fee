package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dvegac/tasks-be/internal/http/respond"
	"github.com/dvegac/tasks-be/internal/logging"
	"github.com/dvegac/tasks-be/internal/middleware"
	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
	"github.com/dvegac/tasks-be/internal/tasks"
)

// TaskHandler owns the task CRUD endpoints. Every route requires an
// authenticated caller; ownership is enforced by the service.
type TaskHandler struct {
	svc *tasks.Service
	log logging.Logger
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(svc *tasks.Service, log logging.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// Register attaches task routes to the mux behind the authentication guard.
func (h *TaskHandler) Register(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	mux.Handle("GET /tasks", authn(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /tasks", authn(http.HandlerFunc(h.handleCreate)))
	mux.Handle("GET /tasks/{id}", authn(http.HandlerFunc(h.handleGet)))
	mux.Handle("PATCH /tasks/{id}", authn(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /tasks/{id}", authn(http.HandlerFunc(h.handleDelete)))
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	filter := storage.TaskFilter{
		Title:  strings.TrimSpace(r.URL.Query().Get("title")),
		Status: models.TaskStatus(r.URL.Query().Get("status")),
	}
	if filter.Status != "" && !models.ValidTaskStatus(filter.Status) {
		respond.Error(w, r, http.StatusBadRequest, "status must be one of: pending, completed")
		return
	}

	list, err := h.svc.Find(r.Context(), claims.Subject, filter)
	if err != nil {
		h.log.Error(r.Context(), "list tasks failed", "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		respond.Error(w, r, http.StatusBadRequest, "title must not be empty")
		return
	}
	if req.Description == "" {
		respond.Error(w, r, http.StatusBadRequest, "description must not be empty")
		return
	}
	if req.Status != "" && !models.ValidTaskStatus(req.Status) {
		respond.Error(w, r, http.StatusBadRequest, "status must be one of: pending, completed")
		return
	}

	task, err := h.svc.Create(r.Context(), claims.Subject, req)
	if err != nil {
		h.log.Error(r.Context(), "create task failed", "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "failed to create task")
		return
	}
	respond.JSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	task, err := h.svc.Get(r.Context(), r.PathValue("id"), claims.Subject)
	if err != nil {
		h.respondTaskError(w, r, err, "failed to fetch task")
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respond.Error(w, r, http.StatusBadRequest, "title must not be empty")
		return
	}
	if req.Status != nil && !models.ValidTaskStatus(*req.Status) {
		respond.Error(w, r, http.StatusBadRequest, "status must be one of: pending, completed")
		return
	}

	task, err := h.svc.Update(r.Context(), r.PathValue("id"), claims.Subject, req)
	if err != nil {
		h.respondTaskError(w, r, err, "failed to update task")
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	task, err := h.svc.Delete(r.Context(), r.PathValue("id"), claims.Subject)
	if err != nil {
		h.respondTaskError(w, r, err, "failed to delete task")
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

func (h *TaskHandler) respondTaskError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "task not found")
	case errors.Is(err, tasks.ErrNoAccess):
		respond.Error(w, r, http.StatusForbidden, err.Error())
	default:
		h.log.Error(r.Context(), fallback, "error", err)
		respond.Error(w, r, http.StatusInternalServerError, fallback)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dvegac/tasks-be/internal/http/respond"
	"github.com/dvegac/tasks-be/internal/logging"
	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
	"github.com/dvegac/tasks-be/internal/users"
)

// UserHandler owns the administrative user-management endpoints.
type UserHandler struct {
	svc *users.Service
	log logging.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(svc *users.Service, log logging.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Register attaches user routes to the mux. Every route requires both a valid
// token and the admin role.
func (h *UserHandler) Register(mux *http.ServeMux, authn, adminOnly func(http.Handler) http.Handler) {
	guard := func(handler http.HandlerFunc) http.Handler {
		return authn(adminOnly(handler))
	}
	mux.Handle("GET /users", guard(h.handleList))
	mux.Handle("POST /users", guard(h.handleCreate))
	mux.Handle("GET /users/{id}", guard(h.handleGet))
	mux.Handle("PATCH /users/{id}", guard(h.handleUpdate))
	mux.Handle("DELETE /users/{id}", guard(h.handleDelete))
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "list users failed", "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "failed to list users")
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondUserError(w, r, err, "failed to fetch user")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if msg := validateRegistration(req.Email, req.Password, req.Name); msg != "" {
		respond.Error(w, r, http.StatusBadRequest, msg)
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		respond.Error(w, r, http.StatusBadRequest, "role must be one of: user, admin")
		return
	}

	user, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondUserError(w, r, err, "failed to create user")
		return
	}
	respond.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
		if msg := validateEmail(trimmed); msg != "" {
			respond.Error(w, r, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Password != nil {
		if msg := validatePassword(*req.Password); msg != "" {
			respond.Error(w, r, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respond.Error(w, r, http.StatusBadRequest, "name must not be empty")
		return
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		respond.Error(w, r, http.StatusBadRequest, "role must be one of: user, admin")
		return
	}

	user, err := h.svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.respondUserError(w, r, err, "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondUserError(w, r, err, "failed to delete user")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) respondUserError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, r, http.StatusConflict, "email already exists")
	default:
		h.log.Error(r.Context(), fallback, "error", err)
		respond.Error(w, r, http.StatusInternalServerError, fallback)
	}
}

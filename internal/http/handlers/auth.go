package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/http/respond"
	"github.com/dvegac/tasks-be/internal/logging"
	"github.com/dvegac/tasks-be/internal/middleware"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
)

// AuthHandler owns the register/login/profile endpoints.
type AuthHandler struct {
	svc *auth.Service
	log logging.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service, log logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register attaches auth routes to the mux. Only the profile route sits
// behind the authentication guard.
func (h *AuthHandler) Register(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	mux.Handle("POST /auth/register", http.HandlerFunc(h.handleRegister))
	mux.Handle("POST /auth/login", http.HandlerFunc(h.handleLogin))
	mux.Handle("GET /auth/profile", authn(http.HandlerFunc(h.handleProfile)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
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

	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, r, http.StatusConflict, "email already exists")
		default:
			h.log.Error(r.Context(), "register failed", "error", err)
			respond.Error(w, r, http.StatusInternalServerError, "failed to register user")
		}
		return
	}
	respond.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.svc.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.Error(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error(r.Context(), "login failed", "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "failed to log in")
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := h.svc.Profile(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error(r.Context(), "profile lookup failed", "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func validateRegistration(email, password, name string) string {
	if msg := validateEmail(email); msg != "" {
		return msg
	}
	if msg := validatePassword(password); msg != "" {
		return msg
	}
	if name == "" {
		return "name is required"
	}
	return ""
}

func validateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "invalid email format"
	}
	return ""
}

func validatePassword(password string) string {
	if len(password) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

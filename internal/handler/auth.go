package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stashbin/stashbin/internal/ctxkeys"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stashbin/stashbin/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "POST email and password to register",
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Register(email, password)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			writeError(w, http.StatusBadRequest, "email already exists")
		case errors.As(err, &vErr):
			slog.Warn("registration rejected", "error", err, "email", email)
			writeError(w, http.StatusBadRequest, vErr.Error())
		default:
			slog.Error("registration failed", "error", err, "email", email)
			writeError(w, http.StatusInternalServerError, "an error occurred, please try again")
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "POST email and password to log in",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Login(email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Error("login failed", "error", err, "email", email)
			writeError(w, http.StatusInternalServerError, "an error occurred, please try again")
			return
		}
		slog.Warn("login rejected", "email", email)
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, session, err := h.authService.StartSession(user)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "an error occurred, please try again")
		return
	}

	h.authService.SetSessionCookie(w, token, session.ExpiresAt)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	if session != nil {
		err := h.authService.EndSession(session.ID)
		if err != nil {
			slog.Error("failed to end session", "error", err, "session_id", session.ID)
		}
	}

	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

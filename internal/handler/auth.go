// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
)

// invalidCredentials is the single message for every login failure so a
// missing account and a wrong password cannot be told apart.
const invalidCredentials = "Invalid username or password"

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// LoginForm renders the login page. Already-authenticated admins are sent
// to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyAdminUserID); userID > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{Title: "Login"}); err != nil {
		logAndInternalError(w, "failed to render login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, invalidCredentials)
		return
	}

	user, err := h.queries.GetAdminUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: unknown username", "username", username, "remote_addr", r.RemoteAddr)
		} else {
			slog.Error("database error during login", "error", err)
		}
		flashError(w, r, h.renderer, redirectLogin, invalidCredentials)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, invalidCredentials)
		return
	}
	if !valid {
		slog.Warn("login failed: invalid password", "username", username, "remote_addr", r.RemoteAddr)
		flashError(w, r, h.renderer, redirectLogin, invalidCredentials)
		return
	}

	// Renew the session token on privilege change to prevent fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdminUserID, user.ID)

	slog.Info("admin logged in", "username", user.Username)
	flashSuccess(w, r, h.renderer, redirectAdmin, "Welcome back, "+user.Username+"!")
}

// Logout destroys the session and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	flashAndRedirect(w, r, h.renderer, redirectLogin, "You have been logged out.", "info")
}

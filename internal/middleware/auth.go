// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and
// request context handling.
package middleware

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeyAdmin       ContextKey = "admin"
	ContextKeyRequestPath ContextKey = "request_path"
)

// Session keys.
const (
	SessionKeyAdminUserID = "admin_user_id"
	SessionKeyFlash       = "flash"
	SessionKeyFlashType   = "flash_type"
)

// RequireAdmin creates middleware that requires an authenticated admin.
// Unauthenticated requests are flashed a warning and redirected to login.
func RequireAdmin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyAdminUserID)
			if userID == 0 {
				sm.Put(r.Context(), SessionKeyFlash, "Silakan login terlebih dahulu.")
				sm.Put(r.Context(), SessionKeyFlashType, "warning")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadAdmin creates middleware that loads the current admin into the request
// context. Use after RequireAdmin. A stale session id (account removed) is
// destroyed and the request redirected to login.
func LoadAdmin(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyAdminUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetAdminUserByID(r.Context(), userID)
			if err != nil {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the current admin from the request context.
// Returns nil if no admin is in context.
func GetAdmin(r *http.Request) *model.AdminUser {
	user, ok := r.Context().Value(ContextKeyAdmin).(model.AdminUser)
	if !ok {
		return nil
	}
	return &user
}

// GetAdminID returns the current admin's ID from context, or 0 if not found.
// Safe to use in logging where a zero-value is acceptable.
func GetAdminID(r *http.Request) int64 {
	if user := GetAdmin(r); user != nil {
		return user.ID
	}
	return 0
}

// RequestPath creates middleware that stores the request path in the context.
// This is used by the logging handler to include the URL in error logs.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/store"
)

func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func sessionRequest(t *testing.T, sm *scs.SessionManager, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("session load: %v", err)
	}
	return r.WithContext(ctx)
}

func TestRequireAdmin_RedirectsGuests(t *testing.T) {
	sm := testSessionManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := sessionRequest(t, sm, "/admin/photos")
	rec := httptest.NewRecorder()
	RequireAdmin(sm)(next).ServeHTTP(rec, req)

	if called {
		t.Error("protected handler should not run for guests")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q; want /login", got)
	}
	if flash := sm.GetString(req.Context(), SessionKeyFlash); flash == "" {
		t.Error("guests should be flashed a login prompt")
	}
}

func TestRequireAdmin_PassesAuthenticated(t *testing.T) {
	sm := testSessionManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := sessionRequest(t, sm, "/admin/photos")
	sm.Put(req.Context(), SessionKeyAdminUserID, int64(42))

	rec := httptest.NewRecorder()
	RequireAdmin(sm)(next).ServeHTTP(rec, req)

	if !called {
		t.Error("authenticated request should reach the handler")
	}
}

func TestLoadAdmin(t *testing.T) {
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	now := time.Now()
	user, err := store.New(db).CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Username:     "admin",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}

	sm := testSessionManager(t)

	var loaded *model.AdminUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loaded = GetAdmin(r)
	})

	req := sessionRequest(t, sm, "/admin")
	sm.Put(req.Context(), SessionKeyAdminUserID, user.ID)

	rec := httptest.NewRecorder()
	LoadAdmin(sm, db)(next).ServeHTTP(rec, req)

	if loaded == nil {
		t.Fatal("admin should be loaded into context")
	}
	if loaded.Username != "admin" {
		t.Errorf("Username = %q; want admin", loaded.Username)
	}
}

func TestLoadAdmin_StaleSession(t *testing.T) {
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	sm := testSessionManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	// Session references an admin account that no longer exists.
	req := sessionRequest(t, sm, "/admin")
	sm.Put(req.Context(), SessionKeyAdminUserID, int64(999))

	rec := httptest.NewRecorder()
	LoadAdmin(sm, db)(next).ServeHTTP(rec, req)

	if called {
		t.Error("handler should not run with a stale session")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusSeeOther)
	}
	if got := sm.GetInt64(req.Context(), SessionKeyAdminUserID); got != 0 {
		t.Error("stale session should be destroyed")
	}
}

func TestGetAdmin_NoContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetAdmin(r) != nil {
		t.Error("GetAdmin should return nil outside admin context")
	}
	if GetAdminID(r) != 0 {
		t.Error("GetAdminID should return 0 outside admin context")
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/gallery?category=wedding", nil)
	RequestPath(next).ServeHTTP(httptest.NewRecorder(), req)

	if got != "/gallery" {
		t.Errorf("GetRequestPath = %q; want /gallery", got)
	}

	if GetRequestPath(context.Background()) != "" {
		t.Error("GetRequestPath should return empty outside middleware")
	}
}

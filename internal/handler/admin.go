// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AdminHandler {
	return &AdminHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// DashboardData holds counts and recent events for the dashboard template.
type DashboardData struct {
	PhotoCount       int64
	BlogCount        int64
	ActiveSlideCount int64
	PackageCount     int64
	Events           []model.Event
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data DashboardData
	var err error

	if data.PhotoCount, err = h.queries.CountPhotos(ctx, store.CountPhotosParams{}); err != nil {
		logAndInternalError(w, "failed to count photos", "error", err)
		return
	}
	if data.BlogCount, err = h.queries.CountBlogs(ctx, store.CountBlogsParams{}); err != nil {
		logAndInternalError(w, "failed to count blogs", "error", err)
		return
	}
	if data.ActiveSlideCount, err = h.queries.CountHeroSlides(ctx, true); err != nil {
		logAndInternalError(w, "failed to count active slides", "error", err)
		return
	}
	if data.PackageCount, err = h.queries.CountPackages(ctx, ""); err != nil {
		logAndInternalError(w, "failed to count packages", "error", err)
		return
	}
	if data.Events, err = h.queries.ListRecentEvents(ctx, DashboardEventLimit); err != nil {
		logAndInternalError(w, "failed to list recent events", "error", err)
		return
	}

	err = h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}

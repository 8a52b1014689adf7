// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/studio-go/internal/store"
)

func newTestFrontend(t *testing.T) (*FrontendHandler, *sql.DB, func(r *http.Request) *http.Request) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	withSession := func(r *http.Request) *http.Request {
		return requestWithSession(sm, r)
	}
	return NewFrontendHandler(db, renderer, sm), db, withSession
}

func TestFrontendHome(t *testing.T) {
	h, _, withSession := newTestFrontend(t)

	req := withSession(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
}

func TestFrontendGallery(t *testing.T) {
	h, db, withSession := newTestFrontend(t)

	q := store.New(db)
	for _, p := range []struct {
		filename, category string
	}{
		{"w.jpg", "wedding"},
		{"e.jpg", "event"},
	} {
		if _, err := q.CreatePhoto(context.Background(), store.CreatePhotoParams{
			Filename:     p.filename,
			Category:     p.category,
			DateUploaded: time.Now(),
		}); err != nil {
			t.Fatalf("CreatePhoto: %v", err)
		}
	}

	req := withSession(httptest.NewRequest(http.MethodGet, "/gallery", nil))
	rec := httptest.NewRecorder()
	h.Gallery(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "w.jpg") || !strings.Contains(body, "e.jpg") {
		t.Error("unfiltered gallery should show photos from every category")
	}

	// "All" is the show-everything default, same as no filter.
	req = withSession(httptest.NewRequest(http.MethodGet, "/gallery?category=All", nil))
	rec = httptest.NewRecorder()
	h.Gallery(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body = rec.Body.String()
	if !strings.Contains(body, "w.jpg") || !strings.Contains(body, "e.jpg") {
		t.Error("category=All should return photos from every category")
	}

	req = withSession(httptest.NewRequest(http.MethodGet, "/gallery?category=wedding", nil))
	rec = httptest.NewRecorder()
	h.Gallery(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body = rec.Body.String()
	if !strings.Contains(body, "w.jpg") {
		t.Error("wedding filter should show wedding photos")
	}
	if strings.Contains(body, "e.jpg") {
		t.Error("wedding filter should hide event photos")
	}
}

func TestFrontendPackages_ValidCategory(t *testing.T) {
	h, db, withSession := newTestFrontend(t)

	if _, err := store.New(db).CreatePackage(context.Background(), store.CreatePackageParams{
		Name:     "Gold",
		Category: "wedding",
		Price:    "Rp 10.000.000",
	}); err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}

	for _, category := range []string{"wedding", "Wedding", "WEDDING"} {
		req := withSession(httptest.NewRequest(http.MethodGet, "/packages/"+category, nil))
		req = requestWithURLParams(req, map[string]string{"category": category})
		rec := httptest.NewRecorder()
		h.Packages(rec, req)

		assertStatus(t, rec.Code, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "Gold") {
			t.Errorf("packages page for %q should list the Gold package", category)
		}
	}
}

func TestFrontendPackages_UnknownCategory(t *testing.T) {
	h, _, withSession := newTestFrontend(t)

	for _, category := range []string{"portrait", "weddings", ""} {
		req := withSession(httptest.NewRequest(http.MethodGet, "/packages/x", nil))
		req = requestWithURLParams(req, map[string]string{"category": category})
		rec := httptest.NewRecorder()
		h.Packages(rec, req)

		assertStatus(t, rec.Code, http.StatusNotFound)
	}
}

func TestFrontendBlogList(t *testing.T) {
	h, db, withSession := newTestFrontend(t)

	q := store.New(db)
	now := time.Now()
	for i, slug := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		if _, err := q.CreateBlog(context.Background(), store.CreateBlogParams{
			Title:     "Post " + slug,
			Slug:      slug,
			Content:   "<p>content " + slug + "</p>",
			Author:    "Admin",
			Category:  "Umum",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			UpdatedAt: now.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("CreateBlog: %v", err)
		}
	}

	// Seven posts at six per page: page 1 misses the oldest.
	req := withSession(httptest.NewRequest(http.MethodGet, "/blog", nil))
	rec := httptest.NewRecorder()
	h.BlogList(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "Post g") {
		t.Error("page 1 should contain the newest post")
	}
	if strings.Contains(body, "Post a") {
		t.Error("page 1 should not contain the seventh-newest post")
	}

	req = withSession(httptest.NewRequest(http.MethodGet, "/blog?page=2", nil))
	rec = httptest.NewRecorder()
	h.BlogList(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Post a") {
		t.Error("page 2 should contain the oldest post")
	}

	// Bad page values fall back to page 1; out-of-range pages render empty.
	req = withSession(httptest.NewRequest(http.MethodGet, "/blog?page=banana", nil))
	rec = httptest.NewRecorder()
	h.BlogList(rec, req)
	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Post g") {
		t.Error("non-numeric page should fall back to page 1")
	}

	req = withSession(httptest.NewRequest(http.MethodGet, "/blog?page=99", nil))
	rec = httptest.NewRecorder()
	h.BlogList(rec, req)
	assertStatus(t, rec.Code, http.StatusOK)
	if strings.Contains(rec.Body.String(), "Post ") {
		t.Error("out-of-range page should render no posts")
	}
}

func TestFrontendBlogDetail(t *testing.T) {
	h, db, withSession := newTestFrontend(t)

	if _, err := store.New(db).CreateBlog(context.Background(), store.CreateBlogParams{
		Title:     "Golden Hour Tips",
		Slug:      "golden-hour-tips",
		Content:   "<p>Shoot at dusk.</p>",
		Author:    "Admin",
		Category:  "Tips",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateBlog: %v", err)
	}

	req := withSession(httptest.NewRequest(http.MethodGet, "/blog/golden-hour-tips", nil))
	req = requestWithURLParams(req, map[string]string{"slug": "golden-hour-tips"})
	rec := httptest.NewRecorder()
	h.BlogDetail(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Golden Hour Tips") {
		t.Error("detail page should contain the post title")
	}

	req = withSession(httptest.NewRequest(http.MethodGet, "/blog/missing", nil))
	req = requestWithURLParams(req, map[string]string{"slug": "missing"})
	rec = httptest.NewRecorder()
	h.BlogDetail(rec, req)

	assertStatus(t, rec.Code, http.StatusNotFound)
}

func TestFrontendExcerpt(t *testing.T) {
	h, _, _ := newTestFrontend(t)

	got := h.excerpt("<p>Hello <b>world</b></p>")
	if got != "Hello world" {
		t.Errorf("excerpt = %q; want %q", got, "Hello world")
	}

	long := strings.Repeat("a", blogExcerptLength+50)
	got = h.excerpt("<p>" + long + "</p>")
	if len(got) != blogExcerptLength+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long excerpt should be truncated with ellipsis, got len %d", len(got))
	}

	if got := h.excerpt("<script>alert(1)</script>safe"); got != "safe" {
		t.Errorf("excerpt should strip scripts, got %q", got)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/store"
)

func newTestPackages(t *testing.T) (*PackagesHandler, *sql.DB, func(r *http.Request) *http.Request) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)

	withSession := func(r *http.Request) *http.Request {
		return requestWithSession(sm, r)
	}
	return NewPackagesHandler(db, renderer, sm), db, withSession
}

func formRequest(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func createPackage(t *testing.T, db *sql.DB, name, category string, orderNum int64) model.Package {
	t.Helper()
	pkg, err := store.New(db).CreatePackage(context.Background(), store.CreatePackageParams{
		Name:     name,
		Category: category,
		Price:    "Rp 5.000.000",
		Features: "Album\n50 edited photos",
		OrderNum: orderNum,
	})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	return pkg
}

func TestPackagesCreate(t *testing.T) {
	h, db, withSession := newTestPackages(t)

	req := withSession(formRequest(t, "/admin/packages/new", url.Values{
		"name":      {"Paket Gold"},
		"category":  {"Wedding"},
		"price":     {"Rp 12.000.000"},
		"features":  {"8 jam liputan\nAlbum premium"},
		"order_num": {"2"},
	}))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertRedirect(t, rec, redirectAdminPackages)

	packages, err := store.New(db).ListPackagesByCategory(context.Background(), "wedding")
	if err != nil {
		t.Fatalf("ListPackagesByCategory: %v", err)
	}
	if len(packages) != 1 {
		t.Fatalf("got %d packages; want 1", len(packages))
	}
	pkg := packages[0]
	if pkg.Name != "Paket Gold" || pkg.OrderNum != 2 {
		t.Errorf("unexpected package: %+v", pkg)
	}
	if pkg.Category != "wedding" {
		t.Errorf("Category = %q; want lowercased wedding", pkg.Category)
	}
	if got := pkg.FeatureList(); len(got) != 2 || got[0] != "8 jam liputan" {
		t.Errorf("FeatureList = %v", got)
	}
}

func TestPackagesCreate_Invalid(t *testing.T) {
	h, db, withSession := newTestPackages(t)

	req := withSession(formRequest(t, "/admin/packages/new", url.Values{
		"category": {"portrait"},
	}))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{"Name is required", "Price is required", "Category must be"} {
		if !strings.Contains(body, want) {
			t.Errorf("form should re-render with %q", want)
		}
	}

	count, err := store.New(db).CountPackages(context.Background(), "")
	if err != nil {
		t.Fatalf("CountPackages: %v", err)
	}
	if count != 0 {
		t.Error("invalid package should not be created")
	}
}

func TestPackagesUpdate(t *testing.T) {
	h, db, withSession := newTestPackages(t)
	pkg := createPackage(t, db, "Silver", "wedding", 1)

	req := formRequest(t, "/admin/packages/1/edit", url.Values{
		"name":      {"Silver Plus"},
		"category":  {"event"},
		"price":     {"Rp 7.500.000"},
		"order_num": {"4"},
	})
	req = withSession(requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(pkg.ID, 10)}))

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assertRedirect(t, rec, redirectAdminPackages)

	got, err := store.New(db).GetPackageByID(context.Background(), pkg.ID)
	if err != nil {
		t.Fatalf("GetPackageByID: %v", err)
	}
	if got.Name != "Silver Plus" || got.Category != "event" || got.Price != "Rp 7.500.000" || got.OrderNum != 4 {
		t.Errorf("package not updated: %+v", got)
	}
}

func TestPackagesInline(t *testing.T) {
	h, db, withSession := newTestPackages(t)
	pkg := createPackage(t, db, "Silver", "wedding", 1)

	req := formRequest(t, "/admin/packages/1/inline", url.Values{
		"price":     {"Rp 6.000.000"},
		"order_num": {"7"},
	})
	req = withSession(requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(pkg.ID, 10)}))

	rec := httptest.NewRecorder()
	h.Inline(rec, req)

	assertRedirect(t, rec, redirectAdminPackages)

	got, err := store.New(db).GetPackageByID(context.Background(), pkg.ID)
	if err != nil {
		t.Fatalf("GetPackageByID: %v", err)
	}
	if got.Price != "Rp 6.000.000" || got.OrderNum != 7 {
		t.Errorf("Price = %q, OrderNum = %d", got.Price, got.OrderNum)
	}
	if got.Name != "Silver" {
		t.Error("inline edit should leave other columns alone")
	}
}

func TestPackagesDelete(t *testing.T) {
	h, db, withSession := newTestPackages(t)
	pkg := createPackage(t, db, "Silver", "wedding", 1)

	req := httptest.NewRequest(http.MethodPost, "/admin/packages/1/delete", nil)
	req = withSession(requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(pkg.ID, 10)}))

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assertRedirect(t, rec, redirectAdminPackages)
	if _, err := store.New(db).GetPackageByID(context.Background(), pkg.ID); err != sql.ErrNoRows {
		t.Errorf("package should be deleted, got err %v", err)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
)

// PackagesHandler handles service package management routes.
type PackagesHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	view           ViewConfig
}

// NewPackagesHandler creates a new PackagesHandler.
func NewPackagesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *PackagesHandler {
	return &PackagesHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		view: ViewConfig{
			Name:          "package",
			BasePath:      redirectAdminPackages,
			PageSize:      AdminItemsPerPage,
			ListColumns:   []string{"name", "category", "price", "order_num"},
			FilterColumns: []string{"category"},
			InlineColumns: []string{"price", "order_num"},
		},
	}
}

// PackagesListData holds data for the packages list template.
type PackagesListData struct {
	Packages       []model.Package
	Categories     []string
	FilterCategory string
	Pagination     Pagination
}

// List handles GET /admin/packages.
func (h *PackagesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))
	filterCategory := r.URL.Query().Get("category")

	totalCount, err := h.queries.CountPackages(r.Context(), filterCategory)
	if err != nil {
		logAndInternalError(w, "failed to count packages", "error", err)
		return
	}

	packages, err := h.queries.ListPackagesPage(r.Context(), store.ListPackagesPageParams{
		Category: filterCategory,
		Limit:    int64(h.view.PageSize),
		Offset:   pageOffset(page, h.view.PageSize),
	})
	if err != nil {
		logAndInternalError(w, "failed to list packages", "error", err)
		return
	}

	err = h.renderer.Render(w, r, "admin/packages_list", render.TemplateData{
		Title: "Packages",
		Data: PackagesListData{
			Packages:       packages,
			Categories:     model.ValidPackageCategories,
			FilterCategory: filterCategory,
			Pagination:     newPagination(page, h.view.PageSize, totalCount, h.view.BasePath, r.URL.Query()),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render packages list", "error", err)
	}
}

// PackageFormData holds data for the package form template.
type PackageFormData struct {
	Package model.Package
	Action  string
	Errors  map[string]string
}

// NewForm handles GET /admin/packages/new.
func (h *PackagesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, PackageFormData{
		Package: model.Package{Category: model.PackageWedding},
		Action:  h.view.BasePath + RouteSuffixNew,
	})
}

// Create handles POST /admin/packages/new.
func (h *PackagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, h.view.BasePath+RouteSuffixNew) {
		return
	}

	pkg := h.packageFromForm(r, model.Package{})
	formData := PackageFormData{
		Package: pkg,
		Action:  h.view.BasePath + RouteSuffixNew,
		Errors:  map[string]string{},
	}

	h.validate(pkg, formData.Errors)
	if len(formData.Errors) > 0 {
		h.renderForm(w, r, formData)
		return
	}

	created, err := h.queries.CreatePackage(r.Context(), store.CreatePackageParams{
		Name:        pkg.Name,
		Category:    pkg.Category,
		Price:       pkg.Price,
		Description: pkg.Description,
		Features:    pkg.Features,
		OrderNum:    pkg.OrderNum,
	})
	if err != nil {
		logAndInternalError(w, "failed to create package", "error", err)
		return
	}

	slog.Info("package created", "package_id", created.ID, "name", created.Name)
	flashSuccess(w, r, h.renderer, h.view.BasePath, "Package added")
}

// EditForm handles GET /admin/packages/{id}/edit.
func (h *PackagesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	pkg, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "package", id,
		func(id int64) (model.Package, error) { return h.queries.GetPackageByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, PackageFormData{
		Package: pkg,
		Action:  h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
	})
}

// Update handles POST /admin/packages/{id}/edit.
func (h *PackagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	pkg, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "package", id,
		func(id int64) (model.Package, error) { return h.queries.GetPackageByID(r.Context(), id) })
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, h.view.BasePath) {
		return
	}

	pkg = h.packageFromForm(r, pkg)
	formData := PackageFormData{
		Package: pkg,
		Action:  h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
		Errors:  map[string]string{},
	}

	h.validate(pkg, formData.Errors)
	if len(formData.Errors) > 0 {
		h.renderForm(w, r, formData)
		return
	}

	_, err := h.queries.UpdatePackage(r.Context(), store.UpdatePackageParams{
		ID:          id,
		Name:        pkg.Name,
		Category:    pkg.Category,
		Price:       pkg.Price,
		Description: pkg.Description,
		Features:    pkg.Features,
		OrderNum:    pkg.OrderNum,
	})
	if err != nil {
		logAndInternalError(w, "failed to update package", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Package updated")
}

// Delete handles POST /admin/packages/{id}/delete.
func (h *PackagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	if _, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "package", id,
		func(id int64) (model.Package, error) { return h.queries.GetPackageByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeletePackage(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete package", "error", err, "package_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Package deleted")
}

// Inline handles POST /admin/packages/{id}/inline, updating only the columns
// the view declares inline-editable.
func (h *PackagesHandler) Inline(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	pkg, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "package", id,
		func(id int64) (model.Package, error) { return h.queries.GetPackageByID(r.Context(), id) })
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, h.view.BasePath) {
		return
	}

	if h.view.AllowsInline("price") {
		if price := r.FormValue("price"); price != "" {
			pkg.Price = price
		}
	}
	if h.view.AllowsInline("order_num") {
		if orderNum, err := strconv.ParseInt(r.FormValue("order_num"), 10, 64); err == nil {
			pkg.OrderNum = orderNum
		}
	}

	_, err := h.queries.UpdatePackage(r.Context(), store.UpdatePackageParams{
		ID:          id,
		Name:        pkg.Name,
		Category:    pkg.Category,
		Price:       pkg.Price,
		Description: pkg.Description,
		Features:    pkg.Features,
		OrderNum:    pkg.OrderNum,
	})
	if err != nil {
		logAndInternalError(w, "failed to update package inline", "error", err, "package_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Package updated")
}

func (h *PackagesHandler) packageFromForm(r *http.Request, pkg model.Package) model.Package {
	pkg.Name = r.FormValue("name")
	pkg.Category = strings.ToLower(r.FormValue("category"))
	pkg.Price = r.FormValue("price")
	pkg.Description = nullString(r.FormValue("description"))
	pkg.Features = r.FormValue("features")

	if orderNum, err := strconv.ParseInt(r.FormValue("order_num"), 10, 64); err == nil {
		pkg.OrderNum = orderNum
	}
	return pkg
}

func (h *PackagesHandler) validate(pkg model.Package, errs map[string]string) {
	if pkg.Name == "" {
		errs["name"] = "Name is required"
	}
	if pkg.Price == "" {
		errs["price"] = "Price is required"
	}
	if !model.IsValidPackageCategory(pkg.Category) {
		errs["category"] = "Category must be prewedding, wedding or event"
	}
}

func (h *PackagesHandler) renderForm(w http.ResponseWriter, r *http.Request, data PackageFormData) {
	title := "Add Package"
	if data.Package.ID != 0 {
		title = "Edit Package"
	}
	if err := h.renderer.Render(w, r, "admin/packages_form", render.TemplateData{Title: title, Data: data}); err != nil {
		logAndInternalError(w, "failed to render package form", "error", err)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/upload"
)

// maxUploadMemory bounds in-memory multipart parsing.
const maxUploadMemory = 32 << 20

// PhotosHandler handles gallery photo management routes.
type PhotosHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	uploads        *upload.Store
	view           ViewConfig
}

// NewPhotosHandler creates a new PhotosHandler.
func NewPhotosHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, uploads *upload.Store) *PhotosHandler {
	return &PhotosHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		uploads:        uploads,
		view: ViewConfig{
			Name:          "photo",
			BasePath:      redirectAdminPhotos,
			PageSize:      AdminItemsPerPage,
			ListColumns:   []string{"filename", "category", "is_featured", "date_uploaded"},
			FilterColumns: []string{"category", "featured"},
			InlineColumns: []string{"category", "is_featured"},
			UploadField:   "image",
			UploadContext: upload.ContextPhoto,
		},
	}
}

// PhotoRow pairs a photo with its thumbnail URL for the list template.
type PhotoRow struct {
	Photo    model.Photo
	ThumbURL string
}

// PhotosListData holds data for the photos list template.
type PhotosListData struct {
	Photos         []PhotoRow
	Categories     []string
	FilterCategory string
	FilterFeatured string
	Pagination     Pagination
}

// List handles GET /admin/photos.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))
	filterCategory := r.URL.Query().Get("category")
	filterFeatured := r.URL.Query().Get("featured")

	var featured sql.NullBool
	switch filterFeatured {
	case "1":
		featured = sql.NullBool{Bool: true, Valid: true}
	case "0":
		featured = sql.NullBool{Bool: false, Valid: true}
	default:
		filterFeatured = ""
	}

	totalCount, err := h.queries.CountPhotos(r.Context(), store.CountPhotosParams{
		Category: filterCategory,
		Featured: featured,
	})
	if err != nil {
		logAndInternalError(w, "failed to count photos", "error", err)
		return
	}

	photos, err := h.queries.ListPhotosPage(r.Context(), store.ListPhotosPageParams{
		Category: filterCategory,
		Featured: featured,
		Limit:    int64(h.view.PageSize),
		Offset:   pageOffset(page, h.view.PageSize),
	})
	if err != nil {
		logAndInternalError(w, "failed to list photos", "error", err)
		return
	}

	categories, err := h.queries.ListPhotoCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list photo categories", "error", err)
		return
	}

	rows := make([]PhotoRow, 0, len(photos))
	for _, p := range photos {
		rows = append(rows, PhotoRow{Photo: p, ThumbURL: upload.URLPrefixGalleryThumb + p.Filename})
	}

	err = h.renderer.Render(w, r, "admin/photos_list", render.TemplateData{
		Title: "Photos",
		Data: PhotosListData{
			Photos:         rows,
			Categories:     categories,
			FilterCategory: filterCategory,
			FilterFeatured: filterFeatured,
			Pagination:     newPagination(page, h.view.PageSize, totalCount, h.view.BasePath, r.URL.Query()),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render photos list", "error", err)
	}
}

// PhotoFormData holds data for the photo form template.
type PhotoFormData struct {
	Photo    model.Photo
	ThumbURL string
	Action   string
	Errors   map[string]string
}

// NewForm handles GET /admin/photos/new.
func (h *PhotosHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, PhotoFormData{Action: h.view.BasePath + RouteSuffixNew})
}

// Create handles POST /admin/photos/new.
func (h *PhotosHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, h.view.BasePath+RouteSuffixNew, "Invalid form data")
		return
	}

	photo := model.Photo{
		Category:    r.FormValue("category"),
		Description: nullString(r.FormValue("description")),
		IsFeatured:  r.FormValue("is_featured") == "1",
	}
	formData := PhotoFormData{
		Photo:  photo,
		Action: h.view.BasePath + RouteSuffixNew,
		Errors: map[string]string{},
	}

	if photo.Category == "" {
		formData.Errors["category"] = "Category is required"
	}

	filename, err := h.uploads.FromRequest(r, h.view.UploadField, h.view.UploadContext)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			formData.Errors["filename"] = verr.Reason
		} else {
			logAndInternalError(w, "failed to store photo upload", "error", err)
			return
		}
	} else if filename == "" {
		formData.Errors["filename"] = "An image file is required"
	}

	if len(formData.Errors) > 0 {
		discardUpload(h.uploads, h.view.UploadContext, filename)
		h.renderForm(w, r, formData)
		return
	}

	created, err := h.queries.CreatePhoto(r.Context(), store.CreatePhotoParams{
		Filename:     filename,
		Category:     photo.Category,
		Description:  photo.Description,
		IsFeatured:   photo.IsFeatured,
		DateUploaded: time.Now(),
	})
	if err != nil {
		discardUpload(h.uploads, h.view.UploadContext, filename)
		if store.IsUniqueViolation(err, "photos.filename") {
			formData.Errors["filename"] = "A photo with this filename already exists"
			h.renderForm(w, r, formData)
			return
		}
		logAndInternalError(w, "failed to create photo", "error", err)
		return
	}

	slog.Info("photo created", "photo_id", created.ID, "filename", created.Filename)
	flashSuccess(w, r, h.renderer, h.view.BasePath, "Photo added")
}

// EditForm handles GET /admin/photos/{id}/edit.
func (h *PhotosHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	photo, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "photo", id,
		func(id int64) (model.Photo, error) { return h.queries.GetPhotoByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, PhotoFormData{
		Photo:    photo,
		ThumbURL: upload.URLPrefixGalleryThumb + photo.Filename,
		Action:   h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
	})
}

// Update handles POST /admin/photos/{id}/edit.
func (h *PhotosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	photo, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "photo", id,
		func(id int64) (model.Photo, error) { return h.queries.GetPhotoByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, h.view.BasePath, "Invalid form data")
		return
	}

	photo.Category = r.FormValue("category")
	photo.Description = nullString(r.FormValue("description"))
	photo.IsFeatured = r.FormValue("is_featured") == "1"

	formData := PhotoFormData{
		Photo:    photo,
		ThumbURL: upload.URLPrefixGalleryThumb + photo.Filename,
		Action:   h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
		Errors:   map[string]string{},
	}

	if photo.Category == "" {
		formData.Errors["category"] = "Category is required"
	}

	oldFilename := photo.Filename
	newFilename, err := h.uploads.FromRequest(r, h.view.UploadField, h.view.UploadContext)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			formData.Errors["filename"] = verr.Reason
		} else {
			logAndInternalError(w, "failed to store photo upload", "error", err)
			return
		}
	}
	if newFilename != "" {
		photo.Filename = newFilename
	}

	if len(formData.Errors) > 0 {
		discardUpload(h.uploads, h.view.UploadContext, newFilename)
		h.renderForm(w, r, formData)
		return
	}

	_, err = h.queries.UpdatePhoto(r.Context(), store.UpdatePhotoParams{
		ID:          id,
		Filename:    photo.Filename,
		Category:    photo.Category,
		Description: photo.Description,
		IsFeatured:  photo.IsFeatured,
	})
	if err != nil {
		discardUpload(h.uploads, h.view.UploadContext, newFilename)
		if store.IsUniqueViolation(err, "photos.filename") {
			formData.Errors["filename"] = "A photo with this filename already exists"
			h.renderForm(w, r, formData)
			return
		}
		logAndInternalError(w, "failed to update photo", "error", err)
		return
	}

	if newFilename != "" && oldFilename != "" {
		if err := h.uploads.Remove(h.view.UploadContext, oldFilename); err != nil {
			slog.Warn("failed to remove replaced photo file", "filename", oldFilename, "error", err)
		}
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Photo updated")
}

// Delete handles POST /admin/photos/{id}/delete.
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	photo, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "photo", id,
		func(id int64) (model.Photo, error) { return h.queries.GetPhotoByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeletePhoto(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete photo", "error", err, "photo_id", id)
		return
	}

	if err := h.uploads.Remove(h.view.UploadContext, photo.Filename); err != nil {
		slog.Warn("failed to remove photo file", "filename", photo.Filename, "error", err)
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Photo deleted")
}

// Inline handles POST /admin/photos/{id}/inline, updating only the columns
// the view declares inline-editable.
func (h *PhotosHandler) Inline(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	photo, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "photo", id,
		func(id int64) (model.Photo, error) { return h.queries.GetPhotoByID(r.Context(), id) })
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, h.view.BasePath) {
		return
	}

	if h.view.AllowsInline("category") {
		if category := r.FormValue("category"); category != "" {
			photo.Category = category
		}
	}
	if h.view.AllowsInline("is_featured") {
		photo.IsFeatured = r.FormValue("is_featured") == "1"
	}

	_, err := h.queries.UpdatePhoto(r.Context(), store.UpdatePhotoParams{
		ID:          id,
		Filename:    photo.Filename,
		Category:    photo.Category,
		Description: photo.Description,
		IsFeatured:  photo.IsFeatured,
	})
	if err != nil {
		logAndInternalError(w, "failed to update photo inline", "error", err, "photo_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Photo updated")
}

func (h *PhotosHandler) renderForm(w http.ResponseWriter, r *http.Request, data PhotoFormData) {
	title := "Add Photo"
	if data.Photo.ID != 0 {
		title = "Edit Photo"
	}
	if err := h.renderer.Render(w, r, "admin/photos_form", render.TemplateData{Title: title, Data: data}); err != nil {
		logAndInternalError(w, "failed to render photo form", "error", err)
	}
}

// urlParamID reads the {id} chi route parameter, returning 0 when absent or
// malformed. Queries treat 0 as not found.
func urlParamID(r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// nullString wraps a form value, mapping empty to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/upload"
)

// SlidesHandler handles hero slide management routes.
type SlidesHandler struct {
	db             *sql.DB
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	uploads        *upload.Store
	view           ViewConfig
}

// NewSlidesHandler creates a new SlidesHandler.
func NewSlidesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, uploads *upload.Store) *SlidesHandler {
	return &SlidesHandler{
		db:             db,
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		uploads:        uploads,
		view: ViewConfig{
			Name:          "hero slide",
			BasePath:      redirectAdminSlides,
			PageSize:      AdminItemsPerPage,
			ListColumns:   []string{"image_filename", "title", "order_num", "is_active"},
			InlineColumns: []string{"order_num", "is_active"},
			UploadField:   "image",
			UploadContext: upload.ContextHero,
		},
	}
}

// SlideRow pairs a slide with its image URL for the list template.
type SlideRow struct {
	Slide    model.HeroSlide
	ImageURL string
}

// SlidesListData holds data for the slides list template.
type SlidesListData struct {
	Slides     []SlideRow
	Pagination Pagination
}

// List handles GET /admin/slides. Slides are few, so the whole set is shown
// in display order on one page.
func (h *SlidesHandler) List(w http.ResponseWriter, r *http.Request) {
	slides, err := h.queries.ListHeroSlides(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list hero slides", "error", err)
		return
	}

	rows := make([]SlideRow, 0, len(slides))
	for _, s := range slides {
		rows = append(rows, SlideRow{Slide: s, ImageURL: upload.URLPrefixHero + s.ImageFilename})
	}

	err = h.renderer.Render(w, r, "admin/slides_list", render.TemplateData{
		Title: "Hero Slides",
		Data: SlidesListData{
			Slides:     rows,
			Pagination: newPagination(1, h.view.PageSize, int64(len(slides)), h.view.BasePath, r.URL.Query()),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render slides list", "error", err)
	}
}

// SlideFormData holds data for the slide form template.
type SlideFormData struct {
	Slide  model.HeroSlide
	Action string
	Errors map[string]string
}

// NewForm handles GET /admin/slides/new.
func (h *SlidesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, SlideFormData{
		Slide: model.HeroSlide{
			CTAText:  model.DefaultSlideCTAText,
			CTAURL:   model.DefaultSlideCTAURL,
			IsActive: true,
		},
		Action: h.view.BasePath + RouteSuffixNew,
	})
}

// Create handles POST /admin/slides/new.
func (h *SlidesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, h.view.BasePath+RouteSuffixNew, "Invalid form data")
		return
	}

	slide := h.slideFromForm(r, model.HeroSlide{})
	formData := SlideFormData{
		Slide:  slide,
		Action: h.view.BasePath + RouteSuffixNew,
		Errors: map[string]string{},
	}

	if slide.Title == "" {
		formData.Errors["title"] = "Title is required"
	}

	filename, err := h.uploads.FromRequest(r, h.view.UploadField, h.view.UploadContext)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			formData.Errors["image_filename"] = verr.Reason
		} else {
			logAndInternalError(w, "failed to store slide image", "error", err)
			return
		}
	} else if filename == "" {
		formData.Errors["image_filename"] = "An image file is required"
	}
	slide.ImageFilename = filename

	if len(formData.Errors) > 0 {
		discardUpload(h.uploads, h.view.UploadContext, filename)
		formData.Slide = slide
		h.renderForm(w, r, formData)
		return
	}

	created, err := h.queries.CreateHeroSlide(r.Context(), store.CreateHeroSlideParams{
		ImageFilename: slide.ImageFilename,
		Title:         slide.Title,
		Subtitle:      slide.Subtitle,
		CTAText:       slide.CTAText,
		CTAURL:        slide.CTAURL,
		OrderNum:      slide.OrderNum,
		IsActive:      slide.IsActive,
	})
	if err != nil {
		discardUpload(h.uploads, h.view.UploadContext, filename)
		if store.IsUniqueViolation(err, "hero_slides.image_filename") {
			formData.Slide = slide
			formData.Errors["image_filename"] = "A slide with this image already exists"
			h.renderForm(w, r, formData)
			return
		}
		logAndInternalError(w, "failed to create hero slide", "error", err)
		return
	}

	slog.Info("hero slide created", "slide_id", created.ID)
	flashSuccess(w, r, h.renderer, h.view.BasePath, "Slide added")
}

// EditForm handles GET /admin/slides/{id}/edit.
func (h *SlidesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	slide, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "hero slide", id,
		func(id int64) (model.HeroSlide, error) { return h.queries.GetHeroSlideByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, SlideFormData{
		Slide:  slide,
		Action: h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
	})
}

// Update handles POST /admin/slides/{id}/edit.
func (h *SlidesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	slide, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "hero slide", id,
		func(id int64) (model.HeroSlide, error) { return h.queries.GetHeroSlideByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, h.view.BasePath, "Invalid form data")
		return
	}

	slide = h.slideFromForm(r, slide)
	formData := SlideFormData{
		Slide:  slide,
		Action: h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
		Errors: map[string]string{},
	}

	if slide.Title == "" {
		formData.Errors["title"] = "Title is required"
	}

	oldFilename := slide.ImageFilename
	newFilename, err := h.uploads.FromRequest(r, h.view.UploadField, h.view.UploadContext)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			formData.Errors["image_filename"] = verr.Reason
		} else {
			logAndInternalError(w, "failed to store slide image", "error", err)
			return
		}
	}
	if newFilename != "" {
		slide.ImageFilename = newFilename
	}

	if len(formData.Errors) > 0 {
		discardUpload(h.uploads, h.view.UploadContext, newFilename)
		formData.Slide = slide
		h.renderForm(w, r, formData)
		return
	}

	_, err = h.queries.UpdateHeroSlide(r.Context(), store.UpdateHeroSlideParams{
		ID:            id,
		ImageFilename: slide.ImageFilename,
		Title:         slide.Title,
		Subtitle:      slide.Subtitle,
		CTAText:       slide.CTAText,
		CTAURL:        slide.CTAURL,
		OrderNum:      slide.OrderNum,
		IsActive:      slide.IsActive,
	})
	if err != nil {
		discardUpload(h.uploads, h.view.UploadContext, newFilename)
		if store.IsUniqueViolation(err, "hero_slides.image_filename") {
			formData.Slide = slide
			formData.Errors["image_filename"] = "A slide with this image already exists"
			h.renderForm(w, r, formData)
			return
		}
		logAndInternalError(w, "failed to update hero slide", "error", err)
		return
	}

	if newFilename != "" && oldFilename != "" {
		if err := h.uploads.Remove(h.view.UploadContext, oldFilename); err != nil {
			slog.Warn("failed to remove replaced slide image", "filename", oldFilename, "error", err)
		}
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Slide updated")
}

// Delete handles POST /admin/slides/{id}/delete.
func (h *SlidesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	slide, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "hero slide", id,
		func(id int64) (model.HeroSlide, error) { return h.queries.GetHeroSlideByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteHeroSlide(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete hero slide", "error", err, "slide_id", id)
		return
	}

	if err := h.uploads.Remove(h.view.UploadContext, slide.ImageFilename); err != nil {
		slog.Warn("failed to remove slide image", "filename", slide.ImageFilename, "error", err)
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Slide deleted")
}

// Inline handles POST /admin/slides/{id}/inline, updating only the columns
// the view declares inline-editable.
func (h *SlidesHandler) Inline(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	if _, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "hero slide", id,
		func(id int64) (model.HeroSlide, error) { return h.queries.GetHeroSlideByID(r.Context(), id) }); !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, h.view.BasePath) {
		return
	}

	// Both columns change together or not at all.
	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		logAndInternalError(w, "failed to begin slide update", "error", err, "slide_id", id)
		return
	}
	defer func() { _ = tx.Rollback() }()
	q := h.queries.WithTx(tx)

	if h.view.AllowsInline("order_num") {
		if orderNum, err := strconv.ParseInt(r.FormValue("order_num"), 10, 64); err == nil {
			if err := q.SetHeroSlideOrder(r.Context(), store.SetHeroSlideOrderParams{ID: id, OrderNum: orderNum}); err != nil {
				logAndInternalError(w, "failed to update slide order", "error", err, "slide_id", id)
				return
			}
		}
	}
	if h.view.AllowsInline("is_active") {
		active := r.FormValue("is_active") == "1"
		if err := q.SetHeroSlideActive(r.Context(), store.SetHeroSlideActiveParams{ID: id, IsActive: active}); err != nil {
			logAndInternalError(w, "failed to update slide active flag", "error", err, "slide_id", id)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		logAndInternalError(w, "failed to commit slide update", "error", err, "slide_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Slide updated")
}

// slideFromForm reads slide fields from the request form, falling back to
// the defaults for empty CTA values.
func (h *SlidesHandler) slideFromForm(r *http.Request, slide model.HeroSlide) model.HeroSlide {
	slide.Title = r.FormValue("title")
	slide.Subtitle = nullString(r.FormValue("subtitle"))
	slide.CTAText = r.FormValue("cta_text")
	slide.CTAURL = r.FormValue("cta_url")
	slide.IsActive = r.FormValue("is_active") == "1"

	if orderNum, err := strconv.ParseInt(r.FormValue("order_num"), 10, 64); err == nil {
		slide.OrderNum = orderNum
	}
	if slide.CTAText == "" {
		slide.CTAText = model.DefaultSlideCTAText
	}
	if slide.CTAURL == "" {
		slide.CTAURL = model.DefaultSlideCTAURL
	}
	return slide
}

func (h *SlidesHandler) renderForm(w http.ResponseWriter, r *http.Request, data SlideFormData) {
	title := "Add Slide"
	if data.Slide.ID != 0 {
		title = "Edit Slide"
	}
	if err := h.renderer.Render(w, r, "admin/slides_form", render.TemplateData{Title: title, Data: data}); err != nil {
		logAndInternalError(w, "failed to render slide form", "error", err)
	}
}

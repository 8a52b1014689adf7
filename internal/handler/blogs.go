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

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/upload"
	"github.com/olegiv/studio-go/internal/util"
)

// BlogsHandler handles blog post management routes.
type BlogsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	uploads        *upload.Store
	view           ViewConfig
}

// NewBlogsHandler creates a new BlogsHandler.
func NewBlogsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, uploads *upload.Store) *BlogsHandler {
	return &BlogsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		uploads:        uploads,
		view: ViewConfig{
			Name:          "blog post",
			BasePath:      redirectAdminBlogs,
			PageSize:      AdminItemsPerPage,
			ListColumns:   []string{"title", "author", "category", "created_at"},
			FilterColumns: []string{"category", "author"},
			UploadField:   "thumbnail",
			UploadContext: upload.ContextBlogThumb,
		},
	}
}

// BlogsListData holds data for the blogs list template.
type BlogsListData struct {
	Blogs          []model.Blog
	Categories     []string
	FilterCategory string
	FilterAuthor   string
	Pagination     Pagination
}

// List handles GET /admin/blogs.
func (h *BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))
	filterCategory := r.URL.Query().Get("category")
	filterAuthor := r.URL.Query().Get("author")

	totalCount, err := h.queries.CountBlogs(r.Context(), store.CountBlogsParams{
		Category: filterCategory,
		Author:   filterAuthor,
	})
	if err != nil {
		logAndInternalError(w, "failed to count blogs", "error", err)
		return
	}

	blogs, err := h.queries.ListBlogsPage(r.Context(), store.ListBlogsPageParams{
		Category: filterCategory,
		Author:   filterAuthor,
		Limit:    int64(h.view.PageSize),
		Offset:   pageOffset(page, h.view.PageSize),
	})
	if err != nil {
		logAndInternalError(w, "failed to list blogs", "error", err)
		return
	}

	categories, err := h.queries.ListBlogCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list blog categories", "error", err)
		return
	}

	err = h.renderer.Render(w, r, "admin/blogs_list", render.TemplateData{
		Title: "Blog Posts",
		Data: BlogsListData{
			Blogs:          blogs,
			Categories:     categories,
			FilterCategory: filterCategory,
			FilterAuthor:   filterAuthor,
			Pagination:     newPagination(page, h.view.PageSize, totalCount, h.view.BasePath, r.URL.Query()),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render blogs list", "error", err)
	}
}

// BlogFormData holds data for the blog form template.
type BlogFormData struct {
	Blog   model.Blog
	Action string
	Errors map[string]string
}

// NewForm handles GET /admin/blogs/new.
func (h *BlogsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, BlogFormData{Action: h.view.BasePath + RouteSuffixNew})
}

// Create handles POST /admin/blogs/new. A blank slug is derived from the
// title; a submitted slug is taken as-is after validation.
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, h.view.BasePath+RouteSuffixNew, "Invalid form data")
		return
	}

	blog := model.Blog{
		Title:    r.FormValue("title"),
		Slug:     r.FormValue("slug"),
		Content:  r.FormValue("content"),
		Author:   r.FormValue("author"),
		Category: r.FormValue("category"),
	}
	formData := BlogFormData{
		Blog:   blog,
		Action: h.view.BasePath + RouteSuffixNew,
		Errors: map[string]string{},
	}

	h.validate(&blog, formData.Errors, true)

	if blog.Slug != "" && formData.Errors["slug"] == "" {
		taken, err := h.queries.SlugExists(r.Context(), blog.Slug)
		if err != nil {
			logAndInternalError(w, "failed to check blog slug", "error", err)
			return
		}
		if taken > 0 {
			formData.Errors["slug"] = "A post with this slug already exists"
		}
	}

	thumbnail, err := h.uploads.FromRequest(r, h.view.UploadField, h.view.UploadContext)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			formData.Errors["thumbnail_filename"] = verr.Reason
		} else {
			logAndInternalError(w, "failed to store blog thumbnail", "error", err)
			return
		}
	}
	blog.ThumbnailFilename = nullString(thumbnail)

	if len(formData.Errors) > 0 {
		discardUpload(h.uploads, h.view.UploadContext, thumbnail)
		formData.Blog = blog
		h.renderForm(w, r, formData)
		return
	}

	now := time.Now()
	created, err := h.queries.CreateBlog(r.Context(), store.CreateBlogParams{
		Title:             blog.Title,
		Slug:              blog.Slug,
		Content:           blog.Content,
		Author:            blog.Author,
		ThumbnailFilename: blog.ThumbnailFilename,
		Category:          blog.Category,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		discardUpload(h.uploads, h.view.UploadContext, thumbnail)
		if store.IsUniqueViolation(err, "blogs.slug") {
			formData.Blog = blog
			formData.Errors["slug"] = "A post with this slug already exists"
			h.renderForm(w, r, formData)
			return
		}
		logAndInternalError(w, "failed to create blog post", "error", err)
		return
	}

	slog.Info("blog post created", "blog_id", created.ID, "slug", created.Slug)
	flashSuccess(w, r, h.renderer, h.view.BasePath, "Post created")
}

// EditForm handles GET /admin/blogs/{id}/edit.
func (h *BlogsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	blog, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "blog post", id,
		func(id int64) (model.Blog, error) { return h.queries.GetBlogByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, BlogFormData{
		Blog:   blog,
		Action: h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
	})
}

// Update handles POST /admin/blogs/{id}/edit. updated_at is refreshed on
// every successful mutation.
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	blog, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "blog post", id,
		func(id int64) (model.Blog, error) { return h.queries.GetBlogByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, h.view.BasePath, "Invalid form data")
		return
	}

	blog.Title = r.FormValue("title")
	blog.Slug = r.FormValue("slug")
	blog.Content = r.FormValue("content")
	blog.Author = r.FormValue("author")
	blog.Category = r.FormValue("category")

	formData := BlogFormData{
		Blog:   blog,
		Action: h.view.BasePath + "/" + strconv.FormatInt(id, 10) + "/edit",
		Errors: map[string]string{},
	}

	h.validate(&blog, formData.Errors, false)

	if blog.Slug != "" && formData.Errors["slug"] == "" {
		taken, err := h.queries.SlugExistsExcluding(r.Context(), store.SlugExistsExcludingParams{
			Slug: blog.Slug,
			ID:   id,
		})
		if err != nil {
			logAndInternalError(w, "failed to check blog slug", "error", err)
			return
		}
		if taken > 0 {
			formData.Errors["slug"] = "A post with this slug already exists"
		}
	}

	oldThumbnail := ""
	if blog.ThumbnailFilename.Valid {
		oldThumbnail = blog.ThumbnailFilename.String
	}
	newThumbnail, err := h.uploads.FromRequest(r, h.view.UploadField, h.view.UploadContext)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			formData.Errors["thumbnail_filename"] = verr.Reason
		} else {
			logAndInternalError(w, "failed to store blog thumbnail", "error", err)
			return
		}
	}
	if newThumbnail != "" {
		blog.ThumbnailFilename = nullString(newThumbnail)
	}

	if len(formData.Errors) > 0 {
		discardUpload(h.uploads, h.view.UploadContext, newThumbnail)
		formData.Blog = blog
		h.renderForm(w, r, formData)
		return
	}

	_, err = h.queries.UpdateBlog(r.Context(), store.UpdateBlogParams{
		ID:                id,
		Title:             blog.Title,
		Slug:              blog.Slug,
		Content:           blog.Content,
		Author:            blog.Author,
		ThumbnailFilename: blog.ThumbnailFilename,
		Category:          blog.Category,
		UpdatedAt:         time.Now(),
	})
	if err != nil {
		discardUpload(h.uploads, h.view.UploadContext, newThumbnail)
		if store.IsUniqueViolation(err, "blogs.slug") {
			formData.Blog = blog
			formData.Errors["slug"] = "A post with this slug already exists"
			h.renderForm(w, r, formData)
			return
		}
		logAndInternalError(w, "failed to update blog post", "error", err)
		return
	}

	if newThumbnail != "" && oldThumbnail != "" {
		if err := h.uploads.Remove(h.view.UploadContext, oldThumbnail); err != nil {
			slog.Warn("failed to remove replaced thumbnail", "filename", oldThumbnail, "error", err)
		}
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Post updated")
}

// Delete handles POST /admin/blogs/{id}/delete.
func (h *BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParamID(r)
	blog, ok := requireEntityWithRedirect(w, r, h.renderer, h.view.BasePath, "blog post", id,
		func(id int64) (model.Blog, error) { return h.queries.GetBlogByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteBlog(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete blog post", "error", err, "blog_id", id)
		return
	}

	if blog.ThumbnailFilename.Valid {
		if err := h.uploads.Remove(h.view.UploadContext, blog.ThumbnailFilename.String); err != nil {
			slog.Warn("failed to remove blog thumbnail", "filename", blog.ThumbnailFilename.String, "error", err)
		}
	}

	flashSuccess(w, r, h.renderer, h.view.BasePath, "Post deleted")
}

// validate checks form fields and, on create, derives a missing slug from
// the title.
func (h *BlogsHandler) validate(blog *model.Blog, errs map[string]string, creating bool) {
	if blog.Title == "" {
		errs["title"] = "Title is required"
	}
	if blog.Content == "" {
		errs["content"] = "Content is required"
	}
	if blog.Author == "" {
		blog.Author = "Admin"
	}
	if blog.Category == "" {
		blog.Category = "Umum"
	}

	if blog.Slug == "" {
		if creating && blog.Title != "" {
			blog.Slug = util.Slugify(blog.Title)
		} else if !creating {
			errs["slug"] = "Slug is required"
		}
	}
	if blog.Slug != "" && !util.IsValidSlug(blog.Slug) {
		errs["slug"] = "Slug may only contain lowercase letters, numbers and hyphens"
	}
}

func (h *BlogsHandler) renderForm(w http.ResponseWriter, r *http.Request, data BlogFormData) {
	title := "Add Post"
	if data.Blog.ID != 0 {
		title = "Edit Post"
	}
	if err := h.renderer.Render(w, r, "admin/blogs_form", render.TemplateData{Title: title, Data: data}); err != nil {
		logAndInternalError(w, "failed to render blog form", "error", err)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/store"
)

// blogExcerptLength caps the plain-text excerpt shown on the blog list.
const blogExcerptLength = 200

// FrontendHandler serves the public site.
type FrontendHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	sanitizer      *bluemonday.Policy
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *FrontendHandler {
	return &FrontendHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

// HomeData holds data for the home page template.
type HomeData struct {
	Slides         []model.HeroSlide
	FeaturedPhotos []model.Photo
	RecentBlogs    []model.Blog
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data HomeData
	var err error

	if data.Slides, err = h.queries.ListActiveHeroSlides(ctx); err != nil {
		logAndInternalError(w, "failed to list hero slides", "error", err)
		return
	}
	if data.FeaturedPhotos, err = h.queries.ListFeaturedPhotos(ctx, HomeFeaturedPhotoLimit); err != nil {
		logAndInternalError(w, "failed to list featured photos", "error", err)
		return
	}
	if data.RecentBlogs, err = h.queries.ListRecentBlogs(ctx, HomeRecentBlogLimit); err != nil {
		logAndInternalError(w, "failed to list recent blogs", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "frontend/home", render.TemplateData{Data: data}); err != nil {
		logAndInternalError(w, "failed to render home page", "error", err)
	}
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	err := h.renderer.Render(w, r, "frontend/about", render.TemplateData{Title: "Tentang Kami"})
	if err != nil {
		logAndInternalError(w, "failed to render about page", "error", err)
	}
}

// GalleryData holds data for the gallery template.
type GalleryData struct {
	Photos         []model.Photo
	Categories     []string
	ActiveCategory string
}

// Gallery handles GET /gallery. A missing, empty, or "All" category shows
// all photos; the category list is distinct and sorted.
func (h *FrontendHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "All" {
		category = ""
	}

	var photos []model.Photo
	var err error
	if category == "" {
		photos, err = h.queries.ListPhotos(r.Context())
	} else {
		photos, err = h.queries.ListPhotosByCategory(r.Context(), category)
	}
	if err != nil {
		logAndInternalError(w, "failed to list gallery photos", "error", err)
		return
	}

	categories, err := h.queries.ListPhotoCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list photo categories", "error", err)
		return
	}

	err = h.renderer.Render(w, r, "frontend/gallery", render.TemplateData{
		Title: "Galeri",
		Data: GalleryData{
			Photos:         photos,
			Categories:     categories,
			ActiveCategory: category,
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render gallery", "error", err)
	}
}

// PackagesData holds data for the packages template.
type PackagesData struct {
	Packages      []model.Package
	Category      string
	CategoryTitle string
}

// Packages handles GET /packages/{category}. The category must be one of the
// three known values, matched case-insensitively; anything else is a 404.
func (h *FrontendHandler) Packages(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !model.IsValidPackageCategory(category) {
		h.NotFound(w, r)
		return
	}

	packages, err := h.queries.ListPackagesByCategory(r.Context(), category)
	if err != nil {
		logAndInternalError(w, "failed to list packages", "error", err, "category", category)
		return
	}

	normalized := strings.ToLower(category)
	title := titleCase(normalized)
	err = h.renderer.Render(w, r, "frontend/packages", render.TemplateData{
		Title: "Paket " + title,
		Data: PackagesData{
			Packages:      packages,
			Category:      normalized,
			CategoryTitle: title,
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render packages", "error", err)
	}
}

// BlogPost pairs a post with its plain-text excerpt for the list template.
type BlogPost struct {
	Blog    model.Blog
	Excerpt string
}

// BlogListData holds data for the blog list template.
type BlogListData struct {
	Posts      []BlogPost
	Pagination Pagination
}

// BlogList handles GET /blog. Six posts per page, newest first; a bad page
// value falls back to page 1 and an out-of-range page renders empty.
func (h *FrontendHandler) BlogList(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	totalCount, err := h.queries.CountBlogs(r.Context(), store.CountBlogsParams{})
	if err != nil {
		logAndInternalError(w, "failed to count blogs", "error", err)
		return
	}

	blogs, err := h.queries.ListBlogsPage(r.Context(), store.ListBlogsPageParams{
		Limit:  BlogPostsPerPage,
		Offset: pageOffset(page, BlogPostsPerPage),
	})
	if err != nil {
		logAndInternalError(w, "failed to list blogs", "error", err)
		return
	}

	posts := make([]BlogPost, 0, len(blogs))
	for _, b := range blogs {
		posts = append(posts, BlogPost{Blog: b, Excerpt: h.excerpt(b.Content)})
	}

	err = h.renderer.Render(w, r, "frontend/blog_list", render.TemplateData{
		Title: "Blog",
		Data: BlogListData{
			Posts:      posts,
			Pagination: newPagination(page, BlogPostsPerPage, totalCount, RouteBlog, r.URL.Query()),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render blog list", "error", err)
	}
}

// BlogDetailData holds data for the blog detail template.
type BlogDetailData struct {
	Blog model.Blog
}

// BlogDetail handles GET /blog/{slug}. The slug must match exactly.
func (h *FrontendHandler) BlogDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	blog, err := h.queries.GetBlogBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get blog post", "error", err, "slug", slug)
		return
	}

	err = h.renderer.Render(w, r, "frontend/blog_detail", render.TemplateData{
		Title: blog.Title,
		Data:  BlogDetailData{Blog: blog},
	})
	if err != nil {
		logAndInternalError(w, "failed to render blog detail", "error", err)
	}
}

// NotFound renders the dedicated 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	err := h.renderer.RenderStatus(w, r, "frontend/not_found", http.StatusNotFound,
		render.TemplateData{Title: "Halaman Tidak Ditemukan"})
	if err != nil {
		http.NotFound(w, r)
	}
}

// titleCase uppercases the first letter of an ASCII word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// excerpt strips markup from rich-text content and truncates it for the
// blog list.
func (h *FrontendHandler) excerpt(content string) string {
	text := strings.TrimSpace(h.sanitizer.Sanitize(content))
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > blogExcerptLength {
		text = text[:blogExcerptLength] + "..."
	}
	return text
}

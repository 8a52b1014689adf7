// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteBlog is the blog route.
	RouteBlog = "/blog"

	// RouteAdmin is the admin dashboard route.
	RouteAdmin = "/admin"
	// RoutePhotos is the photos admin route.
	RoutePhotos = "/photos"
	// RouteBlogs is the blogs admin route.
	RouteBlogs = "/blogs"
	// RouteSlides is the hero slides admin route.
	RouteSlides = "/slides"
	// RoutePackages is the packages admin route.
	RoutePackages = "/packages"
)

// Common redirect targets.
const (
	redirectLogin         = "/login"
	redirectAdmin         = "/admin"
	redirectAdminPhotos   = "/admin/photos"
	redirectAdminBlogs    = "/admin/blogs"
	redirectAdminSlides   = "/admin/slides"
	redirectAdminPackages = "/admin/packages"
)

// AdminItemsPerPage is the page size for admin list views.
const AdminItemsPerPage = 20

// BlogPostsPerPage is the page size for the public blog list.
const BlogPostsPerPage = 6

// HomeFeaturedPhotoLimit caps featured photos shown on the home page.
const HomeFeaturedPhotoLimit = 6

// HomeRecentBlogLimit caps recent posts shown on the home page.
const HomeRecentBlogLimit = 3

// DashboardEventLimit caps recent events shown on the dashboard.
const DashboardEventLimit = 10

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/studio-go/internal/model"
)

const blogColumns = "id, title, slug, content, author, thumbnail_filename, category, created_at, updated_at"

func scanBlog(row *sql.Row) (model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Author,
		&b.ThumbnailFilename, &b.Category, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func collectBlogs(rows *sql.Rows) ([]model.Blog, error) {
	defer func() { _ = rows.Close() }()

	var blogs []model.Blog
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Author,
			&b.ThumbnailFilename, &b.Category, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// CreateBlogParams holds parameters for CreateBlog.
type CreateBlogParams struct {
	Title             string
	Slug              string
	Content           string
	Author            string
	ThumbnailFilename sql.NullString
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateBlog inserts a new blog post and returns it.
func (q *Queries) CreateBlog(ctx context.Context, arg CreateBlogParams) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO blogs (title, slug, content, author, thumbnail_filename, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+blogColumns,
		arg.Title, arg.Slug, arg.Content, arg.Author, arg.ThumbnailFilename,
		arg.Category, arg.CreatedAt, arg.UpdatedAt)
	return scanBlog(row)
}

// GetBlogByID returns the blog post with the given id.
func (q *Queries) GetBlogByID(ctx context.Context, id int64) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id)
	return scanBlog(row)
}

// GetBlogBySlug returns the blog post with the given slug (exact match).
func (q *Queries) GetBlogBySlug(ctx context.Context, slug string) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE slug = ?`, slug)
	return scanBlog(row)
}

// SlugExists returns a non-zero value if a blog post with the slug exists.
func (q *Queries) SlugExists(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs WHERE slug = ?`, slug).Scan(&count)
	return count, err
}

// SlugExistsExcludingParams holds parameters for SlugExistsExcluding.
type SlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// SlugExistsExcluding returns a non-zero value if another blog post already
// uses the slug.
func (q *Queries) SlugExistsExcluding(ctx context.Context, arg SlugExistsExcludingParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs WHERE slug = ? AND id != ?`, arg.Slug, arg.ID).Scan(&count)
	return count, err
}

// ListBlogsPageParams holds parameters for ListBlogsPage.
type ListBlogsPageParams struct {
	Category string // empty matches all categories
	Author   string // empty matches all authors
	Limit    int64
	Offset   int64
}

// ListBlogsPage returns a filtered page of blog posts, newest first.
func (q *Queries) ListBlogsPage(ctx context.Context, arg ListBlogsPageParams) ([]model.Blog, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs
		 WHERE (? = '' OR category = ?)
		   AND (? = '' OR author = ?)
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		arg.Category, arg.Category, arg.Author, arg.Author, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectBlogs(rows)
}

// CountBlogsParams holds parameters for CountBlogs.
type CountBlogsParams struct {
	Category string
	Author   string
}

// CountBlogs counts blog posts matching the admin list filters.
func (q *Queries) CountBlogs(ctx context.Context, arg CountBlogsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs
		 WHERE (? = '' OR category = ?)
		   AND (? = '' OR author = ?)`,
		arg.Category, arg.Category, arg.Author, arg.Author).Scan(&count)
	return count, err
}

// ListRecentBlogs returns up to limit posts ordered by creation date descending.
func (q *Queries) ListRecentBlogs(ctx context.Context, limit int64) ([]model.Blog, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectBlogs(rows)
}

// ListBlogCategories returns the sorted distinct blog categories.
func (q *Queries) ListBlogCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM blogs ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateBlogParams holds parameters for UpdateBlog.
type UpdateBlogParams struct {
	ID                int64
	Title             string
	Slug              string
	Content           string
	Author            string
	ThumbnailFilename sql.NullString
	Category          string
	UpdatedAt         time.Time
}

// UpdateBlog updates a blog post and returns the result. UpdatedAt must be
// refreshed by the caller on every mutation.
func (q *Queries) UpdateBlog(ctx context.Context, arg UpdateBlogParams) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE blogs SET title = ?, slug = ?, content = ?, author = ?,
		        thumbnail_filename = ?, category = ?, updated_at = ?
		 WHERE id = ? RETURNING `+blogColumns,
		arg.Title, arg.Slug, arg.Content, arg.Author, arg.ThumbnailFilename,
		arg.Category, arg.UpdatedAt, arg.ID)
	return scanBlog(row)
}

// DeleteBlog removes a blog post.
func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	return err
}

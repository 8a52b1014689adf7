// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/studio-go/internal/model"
)

const photoColumns = "id, filename, category, description, is_featured, date_uploaded"

func scanPhoto(row *sql.Row) (model.Photo, error) {
	var p model.Photo
	err := row.Scan(&p.ID, &p.Filename, &p.Category, &p.Description, &p.IsFeatured, &p.DateUploaded)
	return p, err
}

func collectPhotos(rows *sql.Rows) ([]model.Photo, error) {
	defer func() { _ = rows.Close() }()

	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.Filename, &p.Category, &p.Description, &p.IsFeatured, &p.DateUploaded); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// CreatePhotoParams holds parameters for CreatePhoto.
type CreatePhotoParams struct {
	Filename     string
	Category     string
	Description  sql.NullString
	IsFeatured   bool
	DateUploaded time.Time
}

// CreatePhoto inserts a new gallery photo and returns it.
func (q *Queries) CreatePhoto(ctx context.Context, arg CreatePhotoParams) (model.Photo, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO photos (filename, category, description, is_featured, date_uploaded)
		 VALUES (?, ?, ?, ?, ?) RETURNING `+photoColumns,
		arg.Filename, arg.Category, arg.Description, arg.IsFeatured, arg.DateUploaded)
	return scanPhoto(row)
}

// GetPhotoByID returns the photo with the given id.
func (q *Queries) GetPhotoByID(ctx context.Context, id int64) (model.Photo, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	return scanPhoto(row)
}

// ListPhotos returns all photos ordered by upload date descending.
func (q *Queries) ListPhotos(ctx context.Context) ([]model.Photo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos ORDER BY date_uploaded DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectPhotos(rows)
}

// ListPhotosByCategory returns photos in a category, newest first.
func (q *Queries) ListPhotosByCategory(ctx context.Context, category string) ([]model.Photo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE category = ? ORDER BY date_uploaded DESC, id DESC`,
		category)
	if err != nil {
		return nil, err
	}
	return collectPhotos(rows)
}

// ListFeaturedPhotos returns up to limit featured photos, newest first.
func (q *Queries) ListFeaturedPhotos(ctx context.Context, limit int64) ([]model.Photo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE is_featured = 1
		 ORDER BY date_uploaded DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectPhotos(rows)
}

// ListPhotosPageParams holds parameters for ListPhotosPage.
type ListPhotosPageParams struct {
	Category string // empty matches all categories
	Featured sql.NullBool
	Limit    int64
	Offset   int64
}

// ListPhotosPage returns a filtered page of photos for the admin list view.
func (q *Queries) ListPhotosPage(ctx context.Context, arg ListPhotosPageParams) ([]model.Photo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos
		 WHERE (? = '' OR category = ?)
		   AND (? IS NULL OR is_featured = ?)
		 ORDER BY date_uploaded DESC, id DESC LIMIT ? OFFSET ?`,
		arg.Category, arg.Category, arg.Featured, arg.Featured, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectPhotos(rows)
}

// CountPhotosParams holds parameters for CountPhotos.
type CountPhotosParams struct {
	Category string
	Featured sql.NullBool
}

// CountPhotos counts photos matching the admin list filters.
func (q *Queries) CountPhotos(ctx context.Context, arg CountPhotosParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM photos
		 WHERE (? = '' OR category = ?)
		   AND (? IS NULL OR is_featured = ?)`,
		arg.Category, arg.Category, arg.Featured, arg.Featured).Scan(&count)
	return count, err
}

// ListPhotoCategories returns the sorted distinct photo categories.
func (q *Queries) ListPhotoCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM photos ORDER BY category ASC`)
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

// UpdatePhotoParams holds parameters for UpdatePhoto.
type UpdatePhotoParams struct {
	ID          int64
	Filename    string
	Category    string
	Description sql.NullString
	IsFeatured  bool
}

// UpdatePhoto updates a photo's editable fields and returns the result.
func (q *Queries) UpdatePhoto(ctx context.Context, arg UpdatePhotoParams) (model.Photo, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE photos SET filename = ?, category = ?, description = ?, is_featured = ?
		 WHERE id = ? RETURNING `+photoColumns,
		arg.Filename, arg.Category, arg.Description, arg.IsFeatured, arg.ID)
	return scanPhoto(row)
}

// DeletePhoto removes a photo record.
func (q *Queries) DeletePhoto(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	return err
}

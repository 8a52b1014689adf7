// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/olegiv/studio-go/internal/model"
)

const heroSlideColumns = "id, image_filename, title, subtitle, cta_text, cta_url, order_num, is_active"

func scanHeroSlide(row *sql.Row) (model.HeroSlide, error) {
	var s model.HeroSlide
	err := row.Scan(&s.ID, &s.ImageFilename, &s.Title, &s.Subtitle,
		&s.CTAText, &s.CTAURL, &s.OrderNum, &s.IsActive)
	return s, err
}

func collectHeroSlides(rows *sql.Rows) ([]model.HeroSlide, error) {
	defer func() { _ = rows.Close() }()

	var slides []model.HeroSlide
	for rows.Next() {
		var s model.HeroSlide
		if err := rows.Scan(&s.ID, &s.ImageFilename, &s.Title, &s.Subtitle,
			&s.CTAText, &s.CTAURL, &s.OrderNum, &s.IsActive); err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

// CreateHeroSlideParams holds parameters for CreateHeroSlide.
type CreateHeroSlideParams struct {
	ImageFilename string
	Title         string
	Subtitle      sql.NullString
	CTAText       string
	CTAURL        string
	OrderNum      int64
	IsActive      bool
}

// CreateHeroSlide inserts a hero slide and returns it.
func (q *Queries) CreateHeroSlide(ctx context.Context, arg CreateHeroSlideParams) (model.HeroSlide, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO hero_slides (image_filename, title, subtitle, cta_text, cta_url, order_num, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING `+heroSlideColumns,
		arg.ImageFilename, arg.Title, arg.Subtitle, arg.CTAText, arg.CTAURL,
		arg.OrderNum, arg.IsActive)
	return scanHeroSlide(row)
}

// GetHeroSlideByID returns the hero slide with the given id.
func (q *Queries) GetHeroSlideByID(ctx context.Context, id int64) (model.HeroSlide, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+heroSlideColumns+` FROM hero_slides WHERE id = ?`, id)
	return scanHeroSlide(row)
}

// ListActiveHeroSlides returns active slides in display order.
func (q *Queries) ListActiveHeroSlides(ctx context.Context) ([]model.HeroSlide, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+heroSlideColumns+` FROM hero_slides
		 WHERE is_active = 1 ORDER BY order_num ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectHeroSlides(rows)
}

// ListHeroSlides returns all slides in display order for the admin list.
func (q *Queries) ListHeroSlides(ctx context.Context) ([]model.HeroSlide, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+heroSlideColumns+` FROM hero_slides ORDER BY order_num ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectHeroSlides(rows)
}

// CountHeroSlides counts hero slides, optionally only active ones.
func (q *Queries) CountHeroSlides(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM hero_slides`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	var count int64
	err := q.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

// UpdateHeroSlideParams holds parameters for UpdateHeroSlide.
type UpdateHeroSlideParams struct {
	ID            int64
	ImageFilename string
	Title         string
	Subtitle      sql.NullString
	CTAText       string
	CTAURL        string
	OrderNum      int64
	IsActive      bool
}

// UpdateHeroSlide updates a hero slide and returns the result.
func (q *Queries) UpdateHeroSlide(ctx context.Context, arg UpdateHeroSlideParams) (model.HeroSlide, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE hero_slides SET image_filename = ?, title = ?, subtitle = ?,
		        cta_text = ?, cta_url = ?, order_num = ?, is_active = ?
		 WHERE id = ? RETURNING `+heroSlideColumns,
		arg.ImageFilename, arg.Title, arg.Subtitle, arg.CTAText, arg.CTAURL,
		arg.OrderNum, arg.IsActive, arg.ID)
	return scanHeroSlide(row)
}

// SetHeroSlideOrderParams holds parameters for SetHeroSlideOrder.
type SetHeroSlideOrderParams struct {
	ID       int64
	OrderNum int64
}

// SetHeroSlideOrder updates only the display position of a slide.
func (q *Queries) SetHeroSlideOrder(ctx context.Context, arg SetHeroSlideOrderParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE hero_slides SET order_num = ? WHERE id = ?`, arg.OrderNum, arg.ID)
	return err
}

// SetHeroSlideActiveParams holds parameters for SetHeroSlideActive.
type SetHeroSlideActiveParams struct {
	ID       int64
	IsActive bool
}

// SetHeroSlideActive toggles whether a slide is shown on the home page.
func (q *Queries) SetHeroSlideActive(ctx context.Context, arg SetHeroSlideActiveParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE hero_slides SET is_active = ? WHERE id = ?`, arg.IsActive, arg.ID)
	return err
}

// DeleteHeroSlide removes a hero slide.
func (q *Queries) DeleteHeroSlide(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = ?`, id)
	return err
}

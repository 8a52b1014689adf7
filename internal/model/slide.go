// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "database/sql"

// Default call-to-action values for new hero slides.
const (
	DefaultSlideCTAText = "Lihat Portofolio"
	DefaultSlideCTAURL  = "/gallery"
)

// HeroSlide represents a home-page hero carousel entry. Only active slides
// are shown publicly, ordered by OrderNum ascending.
type HeroSlide struct {
	ID            int64
	Title         string
	Subtitle      sql.NullString
	ImageFilename string
	OrderNum      int64
	IsActive      bool
	CTAText       string
	CTAURL        string
}

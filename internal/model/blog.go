// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Blog represents a blog post. Content is rich HTML authored by a trusted
// editor and is stored verbatim.
type Blog struct {
	ID                int64
	Title             string
	Slug              string
	Content           string
	Author            string
	ThumbnailFilename sql.NullString
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

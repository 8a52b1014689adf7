// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Photo represents a gallery image. Filename is the generated name of the
// stored file and is unique across all photos.
type Photo struct {
	ID           int64
	Filename     string
	Category     string
	Description  sql.NullString
	IsFeatured   bool
	DateUploaded time.Time
}

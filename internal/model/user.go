// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain records persisted by the studio site:
// AdminUser, Photo, Blog, HeroSlide, and Package, plus the upload-context
// configuration shared by the admin views.
package model

import "time"

// AdminUser represents a back-office account. It is a pure data record;
// credential verification lives in the auth package.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

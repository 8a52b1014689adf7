// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "github.com/olegiv/studio-go/internal/upload"

// ViewConfig describes an admin CRUD view: what the list shows, which
// columns can be filtered and edited in place, and whether a form field is
// backed by a file upload. Each entity handler owns one.
type ViewConfig struct {
	Name          string
	BasePath      string
	PageSize      int
	ListColumns   []string
	FilterColumns []string
	InlineColumns []string

	// UploadField names the form field bound to a stored image, empty when
	// the entity has no image.
	UploadField   string
	UploadContext upload.Context
}

// AllowsInline reports whether a column is declared inline-editable.
func (vc ViewConfig) AllowsInline(column string) bool {
	for _, c := range vc.InlineColumns {
		if c == column {
			return true
		}
	}
	return false
}

// AllowsFilter reports whether a column is declared filterable.
func (vc ViewConfig) AllowsFilter(column string) bool {
	for _, c := range vc.FilterColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "testing"

func TestViewConfigAllows(t *testing.T) {
	vc := ViewConfig{
		Name:          "photo",
		BasePath:      "/admin/photos",
		FilterColumns: []string{"category", "is_featured"},
		InlineColumns: []string{"category"},
	}

	if !vc.AllowsFilter("category") {
		t.Error("category should be filterable")
	}
	if !vc.AllowsFilter("is_featured") {
		t.Error("is_featured should be filterable")
	}
	if vc.AllowsFilter("filename") {
		t.Error("filename should not be filterable")
	}

	if !vc.AllowsInline("category") {
		t.Error("category should be inline-editable")
	}
	if vc.AllowsInline("is_featured") {
		t.Error("is_featured should not be inline-editable here")
	}

	var empty ViewConfig
	if empty.AllowsInline("anything") || empty.AllowsFilter("anything") {
		t.Error("empty config should allow nothing")
	}
}

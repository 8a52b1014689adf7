// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"strings"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"7", 7},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"2.5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parsePage(tt.raw); got != tt.want {
				t.Errorf("parsePage(%q) = %d; want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(2, 6, 13, "/blog", nil)

	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d; want 3", p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Errorf("page 2 of 3 should have both prev and next, got prev=%v next=%v", p.HasPrev, p.HasNext)
	}
	if p.PrevURL != "/blog?page=1" {
		t.Errorf("PrevURL = %q; want %q", p.PrevURL, "/blog?page=1")
	}
	if p.NextURL != "/blog?page=3" {
		t.Errorf("NextURL = %q; want %q", p.NextURL, "/blog?page=3")
	}
}

func TestNewPagination_Bounds(t *testing.T) {
	first := newPagination(1, 6, 13, "/blog", nil)
	if first.HasPrev {
		t.Error("first page should have no prev")
	}

	last := newPagination(3, 6, 13, "/blog", nil)
	if last.HasNext {
		t.Error("last page should have no next")
	}

	empty := newPagination(1, 6, 0, "/blog", nil)
	if empty.TotalPages != 1 {
		t.Errorf("empty list TotalPages = %d; want 1", empty.TotalPages)
	}
	if empty.HasPrev || empty.HasNext {
		t.Error("empty list should have no navigation")
	}
}

func TestNewPagination_PreservesFilters(t *testing.T) {
	query := url.Values{"category": {"wedding"}, "page": {"2"}}
	p := newPagination(2, 20, 50, "/admin/photos", query)

	if !strings.Contains(p.NextURL, "category=wedding") {
		t.Errorf("NextURL %q should keep the category filter", p.NextURL)
	}
	if !strings.Contains(p.NextURL, "page=3") {
		t.Errorf("NextURL %q should point at page 3", p.NextURL)
	}
	if strings.Count(p.NextURL, "page=") != 1 {
		t.Errorf("NextURL %q should carry exactly one page parameter", p.NextURL)
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page, perPage int
		want          int64
	}{
		{1, 6, 0},
		{2, 6, 6},
		{3, 20, 40},
	}

	for _, tt := range tests {
		if got := pageOffset(tt.page, tt.perPage); got != tt.want {
			t.Errorf("pageOffset(%d, %d) = %d; want %d", tt.page, tt.perPage, got, tt.want)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"strconv"
)

// Pagination carries page navigation state for list templates.
type Pagination struct {
	Page       int
	TotalPages int
	TotalCount int64
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

// parsePage reads a 1-based page number from a query value. Non-numeric or
// non-positive input falls back to page 1.
func parsePage(raw string) int {
	page := 1
	if raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	return page
}

// newPagination builds navigation state for a list view. basePath is the
// list URL; extra query parameters (filters) are preserved on the page links.
func newPagination(page, perPage int, totalCount int64, basePath string, query url.Values) Pagination {
	totalPages := int((totalCount + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	p := Pagination{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	pageURL := func(n int) string {
		q := url.Values{}
		for k, vs := range query {
			if k == "page" {
				continue
			}
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("page", strconv.Itoa(n))
		return basePath + "?" + q.Encode()
	}

	if p.HasPrev {
		p.PrevURL = pageURL(page - 1)
	}
	if p.HasNext {
		p.NextURL = pageURL(page + 1)
	}
	return p
}

// pageOffset converts a 1-based page number into a query offset.
func pageOffset(page, perPage int) int64 {
	return int64(page-1) * int64(perPage)
}

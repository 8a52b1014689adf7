// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
)

// Service package categories.
const (
	PackagePrewedding = "prewedding"
	PackageWedding    = "wedding"
	PackageEvent      = "event"
)

// ValidPackageCategories lists the accepted package categories.
var ValidPackageCategories = []string{PackagePrewedding, PackageWedding, PackageEvent}

// IsValidPackageCategory reports whether category is one of the three
// accepted values. The comparison is case-insensitive.
func IsValidPackageCategory(category string) bool {
	for _, c := range ValidPackageCategories {
		if strings.EqualFold(category, c) {
			return true
		}
	}
	return false
}

// Package represents a service package. Price is a display string, not a
// numeric amount. Features holds one feature per line.
type Package struct {
	ID          int64
	Name        string
	Price       string
	Category    string
	Description sql.NullString
	Features    string
	OrderNum    int64
}

// FeatureList parses Features into an ordered list, trimming whitespace and
// dropping blank lines.
func (p *Package) FeatureList() []string {
	var features []string
	for _, line := range strings.Split(p.Features, "\n") {
		if f := strings.TrimSpace(line); f != "" {
			features = append(features, f)
		}
	}
	return features
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package upload stores admin-submitted images on disk and generates
// collision-resistant filenames for them.
package upload

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a user-supplied filename to a safe ASCII form:
// accents are stripped, path separators and whitespace become underscores,
// and any remaining unsafe characters are removed. The result may be empty.
func SanitizeFilename(name string) string {
	// Drop any directory components the client may have sent.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if ascii, _, err := transform.String(t, name); err == nil {
		name = ascii
	}

	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// GenerateFilename returns a stored filename for an upload: a 16-hex-char
// random token, an underscore, then the sanitized original base name with
// its extension preserved. An unusable original name yields just the token
// and underscore.
func GenerateFilename(original string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	safe := SanitizeFilename(original)
	ext := filepath.Ext(safe)
	base := strings.TrimSuffix(safe, ext)

	return token + "_" + base + ext
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// AllowedImageExtensions lists the upload extensions accepted for every
// content type.
var AllowedImageExtensions = []string{"jpg", "jpeg", "png", "webp"}

// PhotoMaxDimension is the largest allowed edge for gallery photos. Larger
// uploads are downscaled proportionally to fit.
const PhotoMaxDimension = 3840

// PhotoThumbnailSize is the edge length of generated gallery thumbnails.
const PhotoThumbnailSize = 100

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/studio-go/internal/model"
)

// Context identifies which kind of image is being stored. Each context has
// its own directory under the uploads root and its own processing rules.
type Context int

const (
	// ContextPhoto is a gallery photo: auto-rotated, downscaled, thumbnailed.
	ContextPhoto Context = iota
	// ContextBlogThumb is a blog post thumbnail, stored as received.
	ContextBlogThumb
	// ContextHero is a hero slide image, stored as received.
	ContextHero
)

// Directory names under the uploads root, one per context.
const (
	DirGallery = "gallery_images"
	DirBlog    = "blog_images"
	DirHero    = "hero_images"

	// ThumbsSubdir holds generated gallery thumbnails.
	ThumbsSubdir = "thumbs"
)

// Relative URL prefixes for serving stored files. Injected into templates
// as globals.
const (
	URLPrefixGallery      = "/static/uploads/" + DirGallery + "/"
	URLPrefixGalleryThumb = "/static/uploads/" + DirGallery + "/" + ThumbsSubdir + "/"
	URLPrefixBlog         = "/static/uploads/" + DirBlog + "/"
	URLPrefixHero         = "/static/uploads/" + DirHero + "/"
)

// Dir returns the directory name for the context.
func (c Context) Dir() string {
	switch c {
	case ContextBlogThumb:
		return DirBlog
	case ContextHero:
		return DirHero
	default:
		return DirGallery
	}
}

// URLPrefix returns the public URL prefix for files stored in the context.
func (c Context) URLPrefix() string {
	switch c {
	case ContextBlogThumb:
		return URLPrefixBlog
	case ContextHero:
		return URLPrefixHero
	default:
		return URLPrefixGallery
	}
}

// ValidationError reports a rejected upload. It is rendered as a
// field-level form error, not a server failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Store writes uploaded images to disk.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the uploads directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// EnsureDirs creates the per-context directories and the gallery thumbnail
// directory. Called at startup; failure there is fatal.
func (s *Store) EnsureDirs() error {
	dirs := []string{
		filepath.Join(s.root, DirGallery),
		filepath.Join(s.root, DirGallery, ThumbsSubdir),
		filepath.Join(s.root, DirBlog),
		filepath.Join(s.root, DirHero),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return nil
}

// AllowedExtension reports whether the filename carries a permitted image
// extension. Matching ignores case.
func AllowedExtension(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range model.AllowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Save validates and stores one uploaded image, returning the generated
// filename. Photos are re-encoded: EXIF orientation applied, downscaled to
// fit within the maximum dimension, and a square thumbnail written alongside.
// Blog thumbnails and hero images are stored byte-for-byte as received.
// The file is on disk before the caller commits any database row.
func (s *Store) Save(ctx Context, originalName string, r io.Reader) (string, error) {
	if !AllowedExtension(originalName) {
		return "", &ValidationError{Reason: "File type not allowed. Use jpg, jpeg, png or webp."}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", &ValidationError{Reason: "Uploaded file is empty."}
	}

	filename := GenerateFilename(originalName)
	path := filepath.Join(s.root, ctx.Dir(), filename)

	if ctx != ContextPhoto {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("save upload: %w", err)
		}
		return filename, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &ValidationError{Reason: "File is not a readable image."}
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	if bounds.Dx() > model.PhotoMaxDimension || bounds.Dy() > model.PhotoMaxDimension {
		img = imaging.Fit(img, model.PhotoMaxDimension, model.PhotoMaxDimension, imaging.Lanczos)
	}

	encoded, err := encodeImage(img, filename)
	if err != nil {
		return "", fmt.Errorf("encode photo: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}

	thumb := imaging.Fill(img, model.PhotoThumbnailSize, model.PhotoThumbnailSize, imaging.Center, imaging.Lanczos)
	thumbData, err := encodeImage(thumb, filename)
	if err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	thumbPath := filepath.Join(s.root, ctx.Dir(), ThumbsSubdir, filename)
	if err := os.WriteFile(thumbPath, thumbData, 0644); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return filename, nil
}

// Remove deletes a stored file (and its thumbnail for photos). Missing files
// are not an error; entity deletion is best effort about its image.
func (s *Store) Remove(ctx Context, filename string) error {
	safe := filepath.Base(filename)
	if safe == "." || safe == ".." || safe == "" {
		return fmt.Errorf("invalid filename")
	}

	path := filepath.Join(s.root, ctx.Dir(), safe)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if ctx == ContextPhoto {
		thumbPath := filepath.Join(s.root, ctx.Dir(), ThumbsSubdir, safe)
		if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// FromRequest reads the named multipart file field and stores it. A missing
// or empty field returns ("", nil) so optional image fields stay optional.
func (s *Store) FromRequest(r *http.Request, field string, ctx Context) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		return "", nil
	}
	return s.Save(ctx, header.Filename, file)
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image matching the stored filename's extension.
// WebP encoding is not available in pure Go, so webp photos come back out
// as JPEG bytes under their original extension.
func encodeImage(img image.Image, filename string) ([]byte, error) {
	var buf bytes.Buffer

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

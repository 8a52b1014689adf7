// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/upload"
)

// testJPEG returns encoded JPEG bytes for a small generated image.
func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 50, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 6), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

// multipartRequest builds a POST request with form fields and an optional
// file part.
func multipartRequest(t *testing.T, target string, fields url.Values, fileField, filename string, fileData []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				t.Fatalf("write field %s: %v", key, err)
			}
		}
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestPhotos(t *testing.T) (*PhotosHandler, *sql.DB, *upload.Store, func(r *http.Request) *http.Request) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)

	uploads := upload.NewStore(t.TempDir())
	if err := uploads.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	withSession := func(r *http.Request) *http.Request {
		return requestWithSession(sm, r)
	}
	return NewPhotosHandler(db, renderer, sm, uploads), db, uploads, withSession
}

func TestNewPhotosHandler(t *testing.T) {
	h, _, _, _ := newTestPhotos(t)

	if h.queries == nil {
		t.Error("queries should not be nil")
	}
	if h.view.BasePath != redirectAdminPhotos {
		t.Errorf("BasePath = %q", h.view.BasePath)
	}
	if h.view.UploadField != "image" {
		t.Errorf("UploadField = %q", h.view.UploadField)
	}
	if !h.view.AllowsInline("is_featured") {
		t.Error("is_featured should be inline-editable")
	}
}

func TestPhotosCreate(t *testing.T) {
	h, db, _, withSession := newTestPhotos(t)

	req := withSession(multipartRequest(t, "/admin/photos/new", url.Values{
		"category":    {"wedding"},
		"is_featured": {"1"},
	}, "image", "ceremony.jpg", testJPEG(t)))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertRedirect(t, rec, redirectAdminPhotos)

	photos, err := store.New(db).ListPhotos(context.Background())
	if err != nil {
		t.Fatalf("ListPhotos: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("got %d photos, want 1", len(photos))
	}
	p := photos[0]
	if p.Category != "wedding" || !p.IsFeatured {
		t.Errorf("unexpected photo: %+v", p)
	}
	if !strings.HasSuffix(p.Filename, "_ceremony.jpg") {
		t.Errorf("stored filename = %q; want token plus original name", p.Filename)
	}
	if p.DateUploaded.IsZero() {
		t.Error("DateUploaded should be set at creation")
	}
}

func TestPhotosCreate_MissingImage(t *testing.T) {
	h, db, _, withSession := newTestPhotos(t)

	req := withSession(multipartRequest(t, "/admin/photos/new", url.Values{
		"category": {"wedding"},
	}, "", "", nil))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "An image file is required") {
		t.Error("form should re-render with a filename error")
	}

	count, err := store.New(db).CountPhotos(context.Background(), store.CountPhotosParams{})
	if err != nil {
		t.Fatalf("CountPhotos: %v", err)
	}
	if count != 0 {
		t.Error("no photo row should be created without an image")
	}
}

func TestPhotosCreate_BadFileType(t *testing.T) {
	h, _, _, withSession := newTestPhotos(t)

	req := withSession(multipartRequest(t, "/admin/photos/new", url.Values{
		"category": {"wedding"},
	}, "image", "notes.txt", []byte("plain text")))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "File type not allowed") {
		t.Error("form should re-render with the upload validation reason")
	}
}

func TestPhotosCreate_RejectedUploadRemoved(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)

	dir := t.TempDir()
	uploads := upload.NewStore(dir)
	if err := uploads.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	h := NewPhotosHandler(db, renderer, sm, uploads)

	// Missing category rejects the submission after the file upload.
	req := requestWithSession(sm, multipartRequest(t, "/admin/photos/new", url.Values{},
		"image", "ceremony.jpg", testJPEG(t)))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Category is required") {
		t.Error("form should re-render with a category error")
	}

	entries, err := os.ReadDir(filepath.Join(dir, upload.DirGallery))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("rejected submission left %s on disk", e.Name())
		}
	}
}

func TestPhotosInline(t *testing.T) {
	h, db, _, withSession := newTestPhotos(t)

	q := store.New(db)
	photo, err := q.CreatePhoto(context.Background(), store.CreatePhotoParams{
		Filename:     "a.jpg",
		Category:     "wedding",
		DateUploaded: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}

	form := url.Values{"category": {"event"}, "is_featured": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/photos/1/inline", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withSession(requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(photo.ID, 10)}))

	rec := httptest.NewRecorder()
	h.Inline(rec, req)

	assertRedirect(t, rec, redirectAdminPhotos)

	got, err := q.GetPhotoByID(context.Background(), photo.ID)
	if err != nil {
		t.Fatalf("GetPhotoByID: %v", err)
	}
	if got.Category != "event" || !got.IsFeatured {
		t.Errorf("inline update not applied: %+v", got)
	}
}

func TestPhotosDelete(t *testing.T) {
	h, db, _, withSession := newTestPhotos(t)

	q := store.New(db)
	photo, err := q.CreatePhoto(context.Background(), store.CreatePhotoParams{
		Filename:     "gone.jpg",
		Category:     "wedding",
		DateUploaded: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/photos/1/delete", nil)
	req = withSession(requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(photo.ID, 10)}))

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assertRedirect(t, rec, redirectAdminPhotos)
	if _, err := q.GetPhotoByID(context.Background(), photo.ID); err != sql.ErrNoRows {
		t.Errorf("photo should be deleted, got err %v", err)
	}
}

func TestPhotosDelete_Unknown(t *testing.T) {
	h, _, _, withSession := newTestPhotos(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/photos/999/delete", nil)
	req = withSession(requestWithURLParams(req, map[string]string{"id": "999"}))

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assertRedirect(t, rec, redirectAdminPhotos)
}

func TestPhotosList_Filters(t *testing.T) {
	h, db, _, withSession := newTestPhotos(t)

	q := store.New(db)
	for _, p := range []struct {
		filename, category string
		featured           bool
	}{
		{"w1.jpg", "wedding", true},
		{"w2.jpg", "wedding", false},
		{"e1.jpg", "event", false},
	} {
		if _, err := q.CreatePhoto(context.Background(), store.CreatePhotoParams{
			Filename:     p.filename,
			Category:     p.category,
			IsFeatured:   p.featured,
			DateUploaded: time.Now(),
		}); err != nil {
			t.Fatalf("CreatePhoto: %v", err)
		}
	}

	req := withSession(httptest.NewRequest(http.MethodGet, "/admin/photos?category=wedding&featured=1", nil))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "w1.jpg") {
		t.Error("filtered list should include the matching photo")
	}
	if strings.Contains(body, "w2.jpg") || strings.Contains(body, "e1.jpg") {
		t.Error("filtered list should exclude non-matching photos")
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/store"
)

func testLogger(t *testing.T) (*slog.Logger, *store.Queries) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, db)), store.New(db)
}

func TestEventLogHandler_MirrorsWarnings(t *testing.T) {
	logger, q := testLogger(t)

	logger.Info("routine startup")
	logger.Warn("disk almost full", "path", "/data")
	logger.Error("upload failed")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (info should not be recorded)", len(events))
	}

	byMessage := map[string]model.Event{}
	for _, e := range events {
		byMessage[e.Message] = e
	}
	if e, ok := byMessage["disk almost full"]; !ok {
		t.Error("warning was not recorded")
	} else {
		if e.Level != model.EventLevelWarning {
			t.Errorf("warning level = %q; want %q", e.Level, model.EventLevelWarning)
		}
		if e.Metadata != `{"path":"/data"}` {
			t.Errorf("metadata = %q; want path attribute", e.Metadata)
		}
	}
	if e, ok := byMessage["upload failed"]; !ok {
		t.Error("error was not recorded")
	} else {
		if e.Level != model.EventLevelError {
			t.Errorf("error level = %q; want %q", e.Level, model.EventLevelError)
		}
		if e.Metadata != "{}" {
			t.Errorf("metadata = %q; want {}", e.Metadata)
		}
	}
}

func TestEventLogHandler_WithAttrs(t *testing.T) {
	logger, q := testLogger(t)

	logger.With("component", "scheduler").Warn("job overran")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Message != "job overran" {
		t.Errorf("message = %q", events[0].Message)
	}
}

func TestSlogLevelToEventLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
	}

	for _, tt := range tests {
		if got := slogLevelToEventLevel(tt.level); got != tt.want {
			t.Errorf("slogLevelToEventLevel(%v) = %q; want %q", tt.level, got, tt.want)
		}
	}
}

func TestEscapeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`with "quotes"`, `with \"quotes\"`},
		{"tab\there", `tab\there`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := escapeJSON(tt.in); got != tt.want {
			t.Errorf("escapeJSON(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event log levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event is an application log entry mirrored into the database so recent
// warnings and errors are visible on the admin dashboard.
type Event struct {
	ID        int64
	Level     string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

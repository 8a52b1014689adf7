// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/studio-go/internal/model"
)

const adminUserColumns = "id, username, password_hash, created_at, updated_at"

func scanAdminUser(row *sql.Row) (model.AdminUser, error) {
	var u model.AdminUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateAdminUserParams holds parameters for CreateAdminUser.
type CreateAdminUserParams struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAdminUser inserts a new admin account and returns it.
func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO admin_users (username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?) RETURNING `+adminUserColumns,
		arg.Username, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	return scanAdminUser(row)
}

// GetAdminUserByID returns the admin account with the given id.
func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE id = ?`, id)
	return scanAdminUser(row)
}

// GetAdminUserByUsername returns the admin account with the given username.
// The lookup is a case-sensitive exact match.
func (q *Queries) GetAdminUserByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE username = ?`, username)
	return scanAdminUser(row)
}

// UpdateAdminUserPasswordParams holds parameters for UpdateAdminUserPassword.
type UpdateAdminUserPasswordParams struct {
	ID           int64
	PasswordHash string
	UpdatedAt    time.Time
}

// UpdateAdminUserPassword replaces the stored password hash.
func (q *Queries) UpdateAdminUserPassword(ctx context.Context, arg UpdateAdminUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

// UpdateAdminUserUsernameParams holds parameters for UpdateAdminUserUsername.
type UpdateAdminUserUsernameParams struct {
	ID        int64
	Username  string
	UpdatedAt time.Time
}

// UpdateAdminUserUsername renames an admin account.
func (q *Queries) UpdateAdminUserUsername(ctx context.Context, arg UpdateAdminUserUsernameParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admin_users SET username = ?, updated_at = ? WHERE id = ?`,
		arg.Username, arg.UpdatedAt, arg.ID)
	return err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/store"
)

// provisionMode selects an admin account maintenance action run from the CLI.
type provisionMode int

const (
	provisionNone provisionMode = iota
	provisionCreateAdmin
	provisionChangePassword
	provisionChangeUsername
)

const minPasswordLength = 8

// runProvisioning executes the selected admin maintenance action. These run
// against the database directly and are not reachable over HTTP.
func runProvisioning(db *sql.DB, mode provisionMode) error {
	queries := store.New(db)
	in := bufio.NewReader(os.Stdin)

	switch mode {
	case provisionCreateAdmin:
		return createAdminAccount(queries, in)
	case provisionChangePassword:
		return changeAdminPassword(queries, in)
	case provisionChangeUsername:
		return changeAdminUsername(queries, in)
	default:
		return nil
	}
}

func createAdminAccount(queries *store.Queries, in *bufio.Reader) error {
	username, err := prompt(in, "Username: ")
	if err != nil {
		return err
	}
	if username == "" {
		return errors.New("username must not be empty")
	}

	password, err := prompt(in, "Password: ")
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if store.IsUniqueViolation(err, "admin_users.username") {
			return fmt.Errorf("username %q is already taken", username)
		}
		return fmt.Errorf("creating admin: %w", err)
	}

	fmt.Printf("Admin account %q created (id %d)\n", user.Username, user.ID)
	return nil
}

func changeAdminPassword(queries *store.Queries, in *bufio.Reader) error {
	user, err := lookupAdmin(queries, in)
	if err != nil {
		return err
	}

	password, err := prompt(in, "New password: ")
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	err = queries.UpdateAdminUserPassword(context.Background(), store.UpdateAdminUserPasswordParams{
		ID:           user.ID,
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	fmt.Printf("Password updated for %q\n", user.Username)
	return nil
}

func changeAdminUsername(queries *store.Queries, in *bufio.Reader) error {
	user, err := lookupAdmin(queries, in)
	if err != nil {
		return err
	}

	newUsername, err := prompt(in, "New username: ")
	if err != nil {
		return err
	}
	if newUsername == "" {
		return errors.New("username must not be empty")
	}

	err = queries.UpdateAdminUserUsername(context.Background(), store.UpdateAdminUserUsernameParams{
		ID:        user.ID,
		Username:  newUsername,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		if store.IsUniqueViolation(err, "admin_users.username") {
			return fmt.Errorf("username %q is already taken", newUsername)
		}
		return fmt.Errorf("updating username: %w", err)
	}

	fmt.Printf("Username changed from %q to %q\n", user.Username, newUsername)
	return nil
}

func lookupAdmin(queries *store.Queries, in *bufio.Reader) (model.AdminUser, error) {
	username, err := prompt(in, "Username: ")
	if err != nil {
		return model.AdminUser{}, err
	}

	user, err := queries.GetAdminUserByUsername(context.Background(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AdminUser{}, fmt.Errorf("no admin account named %q", username)
		}
		return model.AdminUser{}, fmt.Errorf("looking up admin: %w", err)
	}
	return user, nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

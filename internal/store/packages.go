// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/olegiv/studio-go/internal/model"
)

const packageColumns = "id, name, category, price, description, features, order_num"

func scanPackage(row *sql.Row) (model.Package, error) {
	var p model.Package
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description,
		&p.Features, &p.OrderNum)
	return p, err
}

func collectPackages(rows *sql.Rows) ([]model.Package, error) {
	defer func() { _ = rows.Close() }()

	var packages []model.Package
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description,
			&p.Features, &p.OrderNum); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

// CreatePackageParams holds parameters for CreatePackage.
type CreatePackageParams struct {
	Name        string
	Category    string
	Price       string
	Description sql.NullString
	Features    string
	OrderNum    int64
}

// CreatePackage inserts a service package and returns it.
func (q *Queries) CreatePackage(ctx context.Context, arg CreatePackageParams) (model.Package, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO packages (name, category, price, description, features, order_num)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING `+packageColumns,
		arg.Name, arg.Category, arg.Price, arg.Description, arg.Features, arg.OrderNum)
	return scanPackage(row)
}

// GetPackageByID returns the package with the given id.
func (q *Queries) GetPackageByID(ctx context.Context, id int64) (model.Package, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = ?`, id)
	return scanPackage(row)
}

// ListPackagesByCategory returns packages in a category, cheapest position
// first. Category matching ignores case.
func (q *Queries) ListPackagesByCategory(ctx context.Context, category string) ([]model.Package, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+packageColumns+` FROM packages
		 WHERE LOWER(category) = LOWER(?) ORDER BY order_num ASC, id ASC`, category)
	if err != nil {
		return nil, err
	}
	return collectPackages(rows)
}

// ListPackagesPageParams holds parameters for ListPackagesPage.
type ListPackagesPageParams struct {
	Category string // empty matches all categories
	Limit    int64
	Offset   int64
}

// ListPackagesPage returns a page of packages for the admin list, grouped by
// category and ordered by display position within each group.
func (q *Queries) ListPackagesPage(ctx context.Context, arg ListPackagesPageParams) ([]model.Package, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+packageColumns+` FROM packages
		 WHERE (? = '' OR LOWER(category) = LOWER(?))
		 ORDER BY category ASC, order_num ASC, id ASC LIMIT ? OFFSET ?`,
		arg.Category, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectPackages(rows)
}

// CountPackages counts packages matching the admin list filter.
func (q *Queries) CountPackages(ctx context.Context, category string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM packages WHERE (? = '' OR LOWER(category) = LOWER(?))`,
		category, category).Scan(&count)
	return count, err
}

// UpdatePackageParams holds parameters for UpdatePackage.
type UpdatePackageParams struct {
	ID          int64
	Name        string
	Category    string
	Price       string
	Description sql.NullString
	Features    string
	OrderNum    int64
}

// UpdatePackage updates a package and returns the result.
func (q *Queries) UpdatePackage(ctx context.Context, arg UpdatePackageParams) (model.Package, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE packages SET name = ?, category = ?, price = ?, description = ?,
		        features = ?, order_num = ?
		 WHERE id = ? RETURNING `+packageColumns,
		arg.Name, arg.Category, arg.Price, arg.Description, arg.Features,
		arg.OrderNum, arg.ID)
	return scanPackage(row)
}

// DeletePackage removes a package.
func (q *Queries) DeletePackage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id)
	return err
}

// This file defines the Menu model and repository methods for CRUD and
// lookup operations. A Menu is the top level of the catalog and owns a
// set of submenus, which in turn own dishes.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Menu represents a top-level catalog entry persisted in the database.
// The ID field is the primary key and is auto-incremented by the DB.
// Title carries a UNIQUE constraint.
type Menu struct {
	ID          uint64
	Title       string
	Description string
}

// MenuRepo encapsulates all database queries related to menus. It
// depends on a sql.DB connection which should be configured elsewhere.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo constructs a MenuRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

// Create inserts a new menu. On success the menu's ID field is populated
// with the auto-generated value. A duplicate title is reported as
// ErrConflict; the insert runs in its own transaction so a failed write
// leaves no partial row behind.
func (r *MenuRepo) Create(ctx context.Context, m *Menu) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = "INSERT INTO menus (title, description) VALUES (?, ?)"
	res, err := tx.ExecContext(ctx, q, m.Title, m.Description)
	if err != nil {
		_ = tx.Rollback()
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a menu by its ID. It returns ErrMenuNotFound when no
// row is found.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*Menu, error) {
	const q = "SELECT id, title, description FROM menus WHERE id = ?"
	var m Menu
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns menus ordered by id, windowed by offset/limit.
func (r *MenuRepo) List(ctx context.Context, offset, limit int) ([]*Menu, error) {
	const q = `SELECT id, title, description
	           FROM menus ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Menu
	for rows.Next() {
		m := new(Menu)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields (title, description) of an existing
// menu. The id is never changed. It returns ErrMenuNotFound when no row
// is affected and ErrConflict on a duplicate title, rolling back either
// way.
func (r *MenuRepo) Update(ctx context.Context, m *Menu) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = "UPDATE menus SET title = ?, description = ? WHERE id = ?"
	res, err := tx.ExecContext(ctx, q, m.Title, m.Description, m.ID)
	if err != nil {
		_ = tx.Rollback()
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return ErrMenuNotFound
	}
	return tx.Commit()
}

// Delete removes a menu and cascades over its descendants inside one
// transaction. The submenus are first detached (menu_id set to NULL) and
// their dishes orphaned (submenu_id set to NULL) before the submenu rows
// and the menu row are deleted; the detach steps fix the intermediate
// state concurrent readers may observe. Orphaned dish rows are
// unreachable afterwards because every dish lookup is scoped by
// submenu_id.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Collect the submenu ids up front; once detached they can no longer
	// be found through menu_id.
	rows, err := tx.QueryContext(ctx, `SELECT id FROM submenus WHERE menu_id = ?`, id)
	if err != nil {
		return err
	}
	var subIDs []uint64
	for rows.Next() {
		var sid uint64
		if err = rows.Scan(&sid); err != nil {
			rows.Close()
			return err
		}
		subIDs = append(subIDs, sid)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE submenus SET menu_id = NULL WHERE menu_id = ?`, id); err != nil {
		return err
	}
	for _, sid := range subIDs {
		if _, err = tx.ExecContext(ctx,
			`UPDATE dishes SET submenu_id = NULL WHERE submenu_id = ?`, sid); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM submenus WHERE id = ?`, sid); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

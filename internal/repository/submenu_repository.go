// This file defines the Submenu model and repository methods. A submenu
// belongs to exactly one menu while attached; every lookup is scoped by
// the owning menu id so a submenu id alone never resolves a row.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Submenu represents a second-level catalog entry. MenuID is nullable in
// the schema because deleting a menu detaches its submenus before
// removing them.
type Submenu struct {
	ID          uint64
	Title       string
	Description string
	MenuID      sql.NullInt64
}

// SubmenuRepo encapsulates all database queries related to submenus.
type SubmenuRepo struct {
	db *sql.DB
}

// NewSubmenuRepo constructs a SubmenuRepo with the provided DB handle.
func NewSubmenuRepo(db *sql.DB) *SubmenuRepo {
	return &SubmenuRepo{db: db}
}

// Create inserts a new submenu under the given menu. On success the
// submenu's ID field is populated. A duplicate title is reported as
// ErrConflict with the insert rolled back.
func (r *SubmenuRepo) Create(ctx context.Context, s *Submenu, menuID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = "INSERT INTO submenus (title, description, menu_id) VALUES (?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, s.Title, s.Description, menuID)
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
	s.ID = uint64(id)
	s.MenuID = sql.NullInt64{Int64: int64(menuID), Valid: true}
	return nil
}

// GetByMenuAndID fetches a submenu by id but only if it belongs to the
// claimed menu. If the submenu does not exist or is owned by a different
// menu, ErrSubmenuNotFound is returned.
func (r *SubmenuRepo) GetByMenuAndID(ctx context.Context, menuID, id uint64) (*Submenu, error) {
	const q = `SELECT id, title, description, menu_id
	           FROM submenus WHERE menu_id = ? AND id = ?`
	var s Submenu
	if err := r.db.QueryRowContext(ctx, q, menuID, id).Scan(&s.ID, &s.Title, &s.Description, &s.MenuID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmenuNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMenu returns the submenus of a menu ordered by id, windowed by
// offset/limit.
func (r *SubmenuRepo) ListByMenu(ctx context.Context, menuID uint64, offset, limit int) ([]*Submenu, error) {
	const q = `SELECT id, title, description, menu_id
	           FROM submenus WHERE menu_id = ? ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, menuID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Submenu
	for rows.Next() {
		s := new(Submenu)
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.MenuID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites title and description of a submenu scoped to its menu.
// The id and menu_id are never changed. Returns ErrSubmenuNotFound when
// no row matches and ErrConflict on a duplicate title.
func (r *SubmenuRepo) Update(ctx context.Context, menuID uint64, s *Submenu) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `UPDATE submenus SET title = ?, description = ?
	           WHERE menu_id = ? AND id = ?`
	res, err := tx.ExecContext(ctx, q, s.Title, s.Description, menuID, s.ID)
	if err != nil {
		_ = tx.Rollback()
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return ErrSubmenuNotFound
	}
	return tx.Commit()
}

// Delete removes a submenu inside one transaction: its dishes are first
// detached (submenu_id set to NULL), then the submenu row is deleted.
// Both menu_id and id must match for the delete to take effect. Detached
// dish rows are unreachable afterwards because dish lookups are scoped
// by submenu_id.
func (r *SubmenuRepo) Delete(ctx context.Context, menuID, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE dishes SET submenu_id = NULL WHERE submenu_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM submenus WHERE menu_id = ? AND id = ?`, menuID, id); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

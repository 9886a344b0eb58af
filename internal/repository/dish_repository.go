// This file defines the Dish model and repository methods. Dishes are
// the leaf level of the catalog; every lookup is scoped by the owning
// submenu id.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Dish represents a leaf catalog entry. Price and SubmenuID are nullable
// in the schema; a dish whose submenu was deleted keeps its row with
// submenu_id NULL and is no longer reachable through the API.
type Dish struct {
	ID          uint64
	Title       string
	Description string
	Price       sql.NullFloat64
	SubmenuID   sql.NullInt64
}

// DishRepo encapsulates all database queries related to dishes.
type DishRepo struct {
	db *sql.DB
}

// NewDishRepo constructs a DishRepo with the provided DB handle.
func NewDishRepo(db *sql.DB) *DishRepo {
	return &DishRepo{db: db}
}

// Create inserts a new dish under the given submenu. On success the
// dish's ID field is populated. A duplicate title is reported as
// ErrConflict with the insert rolled back.
func (r *DishRepo) Create(ctx context.Context, d *Dish, submenuID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = "INSERT INTO dishes (title, description, price, submenu_id) VALUES (?, ?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, d.Title, d.Description, d.Price, submenuID)
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
	d.ID = uint64(id)
	d.SubmenuID = sql.NullInt64{Int64: int64(submenuID), Valid: true}
	return nil
}

// GetBySubmenuAndID fetches a dish by id but only if it belongs to the
// claimed submenu. If the dish does not exist or is owned by a different
// submenu, ErrDishNotFound is returned.
func (r *DishRepo) GetBySubmenuAndID(ctx context.Context, submenuID, id uint64) (*Dish, error) {
	const q = `SELECT id, title, description, price, submenu_id
	           FROM dishes WHERE submenu_id = ? AND id = ?`
	var d Dish
	if err := r.db.QueryRowContext(ctx, q, submenuID, id).Scan(&d.ID, &d.Title, &d.Description, &d.Price, &d.SubmenuID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListBySubmenu returns the dishes of a submenu ordered by id, windowed
// by offset/limit.
func (r *DishRepo) ListBySubmenu(ctx context.Context, submenuID uint64, offset, limit int) ([]*Dish, error) {
	const q = `SELECT id, title, description, price, submenu_id
	           FROM dishes WHERE submenu_id = ? ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, submenuID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Dish
	for rows.Next() {
		d := new(Dish)
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Price, &d.SubmenuID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites title, description and price of a dish scoped to its
// submenu. The id and submenu_id are never changed. Returns
// ErrDishNotFound when no row matches and ErrConflict on a duplicate
// title.
func (r *DishRepo) Update(ctx context.Context, submenuID uint64, d *Dish) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `UPDATE dishes SET title = ?, description = ?, price = ?
	           WHERE submenu_id = ? AND id = ?`
	res, err := tx.ExecContext(ctx, q, d.Title, d.Description, d.Price, submenuID, d.ID)
	if err != nil {
		_ = tx.Rollback()
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return ErrDishNotFound
	}
	return tx.Commit()
}

// Delete removes a dish in a single statement keyed on both id and
// submenu_id. Zero affected rows (wrong id/submenu pair) is reported as
// ErrDishNotFound.
func (r *DishRepo) Delete(ctx context.Context, submenuID, id uint64) error {
	const q = "DELETE FROM dishes WHERE id = ? AND submenu_id = ?"
	res, err := r.db.ExecContext(ctx, q, id, submenuID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDishNotFound
	}
	return nil
}

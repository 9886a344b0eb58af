// This file implements the aggregate counts the read endpoints expose.
// Counts are always computed from the current rows, never stored, so a
// read can never return a stale value relative to the last committed
// write. The cost is one or two COUNT queries per read, which is the
// right trade for a low-traffic catalog.
package repository

import (
	"context"
	"database/sql"
)

// CountsRepo derives child counts for menus and submenus.
type CountsRepo struct {
	db *sql.DB
}

// NewCountsRepo constructs a CountsRepo with the provided DB handle.
func NewCountsRepo(db *sql.DB) *CountsRepo {
	return &CountsRepo{db: db}
}

// MenuCounts returns the number of submenus attached to the menu and the
// number of dishes under those submenus. The dish count goes through the
// join, so orphaned dishes (submenu_id NULL) never contribute.
func (r *CountsRepo) MenuCounts(ctx context.Context, menuID uint64) (submenus int, dishes int, err error) {
	const qSubmenus = "SELECT COUNT(id) FROM submenus WHERE menu_id = ?"
	if err = r.db.QueryRowContext(ctx, qSubmenus, menuID).Scan(&submenus); err != nil {
		return 0, 0, err
	}
	const qDishes = `SELECT COUNT(d.id)
	                 FROM dishes d
	                 JOIN submenus s ON s.id = d.submenu_id
	                 WHERE s.menu_id = ?`
	if err = r.db.QueryRowContext(ctx, qDishes, menuID).Scan(&dishes); err != nil {
		return 0, 0, err
	}
	return submenus, dishes, nil
}

// SubmenuDishCount returns the number of dishes attached to the submenu.
func (r *CountsRepo) SubmenuDishCount(ctx context.Context, submenuID uint64) (int, error) {
	const q = "SELECT COUNT(id) FROM dishes WHERE submenu_id = ?"
	var n int
	if err := r.db.QueryRowContext(ctx, q, submenuID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

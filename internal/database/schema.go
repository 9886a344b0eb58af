package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements are applied one by one on startup and stop at the first
// failure. Every statement is IF NOT EXISTS so a restart against an
// existing database is a no-op.
//
// menu_id and submenu_id are nullable on purpose: cascade deletes detach
// children before removing the parent, so a child row may briefly (or,
// for dishes, permanently) exist without a parent reference.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS menus (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		UNIQUE KEY uq_menus_title (title)
	)`,
	`CREATE TABLE IF NOT EXISTS submenus (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		menu_id     BIGINT UNSIGNED NULL,
		KEY idx_submenus_menu (menu_id),
		CONSTRAINT fk_submenus_menu FOREIGN KEY (menu_id)
			REFERENCES menus (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price       DOUBLE NULL,
		submenu_id  BIGINT UNSIGNED NULL,
		KEY idx_dishes_submenu (submenu_id),
		CONSTRAINT fk_dishes_submenu FOREIGN KEY (submenu_id)
			REFERENCES submenus (id) ON DELETE CASCADE
	)`,
}

// EnsureSchema creates the catalog tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

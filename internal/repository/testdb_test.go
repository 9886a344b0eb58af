package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// testSchema mirrors the MySQL schema in internal/database using sqlite
// types. The UNIQUE title constraint on menus is the one the service
// guarantees.
var testSchema = []string{
	`CREATE TABLE menus (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE submenus (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		menu_id     INTEGER NULL REFERENCES menus(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE dishes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		price       REAL NULL,
		submenu_id  INTEGER NULL REFERENCES submenus(id) ON DELETE CASCADE
	)`,
}

// openTestDB returns an in-memory database with the catalog schema. A
// single connection keeps every query on the same in-memory instance.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply test schema: %v", err)
		}
	}
	return db
}

func mustCreateMenu(t *testing.T, r *MenuRepo, title, description string) *Menu {
	t.Helper()
	m := &Menu{Title: title, Description: description}
	if err := r.Create(context.Background(), m); err != nil {
		t.Fatalf("create menu %q: %v", title, err)
	}
	return m
}

func mustCreateSubmenu(t *testing.T, r *SubmenuRepo, menuID uint64, title, description string) *Submenu {
	t.Helper()
	s := &Submenu{Title: title, Description: description}
	if err := r.Create(context.Background(), s, menuID); err != nil {
		t.Fatalf("create submenu %q: %v", title, err)
	}
	return s
}

func mustCreateDish(t *testing.T, r *DishRepo, submenuID uint64, title string, price float64) *Dish {
	t.Helper()
	d := &Dish{
		Title:       title,
		Description: title + " description",
		Price:       sql.NullFloat64{Float64: price, Valid: true},
	}
	if err := r.Create(context.Background(), d, submenuID); err != nil {
		t.Fatalf("create dish %q: %v", title, err)
	}
	return d
}

func queryInt(t *testing.T, db *sql.DB, q string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(q, args...).Scan(&n); err != nil {
		t.Fatalf("query %q: %v", q, err)
	}
	return n
}

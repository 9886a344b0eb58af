// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across the entity
// repositories so that handlers can map failures to HTTP responses
// without inspecting driver errors themselves.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrMenuNotFound is returned when a menu lookup fails.
var ErrMenuNotFound = errors.New("menu not found")

// ErrSubmenuNotFound is returned when a submenu lookup fails, including
// the case where the submenu exists but belongs to a different menu.
var ErrSubmenuNotFound = errors.New("submenu not found")

// ErrDishNotFound is returned when a dish lookup fails, including the
// case where the dish exists but belongs to a different submenu.
var ErrDishNotFound = errors.New("dish not found")

// ErrConflict is returned when an insert or update violates a uniqueness
// constraint (observed on title columns). Handlers should translate this
// into an HTTP 400 response.
var ErrConflict = errors.New("conflict")

// mysqlDuplicateEntry is the server error number MySQL reports for a
// duplicate key.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a uniqueness violation. The typed
// check matches the MySQL driver; the message match covers sqlite, which
// backs the repository tests.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

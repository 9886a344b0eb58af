package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"menu-catalog/internal/handler"
	"menu-catalog/internal/repository"
	"menu-catalog/internal/router"
)

// Handler tests run the full route table against an in-memory sqlite
// database, exercising exactly what a client sees on the wire.

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

func newTestAPI(t *testing.T) *echo.Echo {
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

	h := handler.NewCatalogHandler(
		repository.NewMenuRepo(db),
		repository.NewSubmenuRepo(db),
		repository.NewDishRepo(db),
		repository.NewCountsRepo(db),
		nil, // no broker in tests
	)
	e := echo.New()
	router.RegisterCatalog(e, h)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list response %q: %v", rec.Body.String(), err)
	}
	return out
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func wantDetail(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := decode(t, rec)["detail"]; got != want {
		t.Fatalf("detail = %v, want %q", got, want)
	}
}

// createMenu posts a menu and returns its wire id.
func createMenu(t *testing.T, e *echo.Echo, title, description string) string {
	t.Helper()
	rec := do(t, e, "POST", "/menus/", map[string]string{"title": title, "description": description})
	wantStatus(t, rec, 201)
	return decode(t, rec)["id"].(string)
}

func createSubmenu(t *testing.T, e *echo.Echo, menuID, title, description string) string {
	t.Helper()
	rec := do(t, e, "POST", "/menus/"+menuID+"/submenus/", map[string]string{"title": title, "description": description})
	wantStatus(t, rec, 201)
	return decode(t, rec)["id"].(string)
}

func createDish(t *testing.T, e *echo.Echo, menuID, submenuID, title string, price float64) string {
	t.Helper()
	rec := do(t, e, "POST", "/menus/"+menuID+"/submenus/"+submenuID+"/dishes/",
		map[string]any{"title": title, "description": title + " description", "price": price})
	wantStatus(t, rec, 201)
	return decode(t, rec)["id"].(string)
}

// Package handler defines the HTTP handlers for the catalog API. Each
// handler resolves its target through the repository using every
// path-derived key, maps repository sentinels to HTTP errors and shapes
// the wire payload (numeric ids and price travel as strings).
package handler

import (
	"database/sql"
	"strconv"

	"github.com/labstack/echo/v4"

	"menu-catalog/internal/repository"
	"menu-catalog/internal/service"
)

// defaultLimit is the page size applied when the limit parameter is
// absent or invalid.
const defaultLimit = 10

// CatalogHandler bundles the repositories the catalog endpoints need.
// Events may be nil, in which case change events are not published.
type CatalogHandler struct {
	Menus    *repository.MenuRepo
	Submenus *repository.SubmenuRepo
	Dishes   *repository.DishRepo
	Counts   *repository.CountsRepo
	Events   *service.CatalogPublisher
}

// NewCatalogHandler constructs a CatalogHandler from its dependencies.
func NewCatalogHandler(menus *repository.MenuRepo, submenus *repository.SubmenuRepo,
	dishes *repository.DishRepo, counts *repository.CountsRepo,
	events *service.CatalogPublisher) *CatalogHandler {
	return &CatalogHandler{
		Menus:    menus,
		Submenus: submenus,
		Dishes:   dishes,
		Counts:   counts,
		Events:   events,
	}
}

// MenuResponse is the wire shape of a menu, counts included.
type MenuResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	SubmenusCount int    `json:"submenus_count"`
	DishesCount   int    `json:"dishes_count"`
}

// SubmenuResponse is the wire shape of a submenu.
type SubmenuResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DishesCount int    `json:"dishes_count"`
}

// DishResponse is the wire shape of a dish. Price travels as a string.
type DishResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	DishesCount int    `json:"dishes_count"`
}

// StatusResponse is returned by the delete endpoints.
type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// errJSON writes an error body in the {"detail": ...} wire format.
func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"detail": msg})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pageParams reads offset/limit pagination from the query string. "skip"
// is accepted as an alias for "offset". Negative or malformed values
// fall back to the defaults.
func pageParams(c echo.Context) (offset, limit int) {
	offset = 0
	limit = defaultLimit
	raw := c.QueryParam("offset")
	if raw == "" {
		raw = c.QueryParam("skip")
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		offset = n
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		limit = n
	}
	return offset, limit
}

// formatID renders a numeric id for the wire.
func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// formatPrice renders a nullable price for the wire. A NULL price
// becomes an empty string.
func formatPrice(p sql.NullFloat64) string {
	if !p.Valid {
		return ""
	}
	return strconv.FormatFloat(p.Float64, 'f', -1, 64)
}

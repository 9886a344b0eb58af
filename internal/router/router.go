// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"menu-catalog/internal/handler"
)

// RegisterRoutes registers the health check on the provided Echo
// instance. This endpoint can be used by load balancers or monitoring
// systems to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the catalog resource endpoints. Collection
// paths keep their trailing slash; item paths carry the full chain of
// parent ids so every lookup is scoped by its claimed parents.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler) {
	// ---- Menus ----
	e.POST("/menus/", h.CreateMenu)
	e.GET("/menus/", h.ListMenus)
	e.GET("/menus/:menu_id", h.GetMenu)
	e.PATCH("/menus/:menu_id", h.UpdateMenu)
	e.DELETE("/menus/:menu_id", h.DeleteMenu)

	// ---- Submenus ----
	e.POST("/menus/:menu_id/submenus/", h.CreateSubmenu)
	e.GET("/menus/:menu_id/submenus/", h.ListSubmenus)
	e.GET("/menus/:menu_id/submenus/:submenu_id", h.GetSubmenu)
	e.PATCH("/menus/:menu_id/submenus/:submenu_id", h.UpdateSubmenu)
	e.DELETE("/menus/:menu_id/submenus/:submenu_id", h.DeleteSubmenu)

	// ---- Dishes ----
	e.POST("/menus/:menu_id/submenus/:submenu_id/dishes/", h.CreateDish)
	e.GET("/menus/:menu_id/submenus/:submenu_id/dishes/", h.ListDishes)
	e.GET("/menus/:menu_id/submenus/:submenu_id/dishes/:dish_id", h.GetDish)
	e.PATCH("/menus/:menu_id/submenus/:submenu_id/dishes/:dish_id", h.UpdateDish)
	e.DELETE("/menus/:menu_id/submenus/:submenu_id/dishes/:dish_id", h.DeleteDish)
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"menu-catalog/internal/queue"
	"menu-catalog/internal/repository"
)

// menuBody is the request payload for menu create and update. Both
// fields are required.
type menuBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (b *menuBody) validate() bool {
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	return b.Title != "" && b.Description != ""
}

// menuResponse shapes a menu row plus its freshly computed counts.
func menuResponse(m *repository.Menu, submenus, dishes int) MenuResponse {
	return MenuResponse{
		ID:            formatID(m.ID),
		Title:         m.Title,
		Description:   m.Description,
		SubmenusCount: submenus,
		DishesCount:   dishes,
	}
}

// CreateMenu handles POST /menus/.
func (h *CatalogHandler) CreateMenu(c echo.Context) error {
	var body menuBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !body.validate() {
		return errJSON(c, http.StatusBadRequest, "title and description are required")
	}
	ctx := c.Request().Context()
	m := &repository.Menu{Title: body.Title, Description: body.Description}
	if err := h.Menus.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errJSON(c, http.StatusBadRequest, "menu with this title already exists")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create menu")
	}
	submenus, dishes, err := h.Counts.MenuCounts(ctx, m.ID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "menu", Action: queue.ActionCreated, ID: m.ID, Title: m.Title,
	})
	return c.JSON(http.StatusCreated, menuResponse(m, submenus, dishes))
}

// ListMenus handles GET /menus/. Counts are recomputed per row.
func (h *CatalogHandler) ListMenus(c echo.Context) error {
	offset, limit := pageParams(c)
	ctx := c.Request().Context()
	menus, err := h.Menus.List(ctx, offset, limit)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	out := make([]MenuResponse, 0, len(menus))
	for _, m := range menus {
		submenus, dishes, err := h.Counts.MenuCounts(ctx, m.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, "db error")
		}
		out = append(out, menuResponse(m, submenus, dishes))
	}
	return c.JSON(http.StatusOK, out)
}

// GetMenu handles GET /menus/:menu_id.
func (h *CatalogHandler) GetMenu(c echo.Context) error {
	id, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	m, err := h.Menus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return errJSON(c, http.StatusNotFound, "menu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	submenus, dishes, err := h.Counts.MenuCounts(ctx, m.ID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, menuResponse(m, submenus, dishes))
}

// UpdateMenu handles PATCH /menus/:menu_id. Only title and description
// are mutable; the response zero-fills the count fields.
func (h *CatalogHandler) UpdateMenu(c echo.Context) error {
	id, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	var body menuBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !body.validate() {
		return errJSON(c, http.StatusBadRequest, "title and description are required")
	}
	ctx := c.Request().Context()
	m, err := h.Menus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return errJSON(c, http.StatusNotFound, "menu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	m.Title = body.Title
	m.Description = body.Description
	if err := h.Menus.Update(ctx, m); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return errJSON(c, http.StatusBadRequest, "menu with this title already exists")
		case errors.Is(err, repository.ErrMenuNotFound):
			return errJSON(c, http.StatusNotFound, "menu not found")
		default:
			return errJSON(c, http.StatusInternalServerError, "update failed")
		}
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "menu", Action: queue.ActionUpdated, ID: m.ID, Title: m.Title,
	})
	return c.JSON(http.StatusOK, menuResponse(m, 0, 0))
}

// DeleteMenu handles DELETE /menus/:menu_id. The cascade over submenus
// and dishes happens in the repository within one transaction.
func (h *CatalogHandler) DeleteMenu(c echo.Context) error {
	id, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	m, err := h.Menus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return errJSON(c, http.StatusNotFound, "menu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	if err := h.Menus.Delete(ctx, m.ID); err != nil {
		return errJSON(c, http.StatusInternalServerError, "delete failed")
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "menu", Action: queue.ActionDeleted, ID: m.ID, Title: m.Title,
	})
	return c.JSON(http.StatusOK, StatusResponse{Status: true, Message: "The menu has been deleted"})
}

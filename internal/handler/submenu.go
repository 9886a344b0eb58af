package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"menu-catalog/internal/queue"
	"menu-catalog/internal/repository"
)

// submenuBody is the request payload for submenu create and update.
type submenuBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (b *submenuBody) validate() bool {
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	return b.Title != "" && b.Description != ""
}

func submenuResponse(s *repository.Submenu, dishes int) SubmenuResponse {
	return SubmenuResponse{
		ID:          formatID(s.ID),
		Title:       s.Title,
		Description: s.Description,
		DishesCount: dishes,
	}
}

// CreateSubmenu handles POST /menus/:menu_id/submenus/. The parent menu
// must exist; the dish count of the fresh submenu is computed live.
func (h *CatalogHandler) CreateSubmenu(c echo.Context) error {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	var body submenuBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !body.validate() {
		return errJSON(c, http.StatusBadRequest, "title and description are required")
	}
	ctx := c.Request().Context()
	if _, err := h.Menus.GetByID(ctx, menuID); err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return errJSON(c, http.StatusNotFound, "menu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	s := &repository.Submenu{Title: body.Title, Description: body.Description}
	if err := h.Submenus.Create(ctx, s, menuID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errJSON(c, http.StatusBadRequest, "submenu with this title already exists")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create submenu")
	}
	dishes, err := h.Counts.SubmenuDishCount(ctx, s.ID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "submenu", Action: queue.ActionCreated, ID: s.ID, MenuID: menuID, Title: s.Title,
	})
	return c.JSON(http.StatusCreated, submenuResponse(s, dishes))
}

// ListSubmenus handles GET /menus/:menu_id/submenus/. Dish counts are
// recomputed per row; an unknown menu yields an empty list.
func (h *CatalogHandler) ListSubmenus(c echo.Context) error {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	offset, limit := pageParams(c)
	ctx := c.Request().Context()
	submenus, err := h.Submenus.ListByMenu(ctx, menuID, offset, limit)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	out := make([]SubmenuResponse, 0, len(submenus))
	for _, s := range submenus {
		dishes, err := h.Counts.SubmenuDishCount(ctx, s.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, "db error")
		}
		out = append(out, submenuResponse(s, dishes))
	}
	return c.JSON(http.StatusOK, out)
}

// GetSubmenu handles GET /menus/:menu_id/submenus/:submenu_id. The
// lookup is scoped by the claimed menu id; a submenu reached through the
// wrong menu is Not Found.
func (h *CatalogHandler) GetSubmenu(c echo.Context) error {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	id, err := pathID(c, "submenu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	s, err := h.Submenus.GetByMenuAndID(ctx, menuID, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmenuNotFound) {
			return errJSON(c, http.StatusNotFound, "submenu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	dishes, err := h.Counts.SubmenuDishCount(ctx, s.ID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, submenuResponse(s, dishes))
}

// UpdateSubmenu handles PATCH /menus/:menu_id/submenus/:submenu_id. The
// response zero-fills the dish count.
func (h *CatalogHandler) UpdateSubmenu(c echo.Context) error {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	id, err := pathID(c, "submenu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	var body submenuBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !body.validate() {
		return errJSON(c, http.StatusBadRequest, "title and description are required")
	}
	ctx := c.Request().Context()
	s, err := h.Submenus.GetByMenuAndID(ctx, menuID, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmenuNotFound) {
			return errJSON(c, http.StatusNotFound, "submenu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	s.Title = body.Title
	s.Description = body.Description
	if err := h.Submenus.Update(ctx, menuID, s); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return errJSON(c, http.StatusBadRequest, "submenu with this title already exists")
		case errors.Is(err, repository.ErrSubmenuNotFound):
			return errJSON(c, http.StatusNotFound, "submenu not found")
		default:
			return errJSON(c, http.StatusInternalServerError, "update failed")
		}
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "submenu", Action: queue.ActionUpdated, ID: s.ID, MenuID: menuID, Title: s.Title,
	})
	return c.JSON(http.StatusOK, submenuResponse(s, 0))
}

// DeleteSubmenu handles DELETE /menus/:menu_id/submenus/:submenu_id.
// Dishes under the submenu are detached inside the same transaction.
func (h *CatalogHandler) DeleteSubmenu(c echo.Context) error {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	id, err := pathID(c, "submenu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	s, err := h.Submenus.GetByMenuAndID(ctx, menuID, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmenuNotFound) {
			return errJSON(c, http.StatusNotFound, "submenu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	if err := h.Submenus.Delete(ctx, menuID, s.ID); err != nil {
		return errJSON(c, http.StatusInternalServerError, "delete failed")
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "submenu", Action: queue.ActionDeleted, ID: s.ID, MenuID: menuID, Title: s.Title,
	})
	return c.JSON(http.StatusOK, StatusResponse{Status: true, Message: "The submenu has been deleted"})
}

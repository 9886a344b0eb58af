package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"menu-catalog/internal/queue"
	"menu-catalog/internal/repository"
)

// dishBody is the request payload for dish create and update. Price is
// a pointer so a missing field can be told apart from zero.
type dishBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func (b *dishBody) validate() bool {
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	return b.Title != "" && b.Description != "" && b.Price != nil
}

func dishResponse(d *repository.Dish, dishes int) DishResponse {
	return DishResponse{
		ID:          formatID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Price:       formatPrice(d.Price),
		DishesCount: dishes,
	}
}

// dishPathIDs parses the menu, submenu and (optionally) dish ids from
// the request path. Dish rows are keyed by (submenu_id, id); the menu id
// is parsed for validity only, matching the lookup contract.
func dishPathIDs(c echo.Context, withDish bool) (submenuID, dishID uint64, err error) {
	if _, err = pathID(c, "menu_id"); err != nil {
		return 0, 0, err
	}
	if submenuID, err = pathID(c, "submenu_id"); err != nil {
		return 0, 0, err
	}
	if withDish {
		if dishID, err = pathID(c, "dish_id"); err != nil {
			return 0, 0, err
		}
	}
	return submenuID, dishID, nil
}

// CreateDish handles POST .../submenus/:submenu_id/dishes/. The parent
// submenu must exist under the claimed menu. The response zero-fills
// dishes_count.
func (h *CatalogHandler) CreateDish(c echo.Context) error {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	submenuID, err := pathID(c, "submenu_id")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	var body dishBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !body.validate() {
		return errJSON(c, http.StatusBadRequest, "title, description and price are required")
	}
	ctx := c.Request().Context()
	if _, err := h.Submenus.GetByMenuAndID(ctx, menuID, submenuID); err != nil {
		if errors.Is(err, repository.ErrSubmenuNotFound) {
			return errJSON(c, http.StatusNotFound, "submenu not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	d := &repository.Dish{
		Title:       body.Title,
		Description: body.Description,
		Price:       sql.NullFloat64{Float64: *body.Price, Valid: true},
	}
	if err := h.Dishes.Create(ctx, d, submenuID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errJSON(c, http.StatusBadRequest, "dish with this title already exists")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create dish")
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "dish", Action: queue.ActionCreated, ID: d.ID, MenuID: menuID, SubmenuID: submenuID, Title: d.Title,
	})
	return c.JSON(http.StatusCreated, dishResponse(d, 0))
}

// ListDishes handles GET .../submenus/:submenu_id/dishes/. Every row
// carries the submenu's live dish count; an unknown submenu yields an
// empty list.
func (h *CatalogHandler) ListDishes(c echo.Context) error {
	submenuID, _, err := dishPathIDs(c, false)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	offset, limit := pageParams(c)
	ctx := c.Request().Context()
	dishes, err := h.Dishes.ListBySubmenu(ctx, submenuID, offset, limit)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	out := make([]DishResponse, 0, len(dishes))
	if len(dishes) == 0 {
		return c.JSON(http.StatusOK, out)
	}
	count, err := h.Counts.SubmenuDishCount(ctx, submenuID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	for _, d := range dishes {
		out = append(out, dishResponse(d, count))
	}
	return c.JSON(http.StatusOK, out)
}

// GetDish handles GET .../dishes/:dish_id. The lookup is keyed by both
// the dish id and the claimed submenu id.
func (h *CatalogHandler) GetDish(c echo.Context) error {
	submenuID, dishID, err := dishPathIDs(c, true)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	d, err := h.Dishes.GetBySubmenuAndID(ctx, submenuID, dishID)
	if err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			return errJSON(c, http.StatusNotFound, "dish not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, dishResponse(d, 0))
}

// UpdateDish handles PATCH .../dishes/:dish_id. Title, description and
// price are mutable; id and submenu_id never change.
func (h *CatalogHandler) UpdateDish(c echo.Context) error {
	submenuID, dishID, err := dishPathIDs(c, true)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	var body dishBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !body.validate() {
		return errJSON(c, http.StatusBadRequest, "title, description and price are required")
	}
	ctx := c.Request().Context()
	d, err := h.Dishes.GetBySubmenuAndID(ctx, submenuID, dishID)
	if err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			return errJSON(c, http.StatusNotFound, "dish not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	d.Title = body.Title
	d.Description = body.Description
	d.Price = sql.NullFloat64{Float64: *body.Price, Valid: true}
	if err := h.Dishes.Update(ctx, submenuID, d); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return errJSON(c, http.StatusBadRequest, "dish with this title already exists")
		case errors.Is(err, repository.ErrDishNotFound):
			return errJSON(c, http.StatusNotFound, "dish not found")
		default:
			return errJSON(c, http.StatusInternalServerError, "update failed")
		}
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "dish", Action: queue.ActionUpdated, ID: d.ID, SubmenuID: submenuID, Title: d.Title,
	})
	return c.JSON(http.StatusOK, dishResponse(d, 0))
}

// DeleteDish handles DELETE .../dishes/:dish_id. The repository deletes
// the matched row in one statement; zero matches is Not Found.
func (h *CatalogHandler) DeleteDish(c echo.Context) error {
	submenuID, dishID, err := dishPathIDs(c, true)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	if err := h.Dishes.Delete(ctx, submenuID, dishID); err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			return errJSON(c, http.StatusNotFound, "dish not found")
		}
		return errJSON(c, http.StatusInternalServerError, "delete failed")
	}
	_ = h.Events.Publish(ctx, queue.CatalogChangedEvent{
		Entity: "dish", Action: queue.ActionDeleted, ID: dishID, SubmenuID: submenuID,
	})
	return c.JSON(http.StatusOK, StatusResponse{Status: true, Message: "The dish has been deleted"})
}

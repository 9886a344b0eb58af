package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestDishCreateAndScopedFetch(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	other := mustCreateSubmenu(t, submenus, m.ID, "Salads", "desc")
	d := mustCreateDish(t, dishes, s.ID, "Borscht", 5.5)

	got, err := dishes.GetBySubmenuAndID(context.Background(), s.ID, d.ID)
	if err != nil {
		t.Fatalf("get dish: %v", err)
	}
	if got.Title != "Borscht" || !got.Price.Valid || got.Price.Float64 != 5.5 {
		t.Fatalf("unexpected dish row: %+v", got)
	}

	// The dish id exists, but not under this submenu.
	if _, err := dishes.GetBySubmenuAndID(context.Background(), other.ID, d.ID); !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound for wrong submenu, got %v", err)
	}
}

func TestDishUpdatePriceKeepsKeys(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	d := mustCreateDish(t, dishes, s.ID, "Borscht", 5.5)

	d.Price = sql.NullFloat64{Float64: 7.25, Valid: true}
	if err := dishes.Update(context.Background(), s.ID, d); err != nil {
		t.Fatalf("update dish: %v", err)
	}

	got, err := dishes.GetBySubmenuAndID(context.Background(), s.ID, d.ID)
	if err != nil {
		t.Fatalf("get dish after update: %v", err)
	}
	if got.Price.Float64 != 7.25 {
		t.Fatalf("price not updated: %+v", got.Price)
	}
	if got.ID != d.ID {
		t.Fatalf("id changed on update: %d != %d", got.ID, d.ID)
	}
	if !got.SubmenuID.Valid || uint64(got.SubmenuID.Int64) != s.ID {
		t.Fatalf("submenu_id changed on update: %+v", got.SubmenuID)
	}
}

func TestDishDeleteMatchesBothKeys(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	other := mustCreateSubmenu(t, submenus, m.ID, "Salads", "desc")
	d := mustCreateDish(t, dishes, s.ID, "Borscht", 5.5)

	// Wrong id/submenu pair reports not found and deletes nothing.
	if err := dishes.Delete(context.Background(), other.ID, d.ID); !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound for wrong pair, got %v", err)
	}
	if _, err := dishes.GetBySubmenuAndID(context.Background(), s.ID, d.ID); err != nil {
		t.Fatalf("dish deleted despite wrong pair: %v", err)
	}

	if err := dishes.Delete(context.Background(), s.ID, d.ID); err != nil {
		t.Fatalf("delete dish: %v", err)
	}
	if _, err := dishes.GetBySubmenuAndID(context.Background(), s.ID, d.ID); !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("dish still readable after delete: %v", err)
	}
	// Deleting again stays not found.
	if err := dishes.Delete(context.Background(), s.ID, d.ID); !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound on repeat delete, got %v", err)
	}
}

func TestDishListBySubmenu(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	other := mustCreateSubmenu(t, submenus, m.ID, "Salads", "desc")
	mustCreateDish(t, dishes, s.ID, "Borscht", 5.5)
	mustCreateDish(t, dishes, s.ID, "Gazpacho", 6)
	mustCreateDish(t, dishes, other.ID, "Caesar", 8)

	got, err := dishes.ListBySubmenu(context.Background(), s.ID, 0, 10)
	if err != nil {
		t.Fatalf("list dishes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 dishes under submenu, got %d", len(got))
	}

	empty, err := dishes.ListBySubmenu(context.Background(), 999, 0, 10)
	if err != nil {
		t.Fatalf("list dishes of unknown submenu: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(empty))
	}
}

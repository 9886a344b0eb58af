package repository

import (
	"context"
	"testing"
)

func TestFreshMenuHasZeroCounts(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	counts := NewCountsRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")

	submenuCount, dishCount, err := counts.MenuCounts(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("menu counts: %v", err)
	}
	if submenuCount != 0 || dishCount != 0 {
		t.Fatalf("expected 0/0 for fresh menu, got %d/%d", submenuCount, dishCount)
	}
}

func TestCountsFollowNestedCreates(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)
	counts := NewCountsRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	mustCreateDish(t, dishes, s.ID, "Borscht", 5.5)

	submenuCount, dishCount, err := counts.MenuCounts(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("menu counts: %v", err)
	}
	if submenuCount != 1 || dishCount != 1 {
		t.Fatalf("expected 1/1 after nested create, got %d/%d", submenuCount, dishCount)
	}

	n, err := counts.SubmenuDishCount(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("submenu dish count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 dish under submenu, got %d", n)
	}
}

func TestDishCountSpansSubmenusOfTheMenu(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)
	counts := NewCountsRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s1 := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	s2 := mustCreateSubmenu(t, submenus, m.ID, "Salads", "desc")
	mustCreateDish(t, dishes, s1.ID, "Borscht", 5.5)
	mustCreateDish(t, dishes, s2.ID, "Caesar", 8)
	mustCreateDish(t, dishes, s2.ID, "Greek", 7)

	// A second menu must not contribute.
	other := mustCreateMenu(t, menus, "Dinner", "desc")
	so := mustCreateSubmenu(t, submenus, other.ID, "Grill", "desc")
	mustCreateDish(t, dishes, so.ID, "Steak", 20)

	submenuCount, dishCount, err := counts.MenuCounts(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("menu counts: %v", err)
	}
	if submenuCount != 2 || dishCount != 3 {
		t.Fatalf("expected 2/3, got %d/%d", submenuCount, dishCount)
	}
}

func TestOrphanedDishesNeverCounted(t *testing.T) {
	db := openTestDB(t)
	menus := NewMenuRepo(db)
	submenus := NewSubmenuRepo(db)
	dishes := NewDishRepo(db)
	counts := NewCountsRepo(db)

	m := mustCreateMenu(t, menus, "Lunch", "desc")
	s := mustCreateSubmenu(t, submenus, m.ID, "Soups", "desc")
	keep := mustCreateSubmenu(t, submenus, m.ID, "Salads", "desc")
	mustCreateDish(t, dishes, s.ID, "Borscht", 5.5)
	mustCreateDish(t, dishes, keep.ID, "Caesar", 8)

	if err := submenus.Delete(context.Background(), m.ID, s.ID); err != nil {
		t.Fatalf("delete submenu: %v", err)
	}

	submenuCount, dishCount, err := counts.MenuCounts(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("menu counts: %v", err)
	}
	if submenuCount != 1 || dishCount != 1 {
		t.Fatalf("expected 1/1 after submenu delete, got %d/%d", submenuCount, dishCount)
	}
}

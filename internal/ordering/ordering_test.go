package ordering

import (
	"testing"
	"time"

	"github.com/dukerupert/smartcart/internal/model"
)

var base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// makeItems builds items with ids 1..n created one second apart.
func makeItems(orders ...int) []model.Item {
	items := make([]model.Item, len(orders))
	for i, o := range orders {
		items[i] = model.Item{
			ID:        int64(i + 1),
			ListID:    1,
			Name:      string(rune('A' + i)),
			SortOrder: o,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	return items
}

func names(items []model.Item) string {
	s := ""
	for _, it := range Sorted(items) {
		s += it.Name
	}
	return s
}

func TestSortTieBreaksByCreatedAt(t *testing.T) {
	items := makeItems(2, 1, 1)
	items[1].CreatedAt = base.Add(time.Hour)

	Sort(items)
	got := ""
	for _, it := range items {
		got += it.Name
	}
	if got != "CBA" {
		t.Errorf("order = %q, want %q", got, "CBA")
	}
}

func TestNext(t *testing.T) {
	if got := Next(nil); got != 1 {
		t.Errorf("Next(nil) = %d, want 1", got)
	}
	if got := Next(makeItems(1, 7, 3)); got != 8 {
		t.Errorf("Next = %d, want 8", got)
	}
}

func TestMoveUpSwapsValues(t *testing.T) {
	items := makeItems(1, 2, 3)

	plan := PlanMoveUp(items, 3)
	if len(plan) != 2 {
		t.Fatalf("plan len = %d, want 2", len(plan))
	}

	got := Apply(items, plan)
	orders := map[string]int{}
	for _, it := range got {
		orders[it.Name] = it.SortOrder
	}
	if orders["A"] != 1 || orders["B"] != 3 || orders["C"] != 2 {
		t.Errorf("orders = %v, want A:1 B:3 C:2", orders)
	}
	if n := names(got); n != "ACB" {
		t.Errorf("sequence = %q, want %q", n, "ACB")
	}
}

func TestMoveBoundariesAreNoops(t *testing.T) {
	items := makeItems(1, 2, 3)

	if plan := PlanMoveUp(items, 1); len(plan) != 0 {
		t.Errorf("move up first: plan = %v, want empty", plan)
	}
	if plan := PlanMoveDown(items, 3); len(plan) != 0 {
		t.Errorf("move down last: plan = %v, want empty", plan)
	}
}

func TestMoveNotFoundIsNoop(t *testing.T) {
	items := makeItems(1, 2, 3)
	if plan := PlanMoveUp(items, 42); len(plan) != 0 {
		t.Errorf("move up missing: plan = %v", plan)
	}
	if plan := PlanMoveDown(items, 42); len(plan) != 0 {
		t.Errorf("move down missing: plan = %v", plan)
	}
}

func TestMoveEmptyAndSingle(t *testing.T) {
	if plan := PlanMoveUp(nil, 1); len(plan) != 0 {
		t.Errorf("empty list: plan = %v", plan)
	}
	single := makeItems(1)
	if plan := PlanMoveUp(single, 1); len(plan) != 0 {
		t.Errorf("single up: plan = %v", plan)
	}
	if plan := PlanMoveDown(single, 1); len(plan) != 0 {
		t.Errorf("single down: plan = %v", plan)
	}
}

func TestMoveUpThenDownRestores(t *testing.T) {
	items := makeItems(1, 2, 5, 9)
	want := names(items)

	moved := Apply(items, PlanMoveUp(items, 3))
	if names(moved) == want {
		t.Fatal("move up did not change the sequence")
	}
	restored := Apply(moved, PlanMoveDown(moved, 3))
	if got := names(restored); got != want {
		t.Errorf("sequence = %q, want %q", got, want)
	}

	moved = Apply(items, PlanMoveDown(items, 2))
	restored = Apply(moved, PlanMoveUp(moved, 2))
	if got := names(restored); got != want {
		t.Errorf("sequence = %q, want %q", got, want)
	}
}

func TestMoveTouchesOnlyTwoRows(t *testing.T) {
	items := makeItems(10, 20, 30, 40, 50)
	plan := PlanMoveDown(items, 2)
	if len(plan) != 2 {
		t.Fatalf("plan len = %d, want 2", len(plan))
	}
	for _, a := range plan {
		if a.ItemID != 2 && a.ItemID != 3 {
			t.Errorf("unexpected item %d in plan", a.ItemID)
		}
	}
}

func TestMoveWithDuplicateKeysRenumbers(t *testing.T) {
	items := makeItems(1, 1, 2)

	plan := PlanMoveDown(items, 1)
	got := Apply(items, plan)
	if n := names(got); n != "BAC" {
		t.Errorf("sequence = %q, want %q", n, "BAC")
	}

	seen := map[int]bool{}
	for _, it := range got {
		if seen[it.SortOrder] {
			t.Errorf("duplicate sort order %d after move", it.SortOrder)
		}
		seen[it.SortOrder] = true
	}
}

func TestMoveIgnoresDuplicatesElsewhere(t *testing.T) {
	items := makeItems(1, 1, 5, 6)

	plan := PlanMoveUp(items, 4)
	if len(plan) != 2 {
		t.Fatalf("plan = %+v, want 2 assignments", plan)
	}
	want := map[int64]int{3: 6, 4: 5}
	for _, a := range plan {
		if want[a.ItemID] != a.SortOrder {
			t.Errorf("item %d sort order = %d, want %d", a.ItemID, a.SortOrder, want[a.ItemID])
		}
	}
	if n := names(Apply(items, plan)); n != "ABDC" {
		t.Errorf("sequence = %q, want %q", n, "ABDC")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := makeItems(1, 2)
	Apply(items, PlanMoveUp(items, 2))
	if items[0].SortOrder != 1 || items[1].SortOrder != 2 {
		t.Errorf("input mutated: %+v", items)
	}
}

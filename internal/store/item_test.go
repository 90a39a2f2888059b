package store

import (
	"testing"
	"time"

	"github.com/dukerupert/smartcart/internal/model"
)

func newItem(listID int64, name string, order int, at time.Time) model.Item {
	return model.Item{
		ListID:     listID,
		Name:       name,
		Category:   model.DefaultCategory,
		Quantity:   model.DefaultQuantity,
		SortOrder:  order,
		CreatedAt:  at,
		ModifiedAt: at,
	}
}

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	ls := NewListStore(db)
	is := NewItemStore(db)

	list, _ := ls.Create("Groceries", false, t0)

	// Create
	item, err := is.Create(model.Item{
		ListID: list.ID, Name: "Apples", Category: "Fruits & Vegetables", Quantity: "2 lbs",
		Notes: "Honeycrisp", SortOrder: 1, CreatedAt: t0, ModifiedAt: t0,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Name != "Apples" {
		t.Errorf("name = %q, want %q", item.Name, "Apples")
	}
	if item.Quantity != "2 lbs" {
		t.Errorf("quantity = %q, want %q", item.Quantity, "2 lbs")
	}
	if item.Notes != "Honeycrisp" {
		t.Errorf("notes = %q, want %q", item.Notes, "Honeycrisp")
	}
	if item.Completed {
		t.Error("expected not completed")
	}

	// Update
	item.Name = "Green Apples"
	item.Completed = true
	item.ModifiedAt = t0.Add(time.Second)
	updated, err := is.Update(*item)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Name != "Green Apples" || !updated.Completed {
		t.Errorf("updated = %+v", updated)
	}

	// Delete
	if err := is.Delete(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	got, err := is.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get deleted item: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestItemUpdateMissingIsNoop(t *testing.T) {
	is := NewItemStore(setupTestDB(t))
	got, err := is.Update(model.Item{ID: 7, Name: "Ghost", CreatedAt: t0, ModifiedAt: t0})
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestItemRequiresList(t *testing.T) {
	is := NewItemStore(setupTestDB(t))
	if _, err := is.Create(newItem(404, "Orphan", 1, t0)); err == nil {
		t.Fatal("expected foreign key error for missing list")
	}
}

func TestItemsManualOrder(t *testing.T) {
	db := setupTestDB(t)
	list, _ := NewListStore(db).Create("Groceries", false, t0)
	is := NewItemStore(db)

	is.Create(newItem(list.ID, "C", 3, t0))
	is.Create(newItem(list.ID, "A", 1, t0.Add(time.Second)))
	is.Create(newItem(list.ID, "B2", 2, t0.Add(2*time.Second)))
	is.Create(newItem(list.ID, "B1", 2, t0.Add(time.Second)))

	items, err := is.ListByList(list.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	want := []string{"A", "B1", "B2", "C"}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestItemSortOrderAndCounts(t *testing.T) {
	db := setupTestDB(t)
	list, _ := NewListStore(db).Create("Groceries", false, t0)
	is := NewItemStore(db)

	total, completed, err := is.CountByList(list.ID)
	if err != nil {
		t.Fatalf("count empty list: %v", err)
	}
	if total != 0 || completed != 0 {
		t.Errorf("empty counts = %d/%d, want 0/0", completed, total)
	}

	a, _ := is.Create(newItem(list.ID, "A", 1, t0))
	b, _ := is.Create(newItem(list.ID, "B", 4, t0))

	if err := is.UpdateSortOrder(a.ID, 9, t0.Add(time.Minute)); err != nil {
		t.Fatalf("update sort order: %v", err)
	}
	got, _ := is.GetByID(a.ID)
	if got.SortOrder != 9 {
		t.Errorf("sort order = %d, want 9", got.SortOrder)
	}
	if !got.ModifiedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("modified_at = %v", got.ModifiedAt)
	}

	b.Completed = true
	is.Update(*b)

	total, completed, err = is.CountByList(list.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 || completed != 1 {
		t.Errorf("counts = %d/%d, want 2/1", completed, total)
	}

	done, err := is.ListByListAndCompleted(list.ID, true)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(done) != 1 || done[0].ID != b.ID {
		t.Errorf("completed items = %+v", done)
	}
}

func TestDeleteListCascadesItems(t *testing.T) {
	db := setupTestDB(t)
	ls := NewListStore(db)
	is := NewItemStore(db)

	keep, _ := ls.Create("Keep", false, t0)
	drop, _ := ls.Create("Drop", false, t0)
	is.Create(newItem(keep.ID, "Milk", 1, t0))
	is.Create(newItem(drop.ID, "Bread", 1, t0))
	is.Create(newItem(drop.ID, "Eggs", 2, t0))

	if err := ls.Delete(drop.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}

	items, err := is.ListByList(drop.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items after cascade = %d, want 0", len(items))
	}
	items, _ = is.ListByList(keep.ID)
	if len(items) != 1 {
		t.Errorf("other list items = %d, want 1", len(items))
	}
}

package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dukerupert/smartcart/internal/database"
	"github.com/dukerupert/smartcart/internal/model"
)

var t0 = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestListCRUD(t *testing.T) {
	ls := NewListStore(setupTestDB(t))

	// Create
	l, err := ls.Create("Groceries", false, t0)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if l.Name != "Groceries" {
		t.Errorf("name = %q, want %q", l.Name, "Groceries")
	}
	if l.Completed {
		t.Error("expected not completed")
	}
	if !l.CreatedAt.Equal(t0) || !l.ModifiedAt.Equal(t0) {
		t.Errorf("timestamps = %v/%v, want %v", l.CreatedAt, l.ModifiedAt, t0)
	}

	// Update
	l.Name = "Weekly Groceries"
	l.Completed = true
	l.ModifiedAt = t0.Add(time.Minute)
	updated, err := ls.Update(*l)
	if err != nil {
		t.Fatalf("update list: %v", err)
	}
	if updated.Name != "Weekly Groceries" || !updated.Completed {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.ModifiedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("modified_at = %v", updated.ModifiedAt)
	}

	// Delete
	if err := ls.Delete(l.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	got, err := ls.GetByID(l.ID)
	if err != nil {
		t.Fatalf("get deleted list: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestListUpdateMissingIsNoop(t *testing.T) {
	ls := NewListStore(setupTestDB(t))

	got, err := ls.Update(model.List{ID: 99, Name: "Ghost", CreatedAt: t0, ModifiedAt: t0})
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
	n, _ := ls.Count()
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestListOrderByModified(t *testing.T) {
	ls := NewListStore(setupTestDB(t))

	a, _ := ls.Create("A", false, t0)
	ls.Create("B", false, t0.Add(time.Minute))
	ls.Create("C", true, t0.Add(2*time.Minute))

	lists, err := ls.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"C", "B", "A"}
	for i, name := range want {
		if lists[i].Name != name {
			t.Errorf("lists[%d] = %q, want %q", i, lists[i].Name, name)
		}
	}

	a.ModifiedAt = t0.Add(time.Hour)
	ls.Update(*a)
	lists, _ = ls.List()
	if lists[0].Name != "A" {
		t.Errorf("first after touch = %q, want A", lists[0].Name)
	}

	done, err := ls.ListByCompleted(true)
	if err != nil {
		t.Fatalf("list by completed: %v", err)
	}
	if len(done) != 1 || done[0].Name != "C" {
		t.Errorf("completed lists = %+v", done)
	}
}

func TestListSummaries(t *testing.T) {
	db := setupTestDB(t)
	ls := NewListStore(db)
	is := NewItemStore(db)

	full, _ := ls.Create("Groceries", false, t0)
	empty, _ := ls.Create("Empty", true, t0.Add(time.Minute))

	for i, done := range []bool{true, false, true} {
		_, err := is.Create(model.Item{
			ListID: full.ID, Name: "item", Category: "General", Quantity: "1",
			Completed: done, SortOrder: i + 1, CreatedAt: t0, ModifiedAt: t0,
		})
		if err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	summaries, err := ls.Summaries()
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len = %d, want 2", len(summaries))
	}

	// Most recently modified first.
	if summaries[0].ID != empty.ID {
		t.Errorf("first summary = %d, want %d", summaries[0].ID, empty.ID)
	}
	if summaries[0].TotalItems != 0 || summaries[0].DerivedCompleted {
		t.Errorf("empty summary = %+v", summaries[0].Progress)
	}
	if !summaries[0].Completed {
		t.Error("persisted completed flag lost")
	}
	if summaries[1].TotalItems != 3 || summaries[1].CompletedItems != 2 {
		t.Errorf("full summary = %+v", summaries[1].Progress)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := NewListStore(tx).Create("Temp", false, t0); err != nil {
			return err
		}
		return sql.ErrTxDone
	})
	if err != sql.ErrTxDone {
		t.Fatalf("err = %v, want %v", err, sql.ErrTxDone)
	}

	n, err := NewListStore(db).Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0 after rollback", n)
	}
}

// Package ordering maintains the manual order of items within a list.
//
// Items are ordered by (SortOrder, CreatedAt, ID). A move exchanges the sort
// keys of two neighbours instead of shifting a range, so it touches two rows
// regardless of list length and leaves every other item where it was.
package ordering

import (
	"cmp"
	"slices"

	"github.com/dukerupert/smartcart/internal/model"
)

// Assignment sets the sort key of a single item.
type Assignment struct {
	ItemID    int64
	SortOrder int
}

// Plan is the set of sort key writes a move needs. An empty plan is a no-op.
type Plan []Assignment

func compare(a, b model.Item) int {
	if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Sort orders items in place into their canonical sequence.
func Sort(items []model.Item) {
	slices.SortStableFunc(items, compare)
}

// Sorted returns a canonically ordered copy of items.
func Sorted(items []model.Item) []model.Item {
	out := slices.Clone(items)
	Sort(out)
	return out
}

// Next returns the sort key for a new item appended to the list: one past the
// current maximum, or 1 for an empty list.
func Next(items []model.Item) int {
	if len(items) == 0 {
		return 1
	}
	hi := items[0].SortOrder
	for _, it := range items[1:] {
		if it.SortOrder > hi {
			hi = it.SortOrder
		}
	}
	return hi + 1
}

// Index returns the position of id in the canonical sequence, or -1.
func Index(items []model.Item, id int64) int {
	return slices.IndexFunc(items, func(it model.Item) bool { return it.ID == id })
}

// PlanMoveUp plans swapping the item with its predecessor. Moving the first
// item, or an id not in the list, yields an empty plan.
func PlanMoveUp(items []model.Item, id int64) Plan {
	seq := Sorted(items)
	i := Index(seq, id)
	if i <= 0 {
		return nil
	}
	return planSwap(seq, i, i-1)
}

// PlanMoveDown plans swapping the item with its successor. Moving the last
// item, or an id not in the list, yields an empty plan.
func PlanMoveDown(items []model.Item, id int64) Plan {
	seq := Sorted(items)
	i := Index(seq, id)
	if i < 0 || i >= len(seq)-1 {
		return nil
	}
	return planSwap(seq, i, i+1)
}

// planSwap exchanges the keys at positions i and j of a canonical sequence.
// When the pair shares a key an exchange would change nothing, so the list is
// renumbered 1..n first and only changed rows are returned. Ties elsewhere in
// the list are left alone: an exchange keeps the set of keys unchanged.
func planSwap(seq []model.Item, i, j int) Plan {
	if seq[i].SortOrder != seq[j].SortOrder {
		return Plan{
			{ItemID: seq[i].ID, SortOrder: seq[j].SortOrder},
			{ItemID: seq[j].ID, SortOrder: seq[i].SortOrder},
		}
	}

	keys := make([]int, len(seq))
	for k := range seq {
		keys[k] = k + 1
	}
	keys[i], keys[j] = keys[j], keys[i]

	var plan Plan
	for k, it := range seq {
		if it.SortOrder != keys[k] {
			plan = append(plan, Assignment{ItemID: it.ID, SortOrder: keys[k]})
		}
	}
	return plan
}

// Apply returns a canonically ordered copy of items with the plan applied.
func Apply(items []model.Item, plan Plan) []model.Item {
	out := slices.Clone(items)
	for _, a := range plan {
		if k := Index(out, a.ItemID); k >= 0 {
			out[k].SortOrder = a.SortOrder
		}
	}
	Sort(out)
	return out
}

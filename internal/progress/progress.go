// Package progress derives per-list completion counts from items.
//
// The derived value is independent of the list's own completed flag; neither
// is ever written back to the other.
package progress

import "github.com/dukerupert/smartcart/internal/model"

// Compute counts the total and completed items.
func Compute(items []model.Item) model.Progress {
	completed := 0
	for _, it := range items {
		if it.Completed {
			completed++
		}
	}
	return FromCounts(len(items), completed)
}

// FromCounts builds a Progress from counts already aggregated by the store.
// Completed is clamped to [0, total].
func FromCounts(total, completed int) model.Progress {
	if total < 0 {
		total = 0
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return model.Progress{
		TotalItems:       total,
		CompletedItems:   completed,
		DerivedCompleted: total > 0 && completed == total,
	}
}

// Percent returns the completed share as a whole percentage. An empty list is 0%.
func Percent(p model.Progress) int {
	if p.TotalItems == 0 {
		return 0
	}
	return p.CompletedItems * 100 / p.TotalItems
}

// Summarize attaches progress to each list. Lists with no entry in counts
// have no items.
func Summarize(lists []model.List, counts map[int64]model.Progress) []model.ListSummary {
	out := make([]model.ListSummary, 0, len(lists))
	for _, l := range lists {
		p, ok := counts[l.ID]
		if !ok {
			p = FromCounts(0, 0)
		}
		out = append(out, model.ListSummary{List: l, Progress: p})
	}
	return out
}

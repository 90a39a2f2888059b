package model

import "time"

type List struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Progress is the derived completion state of a list. It is computed on
// every read and never stored.
type Progress struct {
	TotalItems       int  `json:"total_items"`
	CompletedItems   int  `json:"completed_items"`
	DerivedCompleted bool `json:"derived_completed"`
}

// ListSummary is a list together with the progress of its items.
type ListSummary struct {
	List
	Progress
}

package model

import "time"

const (
	DefaultCategory = "General"
	DefaultQuantity = "1"
)

type Item struct {
	ID         int64     `json:"id"`
	ListID     int64     `json:"list_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   string    `json:"quantity"`
	Completed  bool      `json:"completed"`
	Notes      string    `json:"notes"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

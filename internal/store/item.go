package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/smartcart/internal/model"
)

type ItemStore struct {
	db DBTX
}

func NewItemStore(db DBTX) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(s scanner) (*model.Item, error) {
	var item model.Item
	var completed int
	err := s.Scan(
		&item.ID, &item.ListID, &item.Name, &item.Category, &item.Quantity,
		&completed, &item.Notes, &item.SortOrder, &item.CreatedAt, &item.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Completed = completed != 0
	return &item, nil
}

const itemCols = `id, list_id, name, category, quantity, completed, notes, sort_order, created_at, modified_at`

// itemOrder is the canonical manual order of items within a list.
const itemOrder = `ORDER BY sort_order ASC, created_at ASC, id ASC`

// Create inserts the item as given, including its sort order, and returns
// the stored row.
func (s *ItemStore) Create(item model.Item) (*model.Item, error) {
	result, err := s.db.Exec(
		`INSERT INTO shopping_items (list_id, name, category, quantity, completed, notes, sort_order, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ListID, item.Name, item.Category, item.Quantity, boolToInt(item.Completed),
		item.Notes, item.SortOrder, item.CreatedAt.UTC(), item.ModifiedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) GetByID(id int64) (*model.Item, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) queryItems(query string, args ...any) ([]model.Item, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListByList returns the items of a list in manual order.
func (s *ItemStore) ListByList(listID int64) ([]model.Item, error) {
	return s.queryItems(`SELECT `+itemCols+` FROM shopping_items WHERE list_id = ? `+itemOrder, listID)
}

func (s *ItemStore) ListByListAndCompleted(listID int64, completed bool) ([]model.Item, error) {
	return s.queryItems(
		`SELECT `+itemCols+` FROM shopping_items WHERE list_id = ? AND completed = ? `+itemOrder,
		listID, boolToInt(completed),
	)
}

// Update replaces every column of the item with the given id. It returns
// nil when no such item exists.
func (s *ItemStore) Update(item model.Item) (*model.Item, error) {
	_, err := s.db.Exec(
		`UPDATE shopping_items
		 SET list_id = ?, name = ?, category = ?, quantity = ?, completed = ?, notes = ?,
		     sort_order = ?, created_at = ?, modified_at = ?
		 WHERE id = ?`,
		item.ListID, item.Name, item.Category, item.Quantity, boolToInt(item.Completed), item.Notes,
		item.SortOrder, item.CreatedAt.UTC(), item.ModifiedAt.UTC(), item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(item.ID)
}

func (s *ItemStore) UpdateSortOrder(id int64, sortOrder int, now time.Time) error {
	_, err := s.db.Exec(
		`UPDATE shopping_items SET sort_order = ?, modified_at = ? WHERE id = ?`,
		sortOrder, now.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update sort order for id %d: %w", id, err)
	}
	return nil
}

func (s *ItemStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// CountByList returns the total and completed item counts for a list.
func (s *ItemStore) CountByList(listID int64) (total, completed int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM shopping_items WHERE list_id = ?`,
		listID,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count items: %w", err)
	}
	return total, completed, nil
}

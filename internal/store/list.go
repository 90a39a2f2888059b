package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/progress"
)

type ListStore struct {
	db DBTX
}

func NewListStore(db DBTX) *ListStore {
	return &ListStore{db: db}
}

func scanList(s scanner) (*model.List, error) {
	var l model.List
	var completed int
	if err := s.Scan(&l.ID, &l.Name, &completed, &l.CreatedAt, &l.ModifiedAt); err != nil {
		return nil, err
	}
	l.Completed = completed != 0
	return &l, nil
}

const listCols = `id, name, completed, created_at, modified_at`

func (s *ListStore) Create(name string, completed bool, now time.Time) (*model.List, error) {
	now = now.UTC()
	result, err := s.db.Exec(
		`INSERT INTO shopping_lists (name, completed, created_at, modified_at) VALUES (?, ?, ?, ?)`,
		name, boolToInt(completed), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id int64) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM shopping_lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) queryLists(query string, args ...any) ([]model.List, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// List returns all lists, most recently modified first.
func (s *ListStore) List() ([]model.List, error) {
	return s.queryLists(`SELECT ` + listCols + ` FROM shopping_lists ORDER BY modified_at DESC, id DESC`)
}

func (s *ListStore) ListByCompleted(completed bool) ([]model.List, error) {
	return s.queryLists(
		`SELECT `+listCols+` FROM shopping_lists WHERE completed = ? ORDER BY modified_at DESC, id DESC`,
		boolToInt(completed),
	)
}

// Summaries returns every list with its item counts, most recently modified
// first. Counts are aggregated in the same statement so a list and its
// progress always come from one snapshot.
func (s *ListStore) Summaries() ([]model.ListSummary, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.name, l.completed, l.created_at, l.modified_at,
		       COUNT(i.id), COALESCE(SUM(i.completed), 0)
		FROM shopping_lists l
		LEFT JOIN shopping_items i ON i.list_id = l.id
		GROUP BY l.id
		ORDER BY l.modified_at DESC, l.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.ListSummary
	for rows.Next() {
		var l model.List
		var completed, total, done int
		if err := rows.Scan(&l.ID, &l.Name, &completed, &l.CreatedAt, &l.ModifiedAt, &total, &done); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		l.Completed = completed != 0
		summaries = append(summaries, model.ListSummary{List: l, Progress: progress.FromCounts(total, done)})
	}
	return summaries, rows.Err()
}

// Update replaces every column of the list with the given id. It returns
// nil when no such list exists.
func (s *ListStore) Update(l model.List) (*model.List, error) {
	_, err := s.db.Exec(
		`UPDATE shopping_lists SET name = ?, completed = ?, created_at = ?, modified_at = ? WHERE id = ?`,
		l.Name, boolToInt(l.Completed), l.CreatedAt.UTC(), l.ModifiedAt.UTC(), l.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return s.GetByID(l.ID)
}

// Delete removes the list; its items go with it through the foreign key.
func (s *ListStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shopping_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

func (s *ListStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM shopping_lists`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lists: %w", err)
	}
	return count, nil
}

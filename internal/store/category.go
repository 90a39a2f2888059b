package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/smartcart/internal/model"
)

type CategoryStore struct {
	db DBTX
}

func NewCategoryStore(db DBTX) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(s scanner) (*model.Category, error) {
	var c model.Category
	var isDefault int
	if err := s.Scan(&c.ID, &c.Name, &c.Color, &isDefault, &c.CreatedAt, &c.ModifiedAt); err != nil {
		return nil, err
	}
	c.IsDefault = isDefault != 0
	return &c, nil
}

const categoryCols = `id, name, color, is_default, created_at, modified_at`

func (s *CategoryStore) Create(c model.Category) (*model.Category, error) {
	result, err := s.db.Exec(
		`INSERT INTO categories (name, color, is_default, created_at, modified_at) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Color, boolToInt(c.IsDefault), c.CreatedAt.UTC(), c.ModifiedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CategoryStore) GetByID(id int64) (*model.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List returns built-in categories first, then custom ones, each by name.
func (s *CategoryStore) List() ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryCols + ` FROM categories ORDER BY is_default DESC, name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) Update(c model.Category) (*model.Category, error) {
	_, err := s.db.Exec(
		`UPDATE categories SET name = ?, color = ?, is_default = ?, created_at = ?, modified_at = ? WHERE id = ?`,
		c.Name, c.Color, boolToInt(c.IsDefault), c.CreatedAt.UTC(), c.ModifiedAt.UTC(), c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetByID(c.ID)
}

// DeleteCustom deletes the category unless it is a built-in one. It reports
// whether a row was removed.
func (s *CategoryStore) DeleteCustom(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ? AND is_default = 0`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *CategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

package repository

import (
	"fmt"
	"strings"

	"github.com/dukerupert/smartcart/internal/model"
)

// CreateCategory adds a custom category. A blank color gets the default.
func (r *Repository) CreateCategory(name, color string) (*model.Category, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = model.DefaultCategoryColor
	}

	now := r.stamp()
	c, err := r.categories.Create(model.Category{
		Name:       name,
		Color:      color,
		CreatedAt:  now,
		ModifiedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	r.notify(categoriesTopic())
	return c, nil
}

// UpdateCategory changes name and color. Whether a category is built in
// cannot be changed. It returns nil when the category does not exist.
func (r *Repository) UpdateCategory(c model.Category) (*model.Category, error) {
	name, err := validName(c.Name)
	if err != nil {
		return nil, err
	}

	existing, err := r.categories.GetByID(c.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Name = name
	if color := strings.TrimSpace(c.Color); color != "" {
		existing.Color = color
	}
	existing.ModifiedAt = r.stamp()

	updated, err := r.categories.Update(*existing)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", c.ID, err)
	}
	r.notify(categoriesTopic())
	return updated, nil
}

// DeleteCategory removes a custom category. Built-in categories are refused
// with ErrDefaultCategory; missing ones are ignored.
func (r *Repository) DeleteCategory(id int64) error {
	deleted, err := r.categories.DeleteCustom(id)
	if err != nil {
		return err
	}
	if deleted {
		r.notify(categoriesTopic())
		return nil
	}

	c, err := r.categories.GetByID(id)
	if err != nil {
		return err
	}
	if c != nil && c.IsDefault {
		return ErrDefaultCategory
	}
	return nil
}

func (r *Repository) GetCategory(id int64) (*model.Category, error) {
	return r.categories.GetByID(id)
}

// Categories returns built-in categories first, then custom ones by name.
func (r *Repository) Categories() ([]model.Category, error) {
	return r.categories.List()
}

package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dukerupert/smartcart/internal/grocery"
	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/ordering"
	"github.com/dukerupert/smartcart/internal/store"
)

// CreateItem adds an item at the end of the list and returns its id. Blank
// category and quantity fall back to their defaults.
func (r *Repository) CreateItem(listID int64, name, category, quantity string) (int64, error) {
	item, err := r.AddItem(model.Item{
		ListID:   listID,
		Name:     name,
		Category: category,
		Quantity: quantity,
	})
	if err != nil {
		return 0, err
	}
	return item.ID, nil
}

// AddItem inserts item at the end of its list. ID, SortOrder and timestamps
// are assigned here; the remaining fields are taken as given.
func (r *Repository) AddItem(item model.Item) (*model.Item, error) {
	name, err := validName(item.Name)
	if err != nil {
		return nil, err
	}
	item.Name = name
	item.Category = r.itemCategory(item.Category, name)
	item.Quantity = itemQuantity(item.Quantity)

	unlock := r.locks.lock(item.ListID)
	defer unlock()

	var created *model.Item
	err = store.WithTx(r.db, func(tx *sql.Tx) error {
		l, err := store.NewListStore(tx).GetByID(item.ListID)
		if err != nil {
			return err
		}
		if l == nil {
			return ErrListNotFound
		}

		items := store.NewItemStore(tx)
		existing, err := items.ListByList(item.ListID)
		if err != nil {
			return err
		}

		now := r.stamp()
		item.ID = 0
		item.SortOrder = ordering.Next(existing)
		item.CreatedAt = now
		item.ModifiedAt = now
		created, err = items.Create(item)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("add item to list %d: %w", item.ListID, err)
	}

	r.logger.Debug("item created", "list_id", created.ListID, "item_id", created.ID, "sort_order", created.SortOrder)
	r.notify(itemsTopic(created.ListID), listsTopic())
	return created, nil
}

// UpdateItem replaces the editable fields of an item: name, category,
// quantity, completed and notes. It is not a full replace: the ListID,
// SortOrder and CreatedAt fields of item are ignored and the stored values
// kept. It returns nil when the item does not exist.
func (r *Repository) UpdateItem(item model.Item) (*model.Item, error) {
	name, err := validName(item.Name)
	if err != nil {
		return nil, err
	}
	return r.updateItem(item.ID, func(cur *model.Item) {
		cur.Name = name
		cur.Category = r.itemCategory(item.Category, name)
		cur.Quantity = itemQuantity(item.Quantity)
		cur.Completed = item.Completed
		cur.Notes = item.Notes
	})
}

// ToggleItemCompleted flips the completed flag. It returns nil when the item
// does not exist.
func (r *Repository) ToggleItemCompleted(id int64) (*model.Item, error) {
	return r.updateItem(id, func(cur *model.Item) { cur.Completed = !cur.Completed })
}

func (r *Repository) updateItem(id int64, fn func(*model.Item)) (*model.Item, error) {
	cur, err := r.items.GetByID(id)
	if err != nil || cur == nil {
		return nil, err
	}

	unlock := r.locks.lock(cur.ListID)
	defer unlock()

	var updated *model.Item
	err = store.WithTx(r.db, func(tx *sql.Tx) error {
		items := store.NewItemStore(tx)
		// Re-read under the lock; a move may have changed the sort order.
		it, err := items.GetByID(id)
		if err != nil || it == nil {
			return err
		}
		fn(it)
		it.ModifiedAt = r.stamp()
		updated, err = items.Update(*it)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	if updated != nil {
		r.notify(itemsTopic(updated.ListID), listsTopic())
	}
	return updated, nil
}

// DeleteItem removes an item. Missing items are ignored.
func (r *Repository) DeleteItem(id int64) error {
	item, err := r.items.GetByID(id)
	if err != nil || item == nil {
		return err
	}

	unlock := r.locks.lock(item.ListID)
	defer unlock()

	if err := r.items.Delete(id); err != nil {
		return err
	}
	r.notify(itemsTopic(item.ListID), listsTopic())
	return nil
}

// MoveItemUp swaps the item with the one before it. Nothing happens when the
// item is already first or is not in the list.
func (r *Repository) MoveItemUp(listID, id int64) error {
	return r.move(listID, id, ordering.PlanMoveUp)
}

// MoveItemDown swaps the item with the one after it. Nothing happens when the
// item is already last or is not in the list.
func (r *Repository) MoveItemDown(listID, id int64) error {
	return r.move(listID, id, ordering.PlanMoveDown)
}

func (r *Repository) move(listID, id int64, planner func([]model.Item, int64) ordering.Plan) error {
	unlock := r.locks.lock(listID)
	defer unlock()

	var plan ordering.Plan
	err := store.WithTx(r.db, func(tx *sql.Tx) error {
		items := store.NewItemStore(tx)
		current, err := items.ListByList(listID)
		if err != nil {
			return err
		}
		plan = planner(current, id)

		now := r.stamp()
		for _, a := range plan {
			if err := items.UpdateSortOrder(a.ItemID, a.SortOrder, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("move item %d: %w", id, err)
	}
	if len(plan) > 0 {
		r.logger.Debug("item moved", "list_id", listID, "item_id", id, "rows", len(plan))
		r.notify(itemsTopic(listID))
	}
	return nil
}

func (r *Repository) GetItem(id int64) (*model.Item, error) {
	return r.items.GetByID(id)
}

// Items returns the items of a list in manual order.
func (r *Repository) Items(listID int64) ([]model.Item, error) {
	return r.items.ListByList(listID)
}

func (r *Repository) ItemsByCompletion(listID int64, completed bool) ([]model.Item, error) {
	return r.items.ListByListAndCompleted(listID, completed)
}

func (r *Repository) itemCategory(category, name string) string {
	category = strings.TrimSpace(category)
	if category != "" {
		return category
	}
	if r.autoCategorize {
		return grocery.Categorize(name)
	}
	return model.DefaultCategory
}

func itemQuantity(quantity string) string {
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return model.DefaultQuantity
	}
	return quantity
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/progress"
	"github.com/dukerupert/smartcart/internal/store"
)

// CreateList inserts a new, not completed list and returns its id.
func (r *Repository) CreateList(name string) (int64, error) {
	name, err := validName(name)
	if err != nil {
		return 0, err
	}

	l, err := r.lists.Create(name, false, r.stamp())
	if err != nil {
		return 0, fmt.Errorf("create list: %w", err)
	}
	r.logger.Debug("list created", "list_id", l.ID, "name", l.Name)
	r.notify(listsTopic())
	return l.ID, nil
}

// RenameList changes the list name. It returns nil when the list does not
// exist.
func (r *Repository) RenameList(id int64, name string) (*model.List, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	return r.updateList(id, func(l *model.List) { l.Name = name })
}

// SetListCompleted sets the list's own completed flag. Item completion is
// not touched.
func (r *Repository) SetListCompleted(id int64, completed bool) (*model.List, error) {
	return r.updateList(id, func(l *model.List) { l.Completed = completed })
}

func (r *Repository) ToggleListCompleted(id int64) (*model.List, error) {
	return r.updateList(id, func(l *model.List) { l.Completed = !l.Completed })
}

// updateList applies fn to the current row and writes it back with a fresh
// modifiedAt, holding the list lock so concurrent edits do not interleave.
func (r *Repository) updateList(id int64, fn func(*model.List)) (*model.List, error) {
	unlock := r.locks.lock(id)
	defer unlock()

	var updated *model.List
	err := store.WithTx(r.db, func(tx *sql.Tx) error {
		lists := store.NewListStore(tx)
		l, err := lists.GetByID(id)
		if err != nil || l == nil {
			return err
		}
		fn(l)
		l.ModifiedAt = r.stamp()
		updated, err = lists.Update(*l)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update list %d: %w", id, err)
	}
	if updated != nil {
		r.notify(listsTopic())
	}
	return updated, nil
}

// DeleteList removes the list and all of its items.
func (r *Repository) DeleteList(id int64) error {
	unlock := r.locks.lock(id)
	defer unlock()

	if err := r.lists.Delete(id); err != nil {
		return err
	}
	r.notify(listsTopic(), itemsTopic(id))
	return nil
}

func (r *Repository) GetList(id int64) (*model.List, error) {
	return r.lists.GetByID(id)
}

// Lists returns every list with its progress, most recently modified first.
func (r *Repository) Lists() ([]model.ListSummary, error) {
	return r.lists.Summaries()
}

// ListsByCompletion filters on the list's own completed flag.
func (r *Repository) ListsByCompletion(completed bool) ([]model.List, error) {
	return r.lists.ListByCompleted(completed)
}

// Progress returns the item counts of a list. A missing list reports zero
// items.
func (r *Repository) Progress(listID int64) (model.Progress, error) {
	total, completed, err := r.items.CountByList(listID)
	if err != nil {
		return model.Progress{}, err
	}
	return progress.FromCounts(total, completed), nil
}

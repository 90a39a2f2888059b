package repository

import "errors"

var (
	// ErrInvalidName is returned when a list, item or category name is blank.
	ErrInvalidName = errors.New("name must not be blank")

	// ErrDefaultCategory is returned when deleting a built-in category.
	ErrDefaultCategory = errors.New("built-in categories cannot be deleted")

	// ErrListNotFound is returned when adding an item to a list that does not exist.
	ErrListNotFound = errors.New("list not found")
)

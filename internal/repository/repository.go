// Package repository is the single entry point for reading and changing
// shopping data. Every write goes through here so that ordering, timestamps
// and change notifications stay consistent.
package repository

import (
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/smartcart/internal/feed"
	"github.com/dukerupert/smartcart/internal/store"
)

// Feed entity names.
const (
	EntityLists      = "lists"
	EntityItems      = "items"
	EntityCategories = "categories"
)

// Repository coordinates the stores, the ordering rules and the change feed.
type Repository struct {
	db         *sql.DB
	feed       *feed.Feed
	lists      *store.ListStore
	items      *store.ItemStore
	categories *store.CategoryStore
	locks      *listLocks

	now            func() time.Time
	logger         *slog.Logger
	autoCategorize bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for createdAt/modifiedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithAutoCategorize makes CreateItem pick a built-in category from the item
// name when no category is given.
func WithAutoCategorize(enabled bool) Option {
	return func(r *Repository) { r.autoCategorize = enabled }
}

// New creates a Repository over an open database. Change notifications are
// published to f.
func New(db *sql.DB, f *feed.Feed, opts ...Option) *Repository {
	r := &Repository{
		db:         db,
		feed:       f,
		lists:      store.NewListStore(db),
		items:      store.NewItemStore(db),
		categories: store.NewCategoryStore(db),
		locks:      newListLocks(),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Feed returns the change feed the repository publishes to.
func (r *Repository) Feed() *feed.Feed {
	return r.feed
}

func (r *Repository) stamp() time.Time {
	return r.now().UTC()
}

func (r *Repository) notify(topics ...feed.Topic) {
	r.feed.Notify(topics...)
}

func listsTopic() feed.Topic {
	return feed.Topic{Entity: EntityLists}
}

func itemsTopic(listID int64) feed.Topic {
	return feed.Topic{Entity: EntityItems, ID: listID}
}

func categoriesTopic() feed.Topic {
	return feed.Topic{Entity: EntityCategories}
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

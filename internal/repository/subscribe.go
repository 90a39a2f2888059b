package repository

import (
	"github.com/dukerupert/smartcart/internal/feed"
	"github.com/dukerupert/smartcart/internal/model"
)

// SubscribeLists streams every list with its progress, most recently
// modified first. Item writes refresh it too since they change the counts.
func (r *Repository) SubscribeLists() (*feed.Subscription[[]model.ListSummary], error) {
	return feed.Subscribe(r.feed, r.lists.Summaries, listsTopic())
}

// SubscribeItems streams the items of one list in manual order.
func (r *Repository) SubscribeItems(listID int64) (*feed.Subscription[[]model.Item], error) {
	return feed.Subscribe(r.feed, func() ([]model.Item, error) {
		return r.items.ListByList(listID)
	}, itemsTopic(listID))
}

func (r *Repository) SubscribeCategories() (*feed.Subscription[[]model.Category], error) {
	return feed.Subscribe(r.feed, r.categories.List, categoriesTopic())
}

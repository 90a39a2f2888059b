package repository

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/smartcart/internal/feed"
	"github.com/dukerupert/smartcart/internal/grocery"
	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/ordering"
	"github.com/dukerupert/smartcart/internal/store"
)

// SeedResult reports how many rows SeedIfEmpty inserted.
type SeedResult struct {
	Categories int `json:"categories"`
	Lists      int `json:"lists"`
	Items      int `json:"items"`
}

type sampleItem struct {
	name, category, quantity string
	completed                bool
}

type sampleList struct {
	name      string
	completed bool
	items     []sampleItem
}

var sampleLists = []sampleList{
	{name: "Groceries", items: []sampleItem{
		{"Apples", grocery.Produce, "2 lbs", false},
		{"Milk", grocery.Dairy, "1 gallon", false},
		{"Bread", grocery.Bakery, "1 loaf", true},
		{"Chicken Breast", grocery.Meat, "2 lbs", false},
		{"Eggs", grocery.Dairy, "1 dozen", false},
	}},
	{name: "Electronics", items: []sampleItem{
		{"USB Cable", "Accessories", "1", false},
		{"Phone Charger", "Accessories", "1", false},
	}},
	{name: "Home Supplies", completed: true, items: []sampleItem{
		{"Paper Towels", grocery.Household, "1 pack", true},
		{"Dish Soap", grocery.Household, "1 bottle", true},
		{"Laundry Detergent", grocery.Household, "1 bottle", true},
		{"Light Bulbs", "Hardware", "4 pack", true},
		{"Batteries", "Hardware", "1 pack", true},
		{"Air Freshener", grocery.Household, "2", true},
		{"Trash Bags", grocery.Household, "1 box", true},
		{"Cleaning Spray", grocery.Household, "1 bottle", true},
	}},
}

// SeedIfEmpty inserts the built-in categories when there are none, and the
// sample lists when there are no lists. Both checks and inserts run in one
// transaction, so calling it again changes nothing.
func (r *Repository) SeedIfEmpty() (SeedResult, error) {
	var res SeedResult
	err := store.WithTx(r.db, func(tx *sql.Tx) error {
		res = SeedResult{}
		now := r.stamp()

		categories := store.NewCategoryStore(tx)
		n, err := categories.Count()
		if err != nil {
			return err
		}
		if n == 0 {
			for _, dc := range grocery.DefaultCategories {
				if _, err := categories.Create(model.Category{
					Name:       dc.Name,
					Color:      dc.Color,
					IsDefault:  true,
					CreatedAt:  now,
					ModifiedAt: now,
				}); err != nil {
					return err
				}
				res.Categories++
			}
		}

		lists := store.NewListStore(tx)
		n, err = lists.Count()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		items := store.NewItemStore(tx)
		for _, sl := range sampleLists {
			l, err := lists.Create(sl.name, sl.completed, now)
			if err != nil {
				return err
			}
			res.Lists++

			var created []model.Item
			for _, si := range sl.items {
				item, err := items.Create(model.Item{
					ListID:     l.ID,
					Name:       si.name,
					Category:   si.category,
					Quantity:   si.quantity,
					Completed:  si.completed,
					SortOrder:  ordering.Next(created),
					CreatedAt:  now,
					ModifiedAt: now,
				})
				if err != nil {
					return err
				}
				created = append(created, *item)
				res.Items++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed: %w", err)
	}

	if res.Categories > 0 {
		r.notify(categoriesTopic())
	}
	if res.Lists > 0 {
		r.notify(listsTopic(), feed.Topic{Entity: EntityItems})
	}
	r.logger.Info("seed complete", "categories", res.Categories, "lists", res.Lists, "items", res.Items)
	return res, nil
}

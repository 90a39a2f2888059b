package grocery

import (
	"strings"

	"github.com/dukerupert/smartcart/internal/model"
)

// Built-in category names.
const (
	General   = model.DefaultCategory
	Produce   = "Fruits & Vegetables"
	Dairy     = "Dairy"
	Meat      = "Meat"
	Bakery    = "Bakery"
	Pantry    = "Pantry"
	Frozen    = "Frozen"
	Snacks    = "Snacks"
	Beverages = "Beverages"
	Household = "Household"
)

// DefaultCategory describes a built-in category seeded into a new store.
type DefaultCategory struct {
	Name  string
	Color string
}

// DefaultCategories is the built-in category set, in seeding order.
var DefaultCategories = []DefaultCategory{
	{General, model.DefaultCategoryColor},
	{Produce, "#4CAF50"},
	{Dairy, "#2196F3"},
	{Meat, "#F44336"},
	{Bakery, "#FF9800"},
	{Pantry, "#795548"},
	{Frozen, "#00BCD4"},
	{Snacks, "#E91E63"},
	{Beverages, "#9C27B0"},
	{Household, "#607D8B"},
}

// Categorize returns the built-in category for the given item name.
// Matching is case-insensitive: exact name first, then keywords that start a
// word in the name. Unknown items fall back to General.
func Categorize(itemName string) string {
	name := strings.Join(strings.Fields(strings.ToLower(itemName)), " ")
	if name == "" {
		return General
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	padded := " " + name
	for _, entry := range keywords {
		if strings.Contains(padded, " "+entry.keyword) {
			return entry.category
		}
	}

	return General
}

var exactMatch = map[string]string{
	"ham":     Meat,
	"tuna":    Meat,
	"corn":    Produce,
	"ice":     Frozen,
	"oil":     Pantry,
	"salt":    Pantry,
	"honey":   Pantry,
	"nuts":    Snacks,
	"gum":     Snacks,
	"milk":    Dairy,
	"cream":   Dairy,
	"bread":   Bakery,
	"water":   Beverages,
	"candles": Household,
}

type keyword struct {
	keyword  string
	category string
}

// keywords are checked in order; longer phrases come before the words they
// contain.
var keywords = []keyword{
	// Frozen first so "frozen peas" is not produce.
	{"frozen", Frozen},
	{"ice cream", Frozen},
	{"popsicle", Frozen},
	{"orange juice", Beverages},
	{"apple juice", Beverages},

	{"chicken", Meat},
	{"ground beef", Meat},
	{"ground turkey", Meat},
	{"beef", Meat},
	{"pork", Meat},
	{"turkey", Meat},
	{"bacon", Meat},
	{"sausage", Meat},
	{"steak", Meat},
	{"salmon", Meat},
	{"shrimp", Meat},
	{"fish", Meat},
	{"lamb", Meat},
	{"hot dog", Meat},
	{"deli meat", Meat},

	{"peanut butter", Pantry},
	{"eggplant", Produce},
	{"butternut", Produce},
	{"cream cheese", Dairy},
	{"sour cream", Dairy},
	{"almond milk", Dairy},
	{"oat milk", Dairy},
	{"yogurt", Dairy},
	{"cheese", Dairy},
	{"milk", Dairy},
	{"butter", Dairy},
	{"egg", Dairy},

	{"sweet potato", Produce},
	{"bell pepper", Produce},
	{"salad", Produce},
	{"lettuce", Produce},
	{"spinach", Produce},
	{"kale", Produce},
	{"apple", Produce},
	{"banana", Produce},
	{"orange", Produce},
	{"lemon", Produce},
	{"lime", Produce},
	{"avocado", Produce},
	{"tomato", Produce},
	{"potato", Produce},
	{"onion", Produce},
	{"garlic", Produce},
	{"carrot", Produce},
	{"celery", Produce},
	{"broccoli", Produce},
	{"cucumber", Produce},
	{"pepper", Produce},
	{"mushroom", Produce},
	{"grape", Produce},
	{"berry", Produce},
	{"berries", Produce},
	{"strawberr", Produce},
	{"blueberr", Produce},
	{"melon", Produce},
	{"watermelon", Produce},
	{"peach", Produce},
	{"pear", Produce},
	{"herb", Produce},
	{"fruit", Produce},

	{"sourdough", Bakery},
	{"bread", Bakery},
	{"bagel", Bakery},
	{"tortilla", Bakery},
	{"bun", Bakery},
	{"roll", Bakery},
	{"muffin", Bakery},
	{"croissant", Bakery},
	{"cake", Bakery},

	{"olive oil", Pantry},
	{"soy sauce", Pantry},
	{"canned", Pantry},
	{"cereal", Pantry},
	{"oatmeal", Pantry},
	{"rice", Pantry},
	{"pasta", Pantry},
	{"noodle", Pantry},
	{"flour", Pantry},
	{"sugar", Pantry},
	{"spice", Pantry},
	{"sauce", Pantry},
	{"broth", Pantry},
	{"soup", Pantry},
	{"bean", Pantry},
	{"lentil", Pantry},

	{"sparkling water", Beverages},
	{"juice", Beverages},
	{"coffee", Beverages},
	{"tea", Beverages},
	{"soda", Beverages},
	{"beer", Beverages},
	{"wine", Beverages},
	{"drink", Beverages},

	{"granola bar", Snacks},
	{"trail mix", Snacks},
	{"chip", Snacks},
	{"cracker", Snacks},
	{"cookie", Snacks},
	{"popcorn", Snacks},
	{"pretzel", Snacks},
	{"candy", Snacks},
	{"chocolate", Snacks},
	{"snack", Snacks},

	{"paper towel", Household},
	{"toilet paper", Household},
	{"trash bag", Household},
	{"dish soap", Household},
	{"laundry", Household},
	{"detergent", Household},
	{"cleaning", Household},
	{"cleaner", Household},
	{"sponge", Household},
	{"foil", Household},
	{"air freshener", Household},
	{"batteries", Household},
	{"battery", Household},
	{"light bulb", Household},
}

package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/plaugmann/family-meal-planner/internal/store"
)

// ErrIncompletePlan means the week does not have exactly the required
// number of dinners; generation refuses to run against a partial plan.
var ErrIncompletePlan = errors.New("weekly plan is incomplete")

// PlanSize is the product rule: a full week is exactly three dinners.
const PlanSize = 3

const (
	CategoryProduce  = "PRODUCE"
	CategoryDairy    = "DAIRY"
	CategoryMeatFish = "MEAT_FISH"
	CategoryPantry   = "PANTRY"
	CategoryFrozen   = "FROZEN"
	CategoryOther    = "OTHER"
)

// Keyword lists checked in this order; the first category containing a
// keyword of the full ingredient line wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryProduce, []string{
		"tomato", "onion", "garlic", "carrot", "potato", "pepper", "broccoli",
		"spinach", "salad", "lettuce", "cucumber", "zucchini", "squash",
		"mushroom", "apple", "banana", "lemon", "lime", "orange", "berry",
		"berries", "avocado", "cabbage", "kale", "leek", "celery", "herbs",
		"parsley", "cilantro", "basil", "ginger", "scallion",
	}},
	{CategoryDairy, []string{
		"milk", "butter", "cheese", "cream", "yogurt", "yoghurt", "creme",
		"parmesan", "mozzarella", "feta", "egg",
	}},
	{CategoryMeatFish, []string{
		"chicken", "beef", "pork", "lamb", "bacon", "sausage", "ham", "turkey",
		"fish", "salmon", "cod", "tuna", "shrimp", "prawn", "meat", "mince",
		"steak", "fillet",
	}},
	{CategoryPantry, []string{
		"flour", "sugar", "salt", "oil", "vinegar", "rice", "pasta",
		"spaghetti", "noodle", "bean", "lentil", "chickpea", "stock", "broth",
		"sauce", "spice", "cumin", "paprika", "oregano", "cinnamon", "honey",
		"mustard", "soy", "can", "jar", "bread", "oats", "nut",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cream", "peas",
	}},
}

// NormalizeText is the matching normalization used for both inventory
// names and ingredient lines.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Categorize assigns the full ingredient line to the first category whose
// keyword list matches it.
func Categorize(line string) string {
	normalized := NormalizeText(line)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				return group.category
			}
		}
	}
	return CategoryOther
}

// SplitQuantity peels a leading quantity off an ingredient line: when the
// first token starts with a digit, up to two tokens become the quantity
// text and the rest the name. No unit grammar, on purpose.
func SplitQuantity(line string) (name, quantityText string) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return line, ""
	}
	if tokens[0] != "" && tokens[0][0] >= '0' && tokens[0][0] <= '9' {
		n := 2
		if len(tokens) < n {
			n = len(tokens)
		}
		name = strings.Join(tokens[n:], " ")
		if name == "" {
			name = line
		}
		return name, strings.Join(tokens[:n], " ")
	}
	return line, ""
}

// BuildShoppingItems merges the week's ingredient lines into a shopping
// list. Lines containing an inventory name (substring match, so inventory
// "milk" also suppresses "buttermilk") are treated as already on hand.
// Duplicate names keep the first entry and concatenate later quantities
// with " + " rather than summing them.
func BuildShoppingItems(lines []string, inventoryNames []string) []store.NewShoppingItem {
	normalizedInventory := make([]string, 0, len(inventoryNames))
	for _, name := range inventoryNames {
		if n := NormalizeText(name); n != "" {
			normalizedInventory = append(normalizedInventory, n)
		}
	}

	var order []string
	grouped := make(map[string]*store.NewShoppingItem)

	for _, line := range lines {
		normalizedLine := NormalizeText(line)
		inInventory := false
		for _, name := range normalizedInventory {
			if strings.Contains(normalizedLine, name) {
				inInventory = true
				break
			}
		}
		if inInventory {
			continue
		}

		name, quantityText := SplitQuantity(line)
		key := NormalizeText(name)
		category := Categorize(line)

		existing, ok := grouped[key]
		if !ok {
			grouped[key] = &store.NewShoppingItem{
				Name:         name,
				QuantityText: quantityText,
				Category:     category,
			}
			order = append(order, key)
			continue
		}
		if quantityText != "" {
			if existing.QuantityText != "" {
				existing.QuantityText += " + " + quantityText
			} else {
				existing.QuantityText = quantityText
			}
		}
	}

	items := make([]store.NewShoppingItem, 0, len(order))
	for _, key := range order {
		items = append(items, *grouped[key])
	}
	return items
}

// ShoppingStore is the slice of the store the shopping list service
// touches. Satisfied by *store.Store.
type ShoppingStore interface {
	GetWeeklyPlan(ctx context.Context, householdID int, weekStart time.Time) (*store.WeeklyPlan, error)
	ActiveInventoryNames(ctx context.Context, householdID int) ([]string, error)
	PlanIngredientLines(ctx context.Context, planID int) ([]string, error)
	ReplaceShoppingList(ctx context.Context, planID int, items []store.NewShoppingItem) ([]store.ShoppingListItem, error)
	ListShoppingItems(ctx context.Context, planID int) ([]store.ShoppingListItem, error)
	UpdateShoppingItem(ctx context.Context, householdID, itemID int, patch store.ShoppingItemPatch) (*store.ShoppingListItem, error)
	DeleteShoppingItem(ctx context.Context, householdID, itemID int) error
}

// ShoppingListService regenerates a plan's shopping list from its recipes
// and the household inventory.
type ShoppingListService struct {
	store ShoppingStore
}

func NewShoppingListService(s ShoppingStore) *ShoppingListService {
	return &ShoppingListService{store: s}
}

// Generate rebuilds the list for the household's current-week plan. The
// plan must hold exactly PlanSize recipes; otherwise ErrIncompletePlan is
// returned and nothing is written.
func (s *ShoppingListService) Generate(ctx context.Context, householdID int) (*store.WeeklyPlan, []store.ShoppingListItem, error) {
	plan, err := s.store.GetWeeklyPlan(ctx, householdID, WeekStartUTC())
	if err != nil {
		return nil, nil, err
	}
	if plan == nil || len(plan.Items) != PlanSize {
		return nil, nil, ErrIncompletePlan
	}

	inventoryNames, err := s.store.ActiveInventoryNames(ctx, householdID)
	if err != nil {
		return nil, nil, err
	}

	lines, err := s.store.PlanIngredientLines(ctx, plan.ID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.store.ReplaceShoppingList(ctx, plan.ID, BuildShoppingItems(lines, inventoryNames))
	if err != nil {
		return nil, nil, err
	}
	return plan, items, nil
}

// CurrentList returns the current-week plan and its persisted items
// without regenerating.
func (s *ShoppingListService) CurrentList(ctx context.Context, householdID int) (*store.WeeklyPlan, []store.ShoppingListItem, error) {
	plan, err := s.store.GetWeeklyPlan(ctx, householdID, WeekStartUTC())
	if err != nil || plan == nil {
		return nil, nil, err
	}
	items, err := s.store.ListShoppingItems(ctx, plan.ID)
	return plan, items, err
}

// UpdateItem patches a single list item. The item must belong to one of
// the household's plans; anything else reads as sql.ErrNoRows.
func (s *ShoppingListService) UpdateItem(ctx context.Context, householdID, itemID int, patch store.ShoppingItemPatch) (*store.ShoppingListItem, error) {
	return s.store.UpdateShoppingItem(ctx, householdID, itemID, patch)
}

// DeleteItem removes a single list item, scoped to the household.
func (s *ShoppingListService) DeleteItem(ctx context.Context, householdID, itemID int) error {
	return s.store.DeleteShoppingItem(ctx, householdID, itemID)
}

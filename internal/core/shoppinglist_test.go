package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaugmann/family-meal-planner/internal/store"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2 tomatoes", CategoryProduce},
		{"1 onion, chopped", CategoryProduce},
		{"2 dl milk", CategoryDairy},
		{"500 g chicken breast", CategoryMeatFish},
		{"400 g pasta", CategoryPantry},
		{"200 g frozen peas", CategoryFrozen},
		{"1 mystery thing", CategoryOther},
		// first matching category in check order wins: "cream" is dairy
		// even though "ice cream" is also a frozen keyword
		{"2 dl cream", CategoryDairy},
		{"GARLIC", CategoryProduce},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.line), tt.line)
	}
}

func TestSplitQuantity(t *testing.T) {
	tests := []struct {
		line         string
		wantName     string
		wantQuantity string
	}{
		{"400 g pasta", "pasta", "400 g"},
		{"2 onions", "2 onions", "2 onions"},
		{"salt", "salt", ""},
		{"1,5 dl cream", "cream", "1,5 dl"},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, quantity := SplitQuantity(tt.line)
		assert.Equal(t, tt.wantName, name, tt.line)
		assert.Equal(t, tt.wantQuantity, quantity, tt.line)
	}
}

func TestBuildShoppingItemsSuppressesInventory(t *testing.T) {
	items := BuildShoppingItems(
		[]string{"2 cloves garlic", "400 g pasta", "2 tbsp olive oil"},
		[]string{"garlic", "Olive Oil"},
	)
	require.Len(t, items, 1)
	assert.Equal(t, "pasta", items[0].Name)
}

func TestBuildShoppingItemsSubstringFalsePositive(t *testing.T) {
	// Inventory "milk" also suppresses "buttermilk"; substring matching is
	// the documented behavior.
	items := BuildShoppingItems(
		[]string{"2 dl buttermilk", "1 fresh lemon"},
		[]string{"milk"},
	)
	require.Len(t, items, 1)
	assert.Equal(t, "lemon", items[0].Name)
	assert.Equal(t, "1 fresh", items[0].QuantityText)
}

func TestBuildShoppingItemsGroupsQuantities(t *testing.T) {
	items := BuildShoppingItems(
		[]string{"400 g pasta", "200 g pasta", "1 large onion"},
		nil,
	)
	require.Len(t, items, 2)
	assert.Equal(t, "pasta", items[0].Name)
	assert.Equal(t, "400 g + 200 g", items[0].QuantityText)
	assert.Equal(t, CategoryPantry, items[0].Category)
	assert.Equal(t, "onion", items[1].Name)
	assert.Equal(t, "1 large", items[1].QuantityText)
}

func TestBuildShoppingItemsGroupingIsCaseInsensitive(t *testing.T) {
	items := BuildShoppingItems(
		[]string{"400 g Pasta", "200 g pasta"},
		nil,
	)
	require.Len(t, items, 1)
	// first spelling wins
	assert.Equal(t, "Pasta", items[0].Name)
	assert.Equal(t, "400 g + 200 g", items[0].QuantityText)
}

func TestBuildShoppingItemsNoQuantity(t *testing.T) {
	items := BuildShoppingItems([]string{"salt", "salt"}, nil)
	require.Len(t, items, 1)
	assert.Equal(t, "salt", items[0].Name)
	assert.Equal(t, "", items[0].QuantityText)
}

func TestBuildShoppingItemsPreservesOrder(t *testing.T) {
	items := BuildShoppingItems(
		[]string{"1 whole leek", "2 dl milk", "400 g rice"},
		nil,
	)
	require.Len(t, items, 3)
	assert.Equal(t, []store.NewShoppingItem{
		{Name: "leek", QuantityText: "1 whole", Category: CategoryProduce},
		{Name: "milk", QuantityText: "2 dl", Category: CategoryDairy},
		{Name: "rice", QuantityText: "400 g", Category: CategoryPantry},
	}, items)
}

func TestBuildShoppingItemsEmpty(t *testing.T) {
	assert.Empty(t, BuildShoppingItems(nil, nil))
	assert.Empty(t, BuildShoppingItems([]string{"garlic"}, []string{"garlic"}))
}

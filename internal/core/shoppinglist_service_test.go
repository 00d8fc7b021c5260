package core

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaugmann/family-meal-planner/internal/store"
)

type fakeShoppingStore struct {
	plan      *store.WeeklyPlan
	planErr   error
	inventory []string
	lines     []string

	replaceCalls int
	replaced     []store.NewShoppingItem

	// item id -> owning household, mirroring the ownership subquery
	itemOwners map[int]int
}

func (f *fakeShoppingStore) GetWeeklyPlan(_ context.Context, _ int, _ time.Time) (*store.WeeklyPlan, error) {
	return f.plan, f.planErr
}

func (f *fakeShoppingStore) ActiveInventoryNames(_ context.Context, _ int) ([]string, error) {
	return f.inventory, nil
}

func (f *fakeShoppingStore) PlanIngredientLines(_ context.Context, _ int) ([]string, error) {
	return f.lines, nil
}

func (f *fakeShoppingStore) ReplaceShoppingList(_ context.Context, planID int, items []store.NewShoppingItem) ([]store.ShoppingListItem, error) {
	f.replaceCalls++
	f.replaced = items
	out := make([]store.ShoppingListItem, 0, len(items))
	for i, item := range items {
		out = append(out, store.ShoppingListItem{
			ID:           i + 1,
			WeeklyPlanID: planID,
			Name:         item.Name,
			QuantityText: item.QuantityText,
			Category:     item.Category,
		})
	}
	return out, nil
}

func (f *fakeShoppingStore) ListShoppingItems(_ context.Context, _ int) ([]store.ShoppingListItem, error) {
	return nil, nil
}

func (f *fakeShoppingStore) UpdateShoppingItem(_ context.Context, householdID, itemID int, patch store.ShoppingItemPatch) (*store.ShoppingListItem, error) {
	if f.itemOwners[itemID] != householdID {
		return nil, sql.ErrNoRows
	}
	item := &store.ShoppingListItem{ID: itemID}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.IsBought != nil {
		item.IsBought = *patch.IsBought
	}
	return item, nil
}

func (f *fakeShoppingStore) DeleteShoppingItem(_ context.Context, householdID, itemID int) error {
	if f.itemOwners[itemID] != householdID {
		return sql.ErrNoRows
	}
	delete(f.itemOwners, itemID)
	return nil
}

func planWithItems(n int) *store.WeeklyPlan {
	plan := &store.WeeklyPlan{ID: 11, HouseholdID: 1}
	for i := 0; i < n; i++ {
		plan.Items = append(plan.Items, store.WeeklyPlanItem{ID: i + 1, RecipeID: i + 1, Servings: 4})
	}
	return plan
}

func TestGenerateRejectsIncompletePlan(t *testing.T) {
	for _, n := range []int{0, 1, 2, 4} {
		fake := &fakeShoppingStore{plan: planWithItems(n)}
		if n == 0 {
			fake.plan = nil
		}
		svc := NewShoppingListService(fake)

		_, _, err := svc.Generate(context.Background(), 1)
		assert.ErrorIs(t, err, ErrIncompletePlan, "items=%d", n)
		assert.Zero(t, fake.replaceCalls, "items=%d: list must not be touched", n)
	}
}

func TestGeneratePropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	fake := &fakeShoppingStore{planErr: boom}
	svc := NewShoppingListService(fake)

	_, _, err := svc.Generate(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, fake.replaceCalls)
}

func TestGenerateReplacesList(t *testing.T) {
	fake := &fakeShoppingStore{
		plan:      planWithItems(3),
		lines:     []string{"400 g pasta", "2 cloves garlic", "2 dl milk"},
		inventory: []string{"garlic"},
	}
	svc := NewShoppingListService(fake)

	plan, items, err := svc.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 11, plan.ID)
	assert.Equal(t, 1, fake.replaceCalls)
	require.Len(t, items, 2)
	assert.Equal(t, "pasta", items[0].Name)
	assert.Equal(t, "milk", items[1].Name)
	assert.Equal(t, fake.replaced[0].Name, items[0].Name)
}

func TestUpdateItemScopedToHousehold(t *testing.T) {
	fake := &fakeShoppingStore{itemOwners: map[int]int{7: 1}}
	svc := NewShoppingListService(fake)
	bought := true

	_, err := svc.UpdateItem(context.Background(), 2, 7, store.ShoppingItemPatch{IsBought: &bought})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	item, err := svc.UpdateItem(context.Background(), 1, 7, store.ShoppingItemPatch{IsBought: &bought})
	require.NoError(t, err)
	assert.True(t, item.IsBought)
}

func TestDeleteItemScopedToHousehold(t *testing.T) {
	fake := &fakeShoppingStore{itemOwners: map[int]int{7: 1}}
	svc := NewShoppingListService(fake)

	assert.ErrorIs(t, svc.DeleteItem(context.Background(), 2, 7), sql.ErrNoRows)
	assert.NoError(t, svc.DeleteItem(context.Background(), 1, 7))
	assert.ErrorIs(t, svc.DeleteItem(context.Background(), 1, 7), sql.ErrNoRows)
}

package store

import (
	"context"
	"database/sql"
	"fmt"
)

type ShoppingListItem struct {
	ID           int    `json:"id"`
	WeeklyPlanID int    `json:"weekly_plan_id"`
	Name         string `json:"name"`
	QuantityText string `json:"quantity_text,omitempty"`
	Category     string `json:"category"`
	IsBought     bool   `json:"is_bought"`
}

type NewShoppingItem struct {
	Name         string
	QuantityText string
	Category     string
}

const shoppingColumns = `id, weekly_plan_id, name, COALESCE(quantity_text, ''), category, is_bought`

// ReplaceShoppingList regenerates the plan's list atomically: the previous
// items are deleted and the new set inserted inside one transaction, so
// readers never observe a half-empty list.
func (s *Store) ReplaceShoppingList(ctx context.Context, planID int, items []NewShoppingItem) ([]ShoppingListItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
DELETE FROM shopping_list_items WHERE weekly_plan_id = $1
`, planID); err != nil {
		return nil, fmt.Errorf("failed to clear shopping list: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO shopping_list_items (weekly_plan_id, name, quantity_text, category, is_bought)
VALUES ($1, $2, $3, $4, FALSE)
`, planID, item.Name, nullString(item.QuantityText), item.Category); err != nil {
			return nil, fmt.Errorf("failed to insert shopping item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.ListShoppingItems(ctx, planID)
}

func (s *Store) ListShoppingItems(ctx context.Context, planID int) ([]ShoppingListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+shoppingColumns+`
FROM shopping_list_items
WHERE weekly_plan_id = $1
ORDER BY category ASC, id ASC
`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ShoppingListItem
	for rows.Next() {
		var item ShoppingListItem
		if err := rows.Scan(&item.ID, &item.WeeklyPlanID, &item.Name, &item.QuantityText, &item.Category, &item.IsBought); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type ShoppingItemPatch struct {
	Name         *string
	QuantityText *string
	IsBought     *bool
}

// UpdateShoppingItem patches an item, but only when it hangs off one of
// the household's weekly plans. Cross-household ids read as sql.ErrNoRows.
func (s *Store) UpdateShoppingItem(ctx context.Context, householdID, itemID int, patch ShoppingItemPatch) (*ShoppingListItem, error) {
	sets := []string{}
	args := []any{itemID, householdID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.QuantityText != nil {
		add("quantity_text", nullString(*patch.QuantityText))
	}
	if patch.IsBought != nil {
		add("is_bought", *patch.IsBought)
	}
	if len(sets) == 0 {
		return nil, sql.ErrNoRows
	}

	query := "UPDATE shopping_list_items SET " + sets[0]
	for _, set := range sets[1:] {
		query += ", " + set
	}
	query += ` WHERE id = $1
AND weekly_plan_id IN (SELECT id FROM weekly_plans WHERE household_id = $2)
RETURNING ` + shoppingColumns

	var item ShoppingListItem
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&item.ID, &item.WeeklyPlanID, &item.Name, &item.QuantityText, &item.Category, &item.IsBought,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteShoppingItem(ctx context.Context, householdID, itemID int) error {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM shopping_list_items
WHERE id = $1
AND weekly_plan_id IN (SELECT id FROM weekly_plans WHERE household_id = $2)
`, itemID, householdID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

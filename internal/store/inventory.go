package store

import (
	"context"
	"database/sql"
	"fmt"
)

type InventoryItem struct {
	ID          int    `json:"id"`
	HouseholdID int    `json:"household_id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	IsActive    bool   `json:"is_active"`
}

const inventoryColumns = `id, household_id, name, location, is_active`

func (s *Store) ListInventory(ctx context.Context, householdID int) ([]InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+inventoryColumns+` FROM inventory_items WHERE household_id = $1 ORDER BY name ASC
`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		var item InventoryItem
		if err := rows.Scan(&item.ID, &item.HouseholdID, &item.Name, &item.Location, &item.IsActive); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ActiveInventoryNames feeds the shopping list generator's suppression step.
func (s *Store) ActiveInventoryNames(ctx context.Context, householdID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name FROM inventory_items WHERE household_id = $1 AND is_active = TRUE
`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) CreateInventoryItem(ctx context.Context, householdID int, name, location string) (*InventoryItem, error) {
	var item InventoryItem
	err := s.db.QueryRowContext(ctx, `
INSERT INTO inventory_items (household_id, name, location)
VALUES ($1, $2, $3)
RETURNING `+inventoryColumns+`
`, householdID, name, location).Scan(&item.ID, &item.HouseholdID, &item.Name, &item.Location, &item.IsActive)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type InventoryPatch struct {
	Name     *string
	Location *string
	IsActive *bool
}

func (s *Store) UpdateInventoryItem(ctx context.Context, householdID, itemID int, patch InventoryPatch) (*InventoryItem, error) {
	sets := []string{}
	args := []any{itemID, householdID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if len(sets) == 0 {
		return nil, sql.ErrNoRows
	}

	query := "UPDATE inventory_items SET " + sets[0]
	for _, set := range sets[1:] {
		query += ", " + set
	}
	query += " WHERE id = $1 AND household_id = $2 RETURNING " + inventoryColumns

	var item InventoryItem
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&item.ID, &item.HouseholdID, &item.Name, &item.Location, &item.IsActive,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteInventoryItem(ctx context.Context, householdID, itemID int) error {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM inventory_items WHERE id = $1 AND household_id = $2
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

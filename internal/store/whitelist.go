package store

import (
	"context"
	"database/sql"
	"fmt"
)

type WhitelistSite struct {
	ID          int    `json:"id"`
	HouseholdID int    `json:"household_id"`
	Domain      string `json:"domain"`
	Name        string `json:"name,omitempty"`
	IsActive    bool   `json:"is_active"`
}

const whitelistColumns = `id, household_id, domain, COALESCE(name, ''), is_active`

func (s *Store) ListWhitelist(ctx context.Context, householdID int) ([]WhitelistSite, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+whitelistColumns+` FROM whitelist_sites WHERE household_id = $1 ORDER BY domain ASC
`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []WhitelistSite
	for rows.Next() {
		var site WhitelistSite
		if err := rows.Scan(&site.ID, &site.HouseholdID, &site.Domain, &site.Name, &site.IsActive); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// ActiveWhitelist returns the household's approved search domains mapped to
// their display names (domain itself when unnamed).
func (s *Store) ActiveWhitelist(ctx context.Context, householdID int) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT domain, COALESCE(NULLIF(name, ''), domain)
FROM whitelist_sites
WHERE household_id = $1 AND is_active = TRUE
ORDER BY domain ASC
`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allowed := make(map[string]string)
	for rows.Next() {
		var domain, name string
		if err := rows.Scan(&domain, &name); err != nil {
			return nil, err
		}
		allowed[domain] = name
	}
	return allowed, rows.Err()
}

func (s *Store) AddWhitelistSite(ctx context.Context, householdID int, domain, name string) (*WhitelistSite, error) {
	var site WhitelistSite
	err := s.db.QueryRowContext(ctx, `
INSERT INTO whitelist_sites (household_id, domain, name, is_active)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (household_id, domain) DO UPDATE SET
    name = EXCLUDED.name,
    is_active = TRUE
RETURNING `+whitelistColumns+`
`, householdID, domain, nullString(name)).Scan(&site.ID, &site.HouseholdID, &site.Domain, &site.Name, &site.IsActive)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

type WhitelistPatch struct {
	Name     *string
	IsActive *bool
}

func (s *Store) UpdateWhitelistSite(ctx context.Context, householdID, siteID int, patch WhitelistPatch) (*WhitelistSite, error) {
	sets := []string{}
	args := []any{siteID, householdID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", nullString(*patch.Name))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if len(sets) == 0 {
		return nil, sql.ErrNoRows
	}

	query := "UPDATE whitelist_sites SET " + sets[0]
	for _, set := range sets[1:] {
		query += ", " + set
	}
	query += " WHERE id = $1 AND household_id = $2 RETURNING " + whitelistColumns

	var site WhitelistSite
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&site.ID, &site.HouseholdID, &site.Domain, &site.Name, &site.IsActive,
	); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Store) DeleteWhitelistSite(ctx context.Context, householdID, siteID int) error {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM whitelist_sites WHERE id = $1 AND household_id = $2
`, siteID, householdID)
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

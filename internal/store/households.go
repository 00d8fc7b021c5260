package store

import (
	"context"
	"database/sql"
	"time"
)

type Household struct {
	ID                    int       `json:"id"`
	Name                  string    `json:"name"`
	PinHash               string    `json:"-"`
	FamilyFriendlyDefault bool      `json:"family_friendly_default"`
	MinimizeWasteDefault  bool      `json:"minimize_waste_default"`
	CreatedAt             time.Time `json:"created_at"`
}

const householdColumns = `id, name, pin_hash, family_friendly_default, minimize_waste_default, created_at`

func scanHousehold(row *sql.Row) (*Household, error) {
	var h Household
	if err := row.Scan(&h.ID, &h.Name, &h.PinHash, &h.FamilyFriendlyDefault, &h.MinimizeWasteDefault, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) CreateHousehold(ctx context.Context, name, pinHash string) (*Household, error) {
	row := s.db.QueryRowContext(ctx, `
INSERT INTO households (name, pin_hash)
VALUES ($1, $2)
RETURNING `+householdColumns+`
`, name, pinHash)
	return scanHousehold(row)
}

// FirstHousehold backs single-tenant mode: one household, created on first
// use, shared by every request.
func (s *Store) FirstHousehold(ctx context.Context) (*Household, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+householdColumns+` FROM households ORDER BY id ASC LIMIT 1
`)
	return scanHousehold(row)
}

func (s *Store) GetHousehold(ctx context.Context, id int) (*Household, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+householdColumns+` FROM households WHERE id = $1
`, id)
	return scanHousehold(row)
}

func (s *Store) ListHouseholds(ctx context.Context) ([]Household, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+householdColumns+` FROM households ORDER BY id ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var households []Household
	for rows.Next() {
		var h Household
		if err := rows.Scan(&h.ID, &h.Name, &h.PinHash, &h.FamilyFriendlyDefault, &h.MinimizeWasteDefault, &h.CreatedAt); err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

func (s *Store) CreateSession(ctx context.Context, householdID int, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO household_sessions (household_id, token_hash, expires_at)
VALUES ($1, $2, $3)
`, householdID, tokenHash, expiresAt)
	return err
}

// HouseholdBySession resolves an unexpired session token hash to its
// household. sql.ErrNoRows means the session is missing or expired.
func (s *Store) HouseholdBySession(ctx context.Context, tokenHash string) (*Household, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT h.id, h.name, h.pin_hash, h.family_friendly_default, h.minimize_waste_default, h.created_at
FROM household_sessions s
JOIN households h ON h.id = s.household_id
WHERE s.token_hash = $1 AND s.expires_at > NOW()
`, tokenHash)
	return scanHousehold(row)
}

func (s *Store) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `
DELETE FROM household_sessions WHERE token_hash = $1
`, tokenHash)
	return err
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM household_sessions WHERE expires_at <= NOW()
`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

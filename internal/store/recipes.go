package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type Recipe struct {
	ID               int       `json:"id"`
	HouseholdID      int       `json:"household_id"`
	Title            string    `json:"title"`
	ImageURL         string    `json:"image_url,omitempty"`
	SourceURL        string    `json:"source_url"`
	SourceDomain     string    `json:"source_domain"`
	Servings         int       `json:"servings"`
	IsFavorite       bool      `json:"is_favorite"`
	IsFamilyFriendly bool      `json:"is_family_friendly"`
	NeedsReview      bool      `json:"needs_review"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RecipeIngredient struct {
	ID       int    `json:"id"`
	Position int    `json:"position"`
	Line     string `json:"line"`
}

type RecipeDetail struct {
	Recipe
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []string           `json:"steps"`
}

type RecipeFilter struct {
	Query          string
	Favorites      *bool
	FamilyFriendly *bool
}

type NewRecipe struct {
	HouseholdID      int
	Title            string
	ImageURL         string
	SourceURL        string
	SourceDomain     string
	Servings         int
	IsFavorite       bool
	IsFamilyFriendly bool
	NeedsReview      bool
	Ingredients      []string
	Steps            []string
}

const recipeColumns = `id, household_id, title, COALESCE(image_url, ''), source_url, source_domain, servings, is_favorite, is_family_friendly, needs_review, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(...any) error }) (Recipe, error) {
	var r Recipe
	err := scanner.Scan(&r.ID, &r.HouseholdID, &r.Title, &r.ImageURL, &r.SourceURL, &r.SourceDomain,
		&r.Servings, &r.IsFavorite, &r.IsFamilyFriendly, &r.NeedsReview, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// CreateRecipe inserts the recipe with its ingredient and step rows in one
// transaction.
func (s *Store) CreateRecipe(ctx context.Context, in NewRecipe) (*RecipeDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if in.Servings <= 0 {
		in.Servings = 4
	}

	row := tx.QueryRowContext(ctx, `
INSERT INTO recipes (household_id, title, image_url, source_url, source_domain, servings, is_favorite, is_family_friendly, needs_review)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+recipeColumns+`
`, in.HouseholdID, in.Title, nullString(in.ImageURL), in.SourceURL, in.SourceDomain,
		in.Servings, in.IsFavorite, in.IsFamilyFriendly, in.NeedsReview)

	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	detail := &RecipeDetail{Recipe: r, Steps: in.Steps}
	for i, line := range in.Ingredients {
		var ing RecipeIngredient
		if err := tx.QueryRowContext(ctx, `
INSERT INTO recipe_ingredients (recipe_id, position, line)
VALUES ($1, $2, $3)
RETURNING id, position, line
`, r.ID, i+1, line).Scan(&ing.ID, &ing.Position, &ing.Line); err != nil {
			return nil, fmt.Errorf("failed to insert ingredient: %w", err)
		}
		detail.Ingredients = append(detail.Ingredients, ing)
	}
	for i, text := range in.Steps {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO recipe_steps (recipe_id, position, text)
VALUES ($1, $2, $3)
`, r.ID, i+1, text); err != nil {
			return nil, fmt.Errorf("failed to insert step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Store) ListRecipes(ctx context.Context, householdID int, filter RecipeFilter) ([]Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE household_id = $1`
	args := []any{householdID}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Favorites != nil {
		args = append(args, *filter.Favorites)
		query += fmt.Sprintf(" AND is_favorite = $%d", len(args))
	}
	if filter.FamilyFriendly != nil {
		args = append(args, *filter.FamilyFriendly)
		query += fmt.Sprintf(" AND is_family_friendly = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (s *Store) GetRecipe(ctx context.Context, householdID, recipeID int) (*RecipeDetail, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+recipeColumns+` FROM recipes WHERE id = $1 AND household_id = $2
`, recipeID, householdID)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}
	detail := &RecipeDetail{Recipe: r}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, position, line FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position ASC
`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ing RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.Position, &ing.Line); err != nil {
			return nil, err
		}
		detail.Ingredients = append(detail.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stepRows, err := s.db.QueryContext(ctx, `
SELECT text FROM recipe_steps WHERE recipe_id = $1 ORDER BY position ASC
`, recipeID)
	if err != nil {
		return nil, err
	}
	defer stepRows.Close()
	for stepRows.Next() {
		var text string
		if err := stepRows.Scan(&text); err != nil {
			return nil, err
		}
		detail.Steps = append(detail.Steps, text)
	}
	return detail, stepRows.Err()
}

type RecipePatch struct {
	Title            *string
	Servings         *int
	IsFavorite       *bool
	IsFamilyFriendly *bool
	NeedsReview      *bool
}

func (s *Store) UpdateRecipe(ctx context.Context, householdID, recipeID int, patch RecipePatch) (*Recipe, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{recipeID, householdID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Servings != nil {
		add("servings", *patch.Servings)
	}
	if patch.IsFavorite != nil {
		add("is_favorite", *patch.IsFavorite)
	}
	if patch.IsFamilyFriendly != nil {
		add("is_family_friendly", *patch.IsFamilyFriendly)
	}
	if patch.NeedsReview != nil {
		add("needs_review", *patch.NeedsReview)
	}

	row := s.db.QueryRowContext(ctx, `
UPDATE recipes SET `+strings.Join(sets, ", ")+`
WHERE id = $1 AND household_id = $2
RETURNING `+recipeColumns+`
`, args...)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) DeleteRecipe(ctx context.Context, householdID, recipeID int) error {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM recipes WHERE id = $1 AND household_id = $2
`, recipeID, householdID)
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

// ImportedSourceURLs returns which of the given source URLs already exist
// as recipes for the household. Used to flag search results as imported.
func (s *Store) ImportedSourceURLs(ctx context.Context, householdID int, urls []string) (map[string]bool, error) {
	imported := make(map[string]bool)
	if len(urls) == 0 {
		return imported, nil
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT source_url FROM recipes WHERE household_id = $1 AND source_url = ANY($2)
`, householdID, pq.Array(urls))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		imported[u] = true
	}
	return imported, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type WeeklyPlan struct {
	ID          int              `json:"id"`
	HouseholdID int              `json:"household_id"`
	WeekStart   time.Time        `json:"week_start"`
	Items       []WeeklyPlanItem `json:"items"`
}

type WeeklyPlanItem struct {
	ID       int    `json:"id"`
	RecipeID int    `json:"recipe_id"`
	Servings int    `json:"servings"`
	Position int    `json:"position"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
}

type PlanItemInput struct {
	RecipeID int
	Servings int
}

// GetWeeklyPlan loads the plan for a week with its items, or nil when the
// week has no plan yet.
func (s *Store) GetWeeklyPlan(ctx context.Context, householdID int, weekStart time.Time) (*WeeklyPlan, error) {
	plan := &WeeklyPlan{HouseholdID: householdID}
	err := s.db.QueryRowContext(ctx, `
SELECT id, week_start FROM weekly_plans WHERE household_id = $1 AND week_start = $2
`, householdID, weekStart).Scan(&plan.ID, &plan.WeekStart)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT i.id, i.recipe_id, i.servings, i.position, r.title, COALESCE(r.image_url, '')
FROM weekly_plan_items i
JOIN recipes r ON r.id = i.recipe_id
WHERE i.weekly_plan_id = $1
ORDER BY i.position ASC
`, plan.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item WeeklyPlanItem
		if err := rows.Scan(&item.ID, &item.RecipeID, &item.Servings, &item.Position, &item.Title, &item.ImageURL); err != nil {
			return nil, err
		}
		plan.Items = append(plan.Items, item)
	}
	return plan, rows.Err()
}

// ReplaceWeeklyPlan swaps the week's selections in one transaction.
func (s *Store) ReplaceWeeklyPlan(ctx context.Context, householdID int, weekStart time.Time, items []PlanItemInput) (*WeeklyPlan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var planID int
	if err := tx.QueryRowContext(ctx, `
INSERT INTO weekly_plans (household_id, week_start)
VALUES ($1, $2)
ON CONFLICT (household_id, week_start) DO UPDATE SET week_start = EXCLUDED.week_start
RETURNING id
`, householdID, weekStart).Scan(&planID); err != nil {
		return nil, fmt.Errorf("failed to upsert weekly plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
DELETE FROM weekly_plan_items WHERE weekly_plan_id = $1
`, planID); err != nil {
		return nil, err
	}

	for i, item := range items {
		servings := item.Servings
		if servings <= 0 {
			servings = 4
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO weekly_plan_items (weekly_plan_id, recipe_id, servings, position)
VALUES ($1, $2, $3, $4)
`, planID, item.RecipeID, servings, i); err != nil {
			return nil, fmt.Errorf("failed to insert plan item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetWeeklyPlan(ctx, householdID, weekStart)
}

// PlanIngredientLines returns every ingredient line of every recipe in the
// plan, in item order then ingredient position.
func (s *Store) PlanIngredientLines(ctx context.Context, planID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT ri.line
FROM weekly_plan_items i
JOIN recipe_ingredients ri ON ri.recipe_id = i.recipe_id
WHERE i.weekly_plan_id = $1
ORDER BY i.position ASC, ri.position ASC
`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

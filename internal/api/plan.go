package api

import (
	"net/http"

	"github.com/plaugmann/family-meal-planner/internal/core"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

func (s *Server) handleGetWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	weekStart := core.WeekStartUTC()

	plan, err := s.store.GetWeeklyPlan(r.Context(), household.ID, weekStart)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to fetch weekly plan.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"weekStart": weekStart,
		"plan":      plan,
	})
}

type planItemRequest struct {
	RecipeID int `json:"recipeId"`
	Servings int `json:"servings"`
}

type putPlanRequest struct {
	Items []planItemRequest `json:"items"`
}

func (s *Server) handlePutWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	payload, ok := parseJSON[putPlanRequest](r)
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidation, "Request body required.")
		return
	}
	if len(payload.Items) == 0 {
		respondError(w, http.StatusBadRequest, CodeValidation, "At least one recipe is required.")
		return
	}
	if len(payload.Items) > core.PlanSize {
		respondError(w, http.StatusBadRequest, CodeValidation, "A week holds at most three dinners.", map[string]any{"max": core.PlanSize})
		return
	}
	for _, item := range payload.Items {
		if item.RecipeID <= 0 {
			respondError(w, http.StatusBadRequest, CodeValidation, "recipeId is required for every item.")
			return
		}
	}

	items := make([]store.PlanItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, store.PlanItemInput{RecipeID: item.RecipeID, Servings: item.Servings})
	}

	plan, err := s.store.ReplaceWeeklyPlan(r.Context(), household.ID, core.WeekStartUTC(), items)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to save weekly plan.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"plan": plan})
}

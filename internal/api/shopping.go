package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/plaugmann/family-meal-planner/internal/core"
	"github.com/plaugmann/family-meal-planner/internal/observability"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

func (s *Server) handleGetShoppingList(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)

	plan, items, err := s.shopping.CurrentList(r.Context(), household.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to fetch shopping list.")
		return
	}
	if items == nil {
		items = []store.ShoppingListItem{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"plan":  plan,
		"items": items,
	})
}

func (s *Server) handleGenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)

	plan, items, err := s.shopping.Generate(r.Context(), household.ID)
	if errors.Is(err, core.ErrIncompletePlan) {
		respondError(w, http.StatusConflict, CodeConflict, "Plan exactly three dinners before generating the list.", map[string]any{"required": core.PlanSize})
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to generate shopping list.")
		return
	}

	observability.IncListsGenerated()
	respondJSON(w, http.StatusOK, map[string]any{
		"plan":  plan,
		"items": items,
	})
}

type shoppingItemPatchRequest struct {
	Name         *string `json:"name"`
	QuantityText *string `json:"quantityText"`
	IsBought     *bool   `json:"isBought"`
}

func (s *Server) handleUpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid item ID.")
		return
	}
	payload, ok := parseJSON[shoppingItemPatchRequest](r)
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidation, "Request body required.")
		return
	}
	if payload.Name != nil && *payload.Name == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "Name cannot be empty.")
		return
	}

	household := householdFrom(r)
	item, err := s.shopping.UpdateItem(r.Context(), household.ID, id, store.ShoppingItemPatch{
		Name:         payload.Name,
		QuantityText: payload.QuantityText,
		IsBought:     payload.IsBought,
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Shopping item not found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to update item.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (s *Server) handleDeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid item ID.")
		return
	}
	household := householdFrom(r)
	if err := s.shopping.DeleteItem(r.Context(), household.ID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Shopping item not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to delete item.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

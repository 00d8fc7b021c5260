package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/plaugmann/family-meal-planner/internal/store"
)

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	items, err := s.store.ListInventory(r.Context(), household.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to fetch inventory.")
		return
	}
	if items == nil {
		items = []store.InventoryItem{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

type inventoryItemRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (s *Server) handleCreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	payload, ok := parseJSON[inventoryItemRequest](r)
	if !ok || strings.TrimSpace(payload.Name) == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "Name is required.")
		return
	}

	item, err := s.store.CreateInventoryItem(r.Context(), household.ID, strings.TrimSpace(payload.Name), payload.Location)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to create inventory item.")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"item": item})
}

type inventoryPatchRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	IsActive *bool   `json:"isActive"`
}

func (s *Server) handleUpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid item ID.")
		return
	}
	payload, ok := parseJSON[inventoryPatchRequest](r)
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidation, "Request body required.")
		return
	}
	if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "Name cannot be empty.")
		return
	}

	item, err := s.store.UpdateInventoryItem(r.Context(), household.ID, id, store.InventoryPatch{
		Name:     payload.Name,
		Location: payload.Location,
		IsActive: payload.IsActive,
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Inventory item not found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to update inventory item.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (s *Server) handleDeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid item ID.")
		return
	}
	if err := s.store.DeleteInventoryItem(r.Context(), household.ID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Inventory item not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to delete inventory item.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/plaugmann/family-meal-planner/internal/store"
	"github.com/plaugmann/family-meal-planner/internal/urlutil"
)

func (s *Server) handleListWhitelist(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	sites, err := s.store.ListWhitelist(r.Context(), household.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to fetch whitelist.")
		return
	}
	if sites == nil {
		sites = []store.WhitelistSite{}
	}

	// Mark the sites the crawler has a sitemap integration for, so the UI
	// can show which whitelist entries are actually searchable.
	type whitelistEntry struct {
		store.WhitelistSite
		Searchable bool `json:"searchable"`
	}
	out := make([]whitelistEntry, 0, len(sites))
	for _, site := range sites {
		out = append(out, whitelistEntry{
			WhitelistSite: site,
			Searchable:    s.searcher.Supported(site.Domain),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"sites": out})
}

type whitelistAddRequest struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

func (s *Server) handleAddWhitelistSite(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	payload, ok := parseJSON[whitelistAddRequest](r)
	if !ok || strings.TrimSpace(payload.Domain) == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "Domain is required.")
		return
	}
	domain := urlutil.NormalizeDomain(payload.Domain)
	if domain == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "Domain is invalid.")
		return
	}

	site, err := s.store.AddWhitelistSite(r.Context(), household.ID, domain, strings.TrimSpace(payload.Name))
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to add site.")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"site": site})
}

type whitelistPatchRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

func (s *Server) handleUpdateWhitelistSite(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid site ID.")
		return
	}
	payload, ok := parseJSON[whitelistPatchRequest](r)
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidation, "Request body required.")
		return
	}

	site, err := s.store.UpdateWhitelistSite(r.Context(), household.ID, id, store.WhitelistPatch{
		Name:     payload.Name,
		IsActive: payload.IsActive,
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Whitelist site not found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to update site.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"site": site})
}

func (s *Server) handleDeleteWhitelistSite(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid site ID.")
		return
	}
	if err := s.store.DeleteWhitelistSite(r.Context(), household.ID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Whitelist site not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to delete site.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/plaugmann/family-meal-planner/internal/observability"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
	"github.com/plaugmann/family-meal-planner/internal/sitesearch"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	q := r.URL.Query()

	filter := store.RecipeFilter{Query: q.Get("q")}
	if v := q.Get("favorites"); v != "" {
		b := v == "true"
		filter.Favorites = &b
	}
	if v := q.Get("familyFriendly"); v != "" {
		b := v == "true"
		filter.FamilyFriendly = &b
	}

	recipes, err := s.store.ListRecipes(r.Context(), household.ID, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to fetch recipes.")
		return
	}
	if recipes == nil {
		recipes = []store.Recipe{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"recipes": recipes})
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid recipe ID.")
		return
	}

	detail, err := s.store.GetRecipe(r.Context(), household.ID, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Recipe not found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to fetch recipe.")
		return
	}

	// ?servings=N returns the ingredient lines rescaled alongside the
	// stored recipe.
	if v := r.URL.Query().Get("servings"); v != "" {
		if target, err := strconv.Atoi(v); err == nil && target > 0 {
			scaled := make([]string, len(detail.Ingredients))
			for i, ing := range detail.Ingredients {
				scaled[i] = recipe.ScaleLine(ing.Line, detail.Servings, target)
			}
			respondJSON(w, http.StatusOK, map[string]any{
				"recipe":            detail,
				"scaledServings":    target,
				"scaledIngredients": scaled,
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"recipe": detail})
}

type recipePatchRequest struct {
	Title            *string `json:"title"`
	Servings         *int    `json:"servings"`
	IsFavorite       *bool   `json:"isFavorite"`
	IsFamilyFriendly *bool   `json:"isFamilyFriendly"`
	NeedsReview      *bool   `json:"needsReview"`
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid recipe ID.")
		return
	}
	payload, ok := parseJSON[recipePatchRequest](r)
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidation, "Request body required.")
		return
	}
	if payload.Servings != nil && *payload.Servings <= 0 {
		respondError(w, http.StatusBadRequest, CodeValidation, "Servings must be positive.")
		return
	}

	recipe, err := s.store.UpdateRecipe(r.Context(), household.ID, id, store.RecipePatch{
		Title:            payload.Title,
		Servings:         payload.Servings,
		IsFavorite:       payload.IsFavorite,
		IsFamilyFriendly: payload.IsFamilyFriendly,
		NeedsReview:      payload.NeedsReview,
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Recipe not found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to update recipe.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"recipe": recipe})
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid recipe ID.")
		return
	}
	if err := s.store.DeleteRecipe(r.Context(), household.ID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Recipe not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to delete recipe.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type importRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	payload, ok := parseJSON[importRequest](r)
	if !ok || payload.URL == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "URL is required.")
		return
	}
	if !validSourceURL(payload.URL) {
		respondError(w, http.StatusBadRequest, CodeValidation, "URL is invalid.")
		return
	}

	// Import is allowed from any domain; only search is whitelist-bound.
	detail, err := s.importer.Import(r.Context(), household, payload.URL)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, CodeImportFailed, "Recipe import failed.", map[string]any{"url": payload.URL})
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"recipe": detail})
}

func (s *Server) handlePreviewRecipe(w http.ResponseWriter, r *http.Request) {
	sourceURL := r.URL.Query().Get("url")
	if r.Method == http.MethodPost {
		if payload, ok := parseJSON[importRequest](r); ok {
			sourceURL = payload.URL
		}
	}
	if sourceURL == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "url is required.")
		return
	}

	parsed, err := s.importer.Preview(r.Context(), sourceURL)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, CodeImportFailed, "Unable to parse recipe.", map[string]any{"url": sourceURL})
		return
	}
	if v := r.URL.Query().Get("servings"); v != "" {
		if target, err := strconv.Atoi(v); err == nil && target > 0 {
			parsed.Parts = recipe.ScaleIngredients(parsed.Parts, parsed.Servings, target)
			for i, line := range parsed.Ingredients {
				parsed.Ingredients[i] = recipe.ScaleLine(line, parsed.Servings, target)
			}
			parsed.Servings = target
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"recipe": parsed})
}

func (s *Server) handleParseRecipe(w http.ResponseWriter, r *http.Request) {
	payload, ok := parseJSON[importRequest](r)
	if !ok || payload.URL == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "URL is required.")
		return
	}
	if !validSourceURL(payload.URL) {
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid URL.")
		return
	}

	parsed, err := s.importer.Preview(r.Context(), payload.URL)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, CodeImportFailed, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"recipe": parsed})
}

type searchResult struct {
	sitesearch.Result
	SourceName string `json:"sourceName"`
	IsImported bool   `json:"isImported"`
}

func (s *Server) handleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	if q == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "q is required.")
		return
	}

	allowed, err := s.store.ActiveWhitelist(r.Context(), household.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to load whitelist.")
		return
	}

	var targets []string
	if domain != "" {
		if _, ok := allowed[domain]; ok {
			targets = []string{domain}
		}
	} else {
		for d := range allowed {
			targets = append(targets, d)
		}
	}
	if len(targets) == 0 {
		respondError(w, http.StatusForbidden, CodeNotAllowed, "Domain is not whitelisted.", map[string]any{"domain": domain})
		return
	}

	observability.IncSearchQueries()
	results := s.searcher.Search(r.Context(), targets, q, limit)

	urls := make([]string, 0, len(results))
	for _, res := range results {
		urls = append(urls, res.URL)
	}
	imported, err := s.store.ImportedSourceURLs(r.Context(), household.ID, urls)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to check imports.")
		return
	}

	out := make([]searchResult, 0, len(results))
	for _, res := range results {
		name := res.SourceDomain
		if display, ok := allowed[res.SourceDomain]; ok {
			name = display
		}
		out = append(out, searchResult{
			Result:     res,
			SourceName: name,
			IsImported: imported[res.URL],
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": out})
}

func validSourceURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

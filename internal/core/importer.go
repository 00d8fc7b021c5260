package core

import (
	"context"
	"log/slog"

	"github.com/plaugmann/family-meal-planner/internal/observability"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
	"github.com/plaugmann/family-meal-planner/internal/store"
	"github.com/plaugmann/family-meal-planner/internal/urlutil"
)

// ImportService turns a source URL into a persisted recipe. When the
// backend cannot parse the page it falls back to a stub so the user can
// still add the meal and fix it up by hand.
type ImportService struct {
	store  *store.Store
	source recipe.Source
}

func NewImportService(s *store.Store, source recipe.Source) *ImportService {
	return &ImportService{store: s, source: source}
}

// Preview fetches and parses without persisting.
func (s *ImportService) Preview(ctx context.Context, sourceURL string) (*recipe.Parsed, error) {
	parsed, err := s.source.Fetch(ctx, sourceURL)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "import")
		return nil, err
	}
	return parsed, nil
}

// Import fetches the recipe and stores it. Imports are allowed from any
// domain; only search is whitelist-restricted. A failed parse degrades to
// a stub recipe flagged needsReview.
func (s *ImportService) Import(ctx context.Context, household *store.Household, sourceURL string) (*store.RecipeDetail, error) {
	domain := urlutil.Domain(sourceURL)

	parsed, err := s.source.Fetch(ctx, sourceURL)
	needsReview := false
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "import")
		slog.Warn("recipe parse failed, using stub", "url", sourceURL, "error", err)
		parsed = StubRecipe(sourceURL)
		needsReview = true
	}

	detail, err := s.store.CreateRecipe(ctx, store.NewRecipe{
		HouseholdID:      household.ID,
		Title:            parsed.Title,
		ImageURL:         parsed.ImageURL,
		SourceURL:        sourceURL,
		SourceDomain:     domain,
		Servings:         parsed.Servings,
		IsFamilyFriendly: household.FamilyFriendlyDefault,
		NeedsReview:      needsReview,
		Ingredients:      parsed.Ingredients,
		Steps:            parsed.Directions,
	})
	if err != nil {
		return nil, err
	}
	observability.IncRecipesImported(domain)
	return detail, nil
}

// StubRecipe fabricates a plausible recipe from the URL slug with fixed
// placeholder ingredients and steps.
func StubRecipe(sourceURL string) *recipe.Parsed {
	title := "Imported Recipe"
	if slug := urlutil.LastSlug(sourceURL); slug != "" {
		title = urlutil.TitleFromSlug(slug)
	}
	return &recipe.Parsed{
		Title:    title,
		Servings: recipe.DefaultServings,
		Ingredients: []string{
			"Main ingredient (edit me)",
			"Seasoning to taste",
		},
		Directions: []string{
			"Open the source page and copy the steps.",
			"Adjust this recipe before cooking.",
		},
		SourceURL: sourceURL,
	}
}
